package httpapi

import (
	"net/http"
	"strconv"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/go-chi/chi/v5"
)

type recipientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type statusRequest struct {
	TrackingRecordID uint64 `json:"tracking_record_id" validate:"required"`
	Location         string `json:"location"`
	EstimatedDate    string `json:"estimated_date"`
	EstimatedTime    string `json:"estimated_time"`
	Status           string `json:"status" validate:"required"`
}

type createTrackingResponse struct {
	Message    string                 `json:"message"`
	TrackingID string                 `json:"tracking_id"`
	Data       *models.TrackingRecord `json:"data"`
}

func (h *handlers) createTracking(w http.ResponseWriter, r *http.Request) {
	var req recipientRequest
	if err := bindJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.d.Trackings.CreateTracking(r.Context(), models.TrackingCreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createTrackingResponse{
		Message:    "Tracking created successfully",
		TrackingID: t.TrackingID,
		Data:       t,
	})
}

func (h *handlers) listTrackings(w http.ResponseWriter, r *http.Request) {
	ts, err := h.d.Trackings.ListTrackings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *handlers) updateRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req recipientRequest
	if err := bindJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.d.Trackings.UpdateRecipient(r.Context(), models.RecipientUpdate{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := bindJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.d.Trackings.UpdateStatus(r.Context(), models.StatusUpdate{
		TrackingRecordID: req.TrackingRecordID,
		Location:         req.Location,
		EstimatedDate:    req.EstimatedDate,
		EstimatedTime:    req.EstimatedTime,
		Status:           models.Status(req.Status),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": t})
}

func (h *handlers) lookup(w http.ResponseWriter, r *http.Request) {
	snap, err := h.d.Trackings.Lookup(r.Context(), chi.URLParam(r, "trackingId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) dashboardCounts(w http.ResponseWriter, r *http.Request) {
	c, err := h.d.Trackings.DashboardCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}
