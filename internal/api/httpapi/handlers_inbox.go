package httpapi

import (
	"net/http"

	"github.com/BearBump/ParcelDesk/internal/services/inbox"
)

func (h *handlers) submitMessage(w http.ResponseWriter, r *http.Request) {
	var in inbox.Submission
	if err := bindJSON(r, h.validate, &in); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.d.Inbox.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Message sent successfully",
		"data":    m,
	})
}

func (h *handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	ms, err := h.d.Inbox.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ms)
}

func (h *handlers) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.d.Inbox.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}
