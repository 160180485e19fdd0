package httpapi

import (
	"net/http"

	"github.com/BearBump/ParcelDesk/internal/models"
)

func (h *handlers) listPackages(w http.ResponseWriter, r *http.Request) {
	ps, err := h.d.Packages.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *handlers) getPackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.d.Packages.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) createPackage(w http.ResponseWriter, r *http.Request) {
	var in models.PackageInput
	if err := bindJSON(r, h.validate, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.d.Packages.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handlers) updatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.PackageInput
	if err := bindJSON(r, h.validate, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.d.Packages.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) deletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.d.Packages.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Package deleted successfully"})
}
