package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/BearBump/ParcelDesk/internal/apperr"
)

const (
	uploadField     = "file"
	multipartMemory = 32 << 10
)

// importContacts accepts exactly one file part named "file". Whatever the
// multipart parser spilled to disk is removed when the handler returns.
func (h *handlers) importContacts(w http.ResponseWriter, r *http.Request) {
	if h.d.MaxUploadBytes > 0 {
		// Room for multipart framing around the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, h.d.MaxUploadBytes+64<<10)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, apperr.Validation("file is too large"))
			return
		}
		writeError(w, r, apperr.Validation("multipart form with a \"file\" field is required"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File
	if len(files[uploadField]) == 0 {
		writeError(w, r, apperr.Validation("no file uploaded"))
		return
	}
	if len(files) != 1 || len(files[uploadField]) != 1 {
		writeError(w, r, apperr.Validation("exactly one file field named \"file\" is allowed"))
		return
	}

	fh := files[uploadField][0]
	f, err := fh.Open()
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.d.Contacts.Import(r.Context(), fh.Filename, f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  fmt.Sprintf("Successfully imported %d contacts", res.Imported),
		"imported": res.Imported,
	})
}

func (h *handlers) listContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := h.d.Contacts.ListContacts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}
