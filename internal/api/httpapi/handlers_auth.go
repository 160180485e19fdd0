package httpapi

import (
	"net/http"
	"time"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bindJSON(r, h.validate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.d.Auth.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ID:        res.Admin.ID,
		Name:      res.Admin.Name,
		Email:     res.Admin.Email,
		ExpiresAt: res.ExpiresAt,
	})
}
