package handler

import (
	"net/http"

	"invdesk/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.auth.Register(r.Context(), req); err != nil {
		writeError(w, err, "registration failed")
		return
	}
	writeMessage(w, http.StatusCreated, "account created, sign in to continue")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(); err != nil {
		h.log.Error().Err(err).Msg("failed to clear session")
	}
	writeMessage(w, http.StatusOK, "signed out")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.auth.User()
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
