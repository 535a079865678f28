package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invdesk/internal/api"
	"invdesk/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the error taxonomy onto console responses. The generic
// message is what the view shows; field-level validation failures carry
// their per-field messages.
func writeError(w http.ResponseWriter, err error, generic string) {
	var fields validate.Errors
	if errors.As(err, &fields) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "validation failed",
			"fields":  fields,
		})
		return
	}

	if errors.Is(err, api.ErrSessionExpired) || errors.Is(err, api.ErrUnauthorized) {
		writeMessage(w, http.StatusUnauthorized, "session expired, sign in again")
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.StatusCode, generic)
		return
	}

	writeMessage(w, http.StatusBadGateway, generic)
}

// writeSaveError is writeError, but prefers the server-supplied message.
// Only the item and customer create/update paths surface it.
func writeSaveError(w http.ResponseWriter, err error, generic string) {
	if msg := api.ServerMessage(err); msg != "" {
		generic = msg
	}
	writeError(w, err, generic)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func listQueryFromRequest(r *http.Request) (page, pageSize int, search string) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	return page, pageSize, q.Get("search")
}
