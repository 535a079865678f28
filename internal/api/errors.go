package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrUnauthorized marks a terminal 401: either a second 401 after a
	// replay, or a 401 the client cannot recover from.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired marks an unrecoverable refresh failure. The
	// session has already been cleared when a caller sees this.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response, decoded once at the client boundary.
// Message carries the server-supplied message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// ServerMessage extracts the server-supplied message from an error, if the
// error chain contains one. Callers fall back to their own generic message.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func decodeAPIError(status int, body io.Reader) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
