// Package httpapi is the thin HTTP surface over the services. It owns no
// invariants: it decodes requests, calls a service, and maps the error
// taxonomy onto status codes.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"webvault/internal/common"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: status, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: status, Message: msg})
}

// writeError maps the service error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrConflict):
		writeMessage(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}
