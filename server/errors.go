package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stevehazel/DUO/core"
)

// writeError maps a core sentinel error to an HTTP status and writes a
// small JSON body:
//
//	ErrNotFound                          -> 404 Not Found
//	ErrTypeMismatch, ErrInvariantViolation -> 400 Bad Request
//	ErrHashMismatch, ErrLinkMismatch,
//	ErrCrossChainMismatch, ErrRebuildFailed -> 409 Conflict
//	ErrIOError, anything unrecognized     -> 500 Internal Server Error
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrTypeMismatch), errors.Is(err, core.ErrInvariantViolation):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrHashMismatch),
		errors.Is(err, core.ErrLinkMismatch),
		errors.Is(err, core.ErrCrossChainMismatch),
		errors.Is(err, core.ErrRebuildFailed):
		status = http.StatusConflict
	case errors.Is(err, core.ErrIOError):
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
