package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeBadRequest = "bad_request"
	CodeEmptyField = "empty_field"
	CodeDuplicate  = "duplicate_name"
	CodeOutOfRange = "index_out_of_range"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`

	// Notifications carries whatever the failed operation reported, so API
	// clients see the same messages the page would.
	Notifications []NotificationResponse `json:"notifications,omitempty"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// classify maps a domain error onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, links.ErrEmptyField):
		return http.StatusBadRequest, CodeEmptyField
	case errors.Is(err, links.ErrDuplicateName):
		return http.StatusConflict, CodeDuplicate
	case errors.Is(err, links.ErrIndexOutOfRange):
		return http.StatusNotFound, CodeOutOfRange
	case errors.Is(err, workspace.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
