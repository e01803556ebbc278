// Package response provides helpers for sending consistent JSON responses
// and standardized error payloads.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the error payload every failing endpoint returns. The
// Details field is optional and carries additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code. If data is
// nil only the status code is sent, which is what 204 No Content needs.
// Encoding errors are logged but cannot fail the response; the status line
// has already been written.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warn().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// RespondError sends a structured error response. The message should be a
// user-facing description; details can be an error string, extra context,
// or empty.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
