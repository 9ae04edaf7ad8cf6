package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arknat/hr-backend/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain success acknowledgment
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a failure onto the uniform error contract: permission
// failures get a 403, everything else a generic 400 carrying the raw message.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrPermissionDenied) {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Permission Denied"})
		return
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
