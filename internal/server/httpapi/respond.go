package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/messagely/messagely/internal/common"
)

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "response encoding failed", "error", err)
	}
}

// writeError is the one place service errors become status codes. The
// invalid-credentials and unauthorized cases stay deliberately vague.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, "missing information"
	case errors.Is(err, common.ErrorConflict):
		status, msg = http.StatusBadRequest, "username taken, please pick another"
	case errors.Is(err, common.ErrorInvalidCredentials):
		status, msg = http.StatusUnauthorized, common.ErrorInvalidCredentials.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "not found"
	default:
		status, msg = http.StatusInternalServerError, "internal error"
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, r, status, errorResponse{Error: msg, Status: status})
}
