package server

import (
	"encoding/json"
	"net/http"

	"github.com/driftboard/driftboard/pkg/errors"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	s.respondJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

// statusFor maps error codes to HTTP statuses. Unknown codes are
// treated as internal errors.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidEntity,
		errors.ErrCodeInvalidPosition, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSceneNotFound, errors.ErrCodeEntityNotFound,
		errors.ErrCodeZoneNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body, rejecting unknown fields so
// client typos surface as errors instead of silent defaults.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
