package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/validation"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a JSON request body into v. Unknown fields are ignored.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps service errors to statuses. Anything unrecognised
// is a 500 whose cause is logged but never returned.
func (s *Server) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var fieldErrs validation.FieldErrors
	var filterErr *common.FilterError

	switch {
	case errors.As(err, &fieldErrs):
		first := fieldErrs.First()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: first.Message, Field: first.Field})
	case errors.As(err, &filterErr):
		writeError(w, http.StatusBadRequest, filterErr.Error())
	case errors.Is(err, common.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, "Invalid query")
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many requests")
	default:
		s.internalError(ctx, w, err)
	}
}

func (s *Server) internalError(ctx context.Context, w http.ResponseWriter, err error) {
	logging.FromContext(ctx, s.logger).Error(ctx, "request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
