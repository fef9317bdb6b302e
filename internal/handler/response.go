package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/bitmark-wallet/bitmark"
	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/model"
)

// RequestIDHeader carries the id of a request in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID tags every request with an id and logs it once served.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Msg("request served")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: requestID(r),
	})
}

// writeFailure maps the error taxonomy onto HTTP statuses.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string
	switch {
	case bitmark.IsAccountExistsError(err):
		status, code = http.StatusConflict, model.CodeAccountExists
	case errors.Is(err, common.ErrInvalidArgument):
		status, code = http.StatusBadRequest, model.CodeInvalidArgument
	case errors.Is(err, auth.ErrAuthenticationRequired):
		status, code = http.StatusUnauthorized, model.CodeAuthenticationRequired
	case errors.Is(err, auth.ErrAuthenticationFailed):
		status, code = http.StatusUnauthorized, model.CodeAuthenticationFailed
	case errors.Is(err, auth.ErrAuthenticationCancelled), errors.Is(err, context.Canceled):
		status, code = http.StatusForbidden, model.CodeAuthenticationCanceled
	case auth.IsAuthError(err):
		status, code = http.StatusUnauthorized, model.CodeAuthenticationError
	default:
		status, code = http.StatusInternalServerError, model.CodeInternal
		log.Error().Err(err).Str("request_id", requestID(r)).Msg("request failed")
	}
	writeError(w, r, status, code, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, model.CodeInvalidArgument, err)
		return false
	}
	return true
}
