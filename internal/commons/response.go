package commons

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteSuccess(w http.ResponseWriter, status int, traceID string, message string, data any, logger *zap.Logger) {
	WriteJSON(w, status, dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
		TraceID: traceID,
	}, logger)
}

// StatusFor maps an application error to its HTTP status code.
func StatusFor(err error) int {
	if _, ok := apperrors.IsValidationError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := apperrors.IsDuplicateError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		return http.StatusUnauthorized
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		return http.StatusForbidden
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return http.StatusConflict
	}
	if _, ok := apperrors.IsDeadlockError(err); ok {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteError renders err as a failed envelope. Unclassified errors are
// logged and their detail is returned as the message.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := StatusFor(err)
	body := dto.Envelope{
		Success: false,
		Message: err.Error(),
		TraceID: traceID,
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		body.Details = ve.Details
	}

	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	} else {
		logger.Info("request rejected", zap.String("traceId", traceID), zap.Int("status", status), zap.String("reason", err.Error()))
	}

	WriteJSON(w, status, body, logger)
}

// TraceID returns the request id set by the router middleware, or a fresh
// uuid when the request did not pass through it.
func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}
