package dto

import apperrors "bizledger/internal/errors"

// Envelope is the response shape of every endpoint.
type Envelope struct {
	Success bool                         `json:"success"`
	Message string                       `json:"message,omitempty"`
	Data    any                          `json:"data,omitempty"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
	TraceID string                       `json:"trace_id,omitempty"`
}
