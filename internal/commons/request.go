package commons

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

// PathID parses the {id} URL parameter as a positive integer.
func PathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}
	return uint(id), nil
}

// ParseDate parses a YYYY-MM-DD value. An empty value yields the zero time.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   field,
			Message: field + " must be a date formatted as YYYY-MM-DD",
		})
	}
	return t, nil
}

func InvalidBody() error {
	return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
}
