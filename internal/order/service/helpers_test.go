package service

import (
	"fmt"

	apperrors "bizledger/internal/errors"
)

func errNotFound(id int) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Product %d not found", id))
}

func codeOf(id int) string {
	return fmt.Sprintf("P-%03d", id)
}
