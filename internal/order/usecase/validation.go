package usecase

import (
	"fmt"
	"unicode/utf8"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

const MaxOrderLines = 500

// Column widths of the order header.
const (
	maxOrderNumberLen   = 50
	maxCustomerNameLen  = 255
	maxCustomerEmailLen = 150
	maxCustomerPhoneLen = 30
)

func validateCreateOrder(cmd dto.CreateOrderCommand) error {
	var details []apperrors.ValidationDetail

	switch cmd.Kind {
	case domain.OrderKindSales:
		if cmd.CustomerName == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "customer_name",
				Message: "customer_name is required",
			})
		}
	case domain.OrderKindPurchase:
		if cmd.SupplierID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "supplier_id",
				Message: "supplier_id must be a positive integer",
			})
		}
	default:
		details = append(details, apperrors.ValidationDetail{
			Field:   "kind",
			Message: fmt.Sprintf("unknown order kind %q", cmd.Kind),
		})
	}

	details = appendTooLong(details, cmd.Kind.NumberField(), cmd.Number, maxOrderNumberLen)
	details = appendTooLong(details, "customer_name", cmd.CustomerName, maxCustomerNameLen)
	if cmd.CustomerEmail != nil {
		details = appendTooLong(details, "customer_email", *cmd.CustomerEmail, maxCustomerEmailLen)
	}
	if cmd.CustomerPhone != nil {
		details = appendTooLong(details, "customer_phone", *cmd.CustomerPhone, maxCustomerPhoneLen)
	}

	if len(cmd.Lines) > MaxOrderLines {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: fmt.Sprintf("items exceeds maximum of %d", MaxOrderLines),
		})
	}

	for idx, line := range cmd.Lines {
		if line.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].product_id", idx),
				Message: "product_id must be a positive integer",
			})
		}

		if line.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be at least 1",
			})
		}

		switch {
		case !line.UnitPrice.IsPositive():
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unit_price", idx),
				Message: "unit_price must be greater than zero",
			})
		case !domain.FitsMoneyScale(line.UnitPrice):
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unit_price", idx),
				Message: fmt.Sprintf("unit_price must have at most %d decimal places", domain.MoneyScale),
			})
		}
	}

	if cmd.ActorID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "created_by",
			Message: "an authenticated actor is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

// appendTooLong adds a detail when value exceeds limit characters.
func appendTooLong(details []apperrors.ValidationDetail, field, value string, limit int) []apperrors.ValidationDetail {
	if utf8.RuneCountInString(value) <= limit {
		return details
	}
	return append(details, apperrors.ValidationDetail{
		Field:   field,
		Message: fmt.Sprintf("%s must be at most %d characters", field, limit),
	})
}
