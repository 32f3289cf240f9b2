package usecase

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

// Column widths of invoices and payments.
const (
	maxInvoiceNumberLen   = 50
	maxCustomerNameLen    = 255
	maxPaymentMethodLen   = 30
	maxReferenceNumberLen = 100
)

func validateCreateInvoice(inv domain.Invoice) error {
	var details []apperrors.ValidationDetail

	if inv.CustomerName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customer_name",
			Message: "customer_name is required",
		})
	}

	details = appendTooLong(details, "invoice_number", inv.Number, maxInvoiceNumberLen)
	details = appendTooLong(details, "customer_name", inv.CustomerName, maxCustomerNameLen)
	details = appendMoney(details, "total_amount", inv.TotalAmount)

	switch inv.Status {
	case "", domain.InvoiceStatusDraft, domain.InvoiceStatusSent:
	default:
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be draft or sent",
		})
	}

	if inv.SalesOrderID != nil && *inv.SalesOrderID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "sales_order_id",
			Message: "sales_order_id must be a positive integer",
		})
	}

	if inv.DueDate != nil && !inv.InvoiceDate.IsZero() && inv.DueDate.Before(inv.InvoiceDate) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "due_date",
			Message: "due_date must not be before invoice_date",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func validateRecordPayment(cmd dto.RecordPaymentCommand) error {
	var details []apperrors.ValidationDetail

	if cmd.InvoiceID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "invoice_id",
			Message: "invoice_id must be a positive integer",
		})
	}

	details = appendMoney(details, "amount", cmd.Amount)

	if cmd.Method == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "payment_method",
			Message: "payment_method is required",
		})
	}
	details = appendTooLong(details, "payment_method", cmd.Method, maxPaymentMethodLen)
	if cmd.ReferenceNumber != nil {
		details = appendTooLong(details, "reference_number", *cmd.ReferenceNumber, maxReferenceNumberLen)
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

// appendMoney requires a positive amount with at most two decimal places.
func appendMoney(details []apperrors.ValidationDetail, field string, amount decimal.Decimal) []apperrors.ValidationDetail {
	switch {
	case !amount.IsPositive():
		return append(details, apperrors.ValidationDetail{
			Field:   field,
			Message: field + " must be greater than zero",
		})
	case !domain.FitsMoneyScale(amount):
		return append(details, apperrors.ValidationDetail{
			Field:   field,
			Message: fmt.Sprintf("%s must have at most %d decimal places", field, domain.MoneyScale),
		})
	}
	return details
}

func appendTooLong(details []apperrors.ValidationDetail, field, value string, limit int) []apperrors.ValidationDetail {
	if utf8.RuneCountInString(value) <= limit {
		return details
	}
	return append(details, apperrors.ValidationDetail{
		Field:   field,
		Message: fmt.Sprintf("%s must be at most %d characters", field, limit),
	})
}
