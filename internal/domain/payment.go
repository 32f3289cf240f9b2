package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is never updated once inserted.
type Payment struct {
	ID              uint
	InvoiceID       uint
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Method          string
	ReferenceNumber *string
	Notes           *string
	CreatedBy       int
	CreatedAt       time.Time
}

// SumPayments is the source of truth for an invoice's paid amount.
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
