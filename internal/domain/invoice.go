package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID           uint
	Number       string
	SalesOrderID *uint
	CustomerName string
	InvoiceDate  time.Time
	DueDate      *time.Time
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	Status       string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Balance is the outstanding amount; negative when overpaid.
func (i Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

func (i Invoice) IsFullyPaid() bool {
	return i.PaidAmount.GreaterThanOrEqual(i.TotalAmount)
}
