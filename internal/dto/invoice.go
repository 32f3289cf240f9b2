package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	SalesOrderID  *uint           `json:"sales_order_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       *string         `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes"`
}

// RecordPaymentCommand is the validated input of the payment workflow.
type RecordPaymentCommand struct {
	InvoiceID       uint
	Amount          decimal.Decimal
	Method          string
	PaymentDate     time.Time
	ReferenceNumber *string
	Notes           *string
	ActorID         int
}

type PaymentResult struct {
	Payment domain.Payment
	Invoice domain.Invoice
	// Clamped reports that the recorded amount was reduced to the
	// outstanding balance.
	Clamped bool
}

type RecordPaymentRequest struct {
	InvoiceID       uint            `json:"invoice_id"`
	PaymentDate     string          `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber *string         `json:"reference_number"`
	Notes           *string         `json:"notes"`
}

type PaymentResponse struct {
	ID              uint            `json:"id"`
	InvoiceID       uint            `json:"invoice_id"`
	PaymentDate     string          `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedBy       int             `json:"created_by"`
}

type InvoiceResponse struct {
	ID            uint              `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	SalesOrderID  *uint             `json:"sales_order_id,omitempty"`
	CustomerName  string            `json:"customer_name"`
	InvoiceDate   string            `json:"invoice_date"`
	DueDate       *string           `json:"due_date,omitempty"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	Balance       decimal.Decimal   `json:"balance"`
	Status        string            `json:"status"`
	Notes         *string           `json:"notes,omitempty"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
}

type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
	Clamped bool            `json:"clamped"`
}

func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		PaymentDate:     p.PaymentDate.Format(DateLayout),
		Amount:          p.Amount,
		PaymentMethod:   p.Method,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy,
	}
}

func NewInvoiceResponse(inv domain.Invoice, payments []domain.Payment) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.Number,
		SalesOrderID:  inv.SalesOrderID,
		CustomerName:  inv.CustomerName,
		InvoiceDate:   inv.InvoiceDate.Format(DateLayout),
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance(),
		Status:        inv.Status,
		Notes:         inv.Notes,
	}

	if inv.DueDate != nil {
		due := inv.DueDate.Format(DateLayout)
		resp.DueDate = &due
	}

	for _, p := range payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(p))
	}

	return resp
}
