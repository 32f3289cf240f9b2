package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderKind string

const (
	OrderKindSales    OrderKind = "sales"
	OrderKindPurchase OrderKind = "purchase"
)

// Label is the human-readable entity name used in client-facing messages.
func (k OrderKind) Label() string {
	if k == OrderKindPurchase {
		return "Purchase order"
	}
	return "Sales order"
}

// ReferenceType is the value stored in stock_transactions.reference_type
// for entries originating from an order of this kind.
func (k OrderKind) ReferenceType() string {
	if k == OrderKindPurchase {
		return ReferencePurchaseOrder
	}
	return ReferenceSalesOrder
}

// NumberField is the request field carrying the order number.
func (k OrderKind) NumberField() string {
	if k == OrderKindPurchase {
		return "po_number"
	}
	return "so_number"
}

// NumberPrefix is used when the caller does not supply an order number.
func (k OrderKind) NumberPrefix() string {
	if k == OrderKindPurchase {
		return "PO"
	}
	return "SO"
}

// Order is the shared header shape of sales and purchase orders. Customer
// fields are only meaningful for sales orders, SupplierID only for purchase
// orders.
type Order struct {
	ID            uint
	Kind          OrderKind
	Number        string
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	SupplierID    int
	OrderDate     time.Time
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	Notes         *string
	CreatedBy     int
	ReceivedAt    *time.Time
	ReceivedBy    *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusReceived  = "received"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
)

func (o Order) IsReceived() bool {
	return o.Status == OrderStatusReceived
}
