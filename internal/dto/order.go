package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type OrderLine struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand is the validated input of the order workflow.
type CreateOrderCommand struct {
	Kind          domain.OrderKind
	Number        string
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	SupplierID    int
	OrderDate     time.Time
	Notes         *string
	Lines         []OrderLine
	ActorID       int
}

type OrderResult struct {
	Order             domain.Order
	Items             []domain.OrderItem
	StockTransactions []domain.StockTransaction
}

type ReceiveResult struct {
	Order             domain.Order
	Items             []domain.OrderItem
	StockTransactions []domain.StockTransaction
	AlreadyReceived   bool
}

type OrderItemRequest struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateSalesOrderRequest struct {
	SONumber      string             `json:"so_number"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail *string            `json:"customer_email"`
	CustomerPhone *string            `json:"customer_phone"`
	OrderDate     string             `json:"order_date"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items"`
}

type CreatePurchaseOrderRequest struct {
	PONumber   string             `json:"po_number"`
	SupplierID int                `json:"supplier_id"`
	OrderDate  string             `json:"order_date"`
	Notes      *string            `json:"notes"`
	Items      []OrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	ID         uint            `json:"id"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	Kind          domain.OrderKind    `json:"kind"`
	SONumber      string              `json:"so_number,omitempty"`
	PONumber      string              `json:"po_number,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail *string             `json:"customer_email,omitempty"`
	CustomerPhone *string             `json:"customer_phone,omitempty"`
	SupplierID    int                 `json:"supplier_id,omitempty"`
	OrderDate     string              `json:"order_date"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	CreatedBy     int                 `json:"created_by"`
	ReceivedAt    *time.Time          `json:"received_at,omitempty"`
	ReceivedBy    *int                `json:"received_by,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}

type ReceiveResponse struct {
	OrderResponse
	AlreadyReceived bool `json:"already_received"`
}

func NewOrderResponse(order domain.Order, items []domain.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		Kind:          order.Kind,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		SupplierID:    order.SupplierID,
		OrderDate:     order.OrderDate.Format(DateLayout),
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Notes:         order.Notes,
		CreatedBy:     order.CreatedBy,
		ReceivedAt:    order.ReceivedAt,
		ReceivedBy:    order.ReceivedBy,
		Items:         make([]OrderItemResponse, len(items)),
	}

	if order.Kind == domain.OrderKindPurchase {
		resp.PONumber = order.Number
	} else {
		resp.SONumber = order.Number
	}

	for i, item := range items {
		resp.Items[i] = OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	return resp
}
