package domain

import "time"

// StockTransaction is an append-only audit entry. Quantity is signed:
// negative for sales, positive for purchase receipts.
type StockTransaction struct {
	ID            uint
	ProductID     int
	Type          string
	Quantity      int
	ReferenceType string
	ReferenceID   uint
	CreatedBy     int
	CreatedAt     time.Time
}

const (
	StockTransactionSale     = "sale"
	StockTransactionPurchase = "purchase"

	ReferenceSalesOrder    = "sales_order"
	ReferencePurchaseOrder = "purchase_order"
)

func NewSaleTransaction(productID int, quantity int, orderID uint, actorID int) StockTransaction {
	return StockTransaction{
		ProductID:     productID,
		Type:          StockTransactionSale,
		Quantity:      -quantity,
		ReferenceType: ReferenceSalesOrder,
		ReferenceID:   orderID,
		CreatedBy:     actorID,
	}
}

func NewPurchaseReceiptTransaction(productID int, quantity int, orderID uint, actorID int) StockTransaction {
	return StockTransaction{
		ProductID:     productID,
		Type:          StockTransactionPurchase,
		Quantity:      quantity,
		ReferenceType: ReferencePurchaseOrder,
		ReferenceID:   orderID,
		CreatedBy:     actorID,
	}
}
