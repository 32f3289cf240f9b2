package domain

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID         uint
	OrderID    uint
	ProductID  int
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewOrderItem builds a line item with its derived total price.
func NewOrderItem(productID int, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: LineTotal(quantity, unitPrice),
	}
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal sums the stored total price of every line. An empty slice
// yields zero.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
