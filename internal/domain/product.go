package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int
	Code          string
	Name          string
	Description   string
	Category      string
	Unit          string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int
	OpeningStock  int
	MinStockLevel int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"

	DefaultMinStockLevel = 10
)

func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
