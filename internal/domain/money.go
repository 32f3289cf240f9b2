package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits every money column stores.
const MoneyScale = 2

// FitsMoneyScale reports whether d is representable in a money column
// without rounding.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
