package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CheckOrderTotal   = "order_total"
	CheckLineTotal    = "line_total"
	CheckInvoicePaid  = "invoice_paid"
	CheckProductStock = "product_stock"
)

// Discrepancy is one stored aggregate that disagrees with the rows it is
// derived from.
type Discrepancy struct {
	Check     string          `json:"check"`
	Entity    string          `json:"entity"`
	EntityID  uint            `json:"entity_id"`
	Reference string          `json:"reference"`
	Stored    decimal.Decimal `json:"stored"`
	Expected  decimal.Decimal `json:"expected"`
}

type Report struct {
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

func (r Report) Clean() bool {
	return len(r.Discrepancies) == 0
}
