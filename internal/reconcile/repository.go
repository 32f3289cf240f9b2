package reconcile

import (
	"context"
	"database/sql"
	"fmt"

	"bizledger/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type orderTables struct {
	entity  string
	orders  string
	number  string
	items   string
	orderFK string
}

func tablesFor(kind domain.OrderKind) orderTables {
	if kind == domain.OrderKindPurchase {
		return orderTables{"purchase_order", "purchase_orders", "po_number", "purchase_order_items", "po_id"}
	}
	return orderTables{"sales_order", "sales_orders", "so_number", "sales_order_items", "so_id"}
}

// OrderTotalDrift lists orders whose total_amount differs from the sum of
// their line totals.
func (r *MySQLRepository) OrderTotalDrift(ctx context.Context, kind domain.OrderKind) ([]Discrepancy, error) {
	t := tablesFor(kind)
	query := fmt.Sprintf(`
		SELECT o.id, o.%[1]s, o.total_amount, COALESCE(SUM(i.total_price), 0)
		FROM %[2]s o
		LEFT JOIN %[3]s i ON i.%[4]s = o.id
		GROUP BY o.id, o.%[1]s, o.total_amount
		HAVING o.total_amount <> COALESCE(SUM(i.total_price), 0)
		ORDER BY o.id`, t.number, t.orders, t.items, t.orderFK)

	return r.query(ctx, CheckOrderTotal, t.entity, query)
}

// LineTotalDrift lists line items whose total_price is not quantity times
// unit_price.
func (r *MySQLRepository) LineTotalDrift(ctx context.Context, kind domain.OrderKind) ([]Discrepancy, error) {
	t := tablesFor(kind)
	query := fmt.Sprintf(`
		SELECT id, CAST(%[1]s AS CHAR), total_price, quantity * unit_price
		FROM %[2]s
		WHERE total_price <> quantity * unit_price
		ORDER BY id`, t.orderFK, t.items)

	return r.query(ctx, CheckLineTotal, t.entity+"_item", query)
}

// InvoicePaidDrift lists invoices whose paid_amount differs from the sum of
// their payments.
func (r *MySQLRepository) InvoicePaidDrift(ctx context.Context) ([]Discrepancy, error) {
	query := `
		SELECT inv.id, inv.invoice_number, inv.paid_amount, COALESCE(SUM(p.amount), 0)
		FROM invoices inv
		LEFT JOIN payments p ON p.invoice_id = inv.id
		GROUP BY inv.id, inv.invoice_number, inv.paid_amount
		HAVING inv.paid_amount <> COALESCE(SUM(p.amount), 0)
		ORDER BY inv.id`

	return r.query(ctx, CheckInvoicePaid, "invoice", query)
}

// StockDrift lists products whose stock_quantity differs from the opening
// stock plus every signed stock transaction.
func (r *MySQLRepository) StockDrift(ctx context.Context) ([]Discrepancy, error) {
	query := `
		SELECT p.id, p.product_code, p.stock_quantity, p.opening_stock + COALESCE(SUM(st.quantity), 0)
		FROM products p
		LEFT JOIN stock_transactions st ON st.product_id = p.id
		GROUP BY p.id, p.product_code, p.stock_quantity, p.opening_stock
		HAVING p.stock_quantity <> p.opening_stock + COALESCE(SUM(st.quantity), 0)
		ORDER BY p.id`

	return r.query(ctx, CheckProductStock, "product", query)
}

func (r *MySQLRepository) query(ctx context.Context, check, entity, query string) ([]Discrepancy, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s drift: %w", check, err)
	}
	defer rows.Close()

	var found []Discrepancy
	for rows.Next() {
		d := Discrepancy{Check: check, Entity: entity}
		if err := rows.Scan(&d.EntityID, &d.Reference, &d.Stored, &d.Expected); err != nil {
			return nil, fmt.Errorf("scanning %s drift row: %w", check, err)
		}
		found = append(found, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s drift rows: %w", check, err)
	}

	return found, nil
}
