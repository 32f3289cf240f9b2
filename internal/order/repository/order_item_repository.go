package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, item domain.OrderItem) (uint, error) {
	t := tablesFor(kind)
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, product_id, quantity, unit_price, total_price)
		VALUES (?, ?, ?, ?, ?)`, t.items, t.orderFK)

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		if mysql.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("Product %d not found", item.ProductID))
		}
		return 0, fmt.Errorf("inserting %s item: %w", kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

// FindByOrderID lists an order's line items in insertion order.
func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error) {
	return r.find(ctx, r.db, kind, orderID)
}

// FindByOrderIDTx is FindByOrderID reading through tx.
func (r *MySQLOrderItemRepository) FindByOrderIDTx(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error) {
	return r.find(ctx, tx, kind, orderID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *MySQLOrderItemRepository) find(ctx context.Context, q querier, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error) {
	t := tablesFor(kind)
	query := fmt.Sprintf(`
		SELECT id, %s, product_id, quantity, unit_price, total_price
		FROM %s
		WHERE %s = ?
		ORDER BY id`, t.orderFK, t.items, t.orderFK)

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying %s items: %w", kind, err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scanning %s item row: %w", kind, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s item rows: %w", kind, err)
	}

	return items, nil
}
