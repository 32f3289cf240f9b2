package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert writes an order header. A colliding order number yields a
// DuplicateError naming the order kind.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	var (
		result sql.Result
		err    error
	)

	if order.Kind == domain.OrderKindPurchase {
		query := `
			INSERT INTO purchase_orders (po_number, supplier_id, order_date, total_amount, status, notes, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		result, err = tx.ExecContext(ctx, query,
			order.Number, order.SupplierID, order.OrderDate, order.TotalAmount,
			order.Status, order.Notes, order.CreatedBy,
		)
	} else {
		query := `
			INSERT INTO sales_orders (so_number, customer_name, customer_email, customer_phone,
			                          order_date, total_amount, status, payment_status, notes, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		result, err = tx.ExecContext(ctx, query,
			order.Number, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
			order.OrderDate, order.TotalAmount, order.Status, order.PaymentStatus,
			order.Notes, order.CreatedBy,
		)
	}

	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewDuplicateError(order.Kind.Label() + " number already exists")
		}
		return 0, fmt.Errorf("inserting %s: %w", order.Kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, kind domain.OrderKind, id uint) (*domain.Order, error) {
	return r.findOne(ctx, r.db, kind, id, "")
}

// FindByIDForUpdate reads an order header and locks it until tx ends.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, id uint) (*domain.Order, error) {
	return r.findOne(ctx, tx, kind, id, " FOR UPDATE")
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *MySQLOrderRepository) findOne(ctx context.Context, q queryRower, kind domain.OrderKind, id uint, lock string) (*domain.Order, error) {
	order := domain.Order{Kind: kind}
	var err error

	if kind == domain.OrderKindPurchase {
		query := `
			SELECT id, po_number, supplier_id, order_date, total_amount, status, notes,
			       created_by, received_at, received_by, created_at, updated_at
			FROM purchase_orders
			WHERE id = ?` + lock
		var (
			receivedAt sql.NullTime
			receivedBy sql.NullInt64
		)
		err = q.QueryRowContext(ctx, query, id).Scan(
			&order.ID, &order.Number, &order.SupplierID, &order.OrderDate, &order.TotalAmount,
			&order.Status, &order.Notes, &order.CreatedBy, &receivedAt, &receivedBy,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if receivedAt.Valid {
			order.ReceivedAt = &receivedAt.Time
		}
		if receivedBy.Valid {
			by := int(receivedBy.Int64)
			order.ReceivedBy = &by
		}
	} else {
		query := `
			SELECT id, so_number, customer_name, customer_email, customer_phone, order_date,
			       total_amount, status, payment_status, notes, created_by, created_at, updated_at
			FROM sales_orders
			WHERE id = ?` + lock
		err = q.QueryRowContext(ctx, query, id).Scan(
			&order.ID, &order.Number, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.OrderDate, &order.TotalAmount, &order.Status, &order.PaymentStatus,
			&order.Notes, &order.CreatedBy, &order.CreatedAt, &order.UpdatedAt,
		)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(kind.Label() + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s by id: %w", kind, err)
	}

	return &order, nil
}

// MarkReceived transitions a purchase order to received and records who
// received it and when.
func (r *MySQLOrderRepository) MarkReceived(ctx context.Context, tx *sql.Tx, id uint, actorID int, at time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = ?, received_at = ?, received_by = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, domain.OrderStatusReceived, at, actorID, id)
	if err != nil {
		return fmt.Errorf("updating purchase order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(domain.OrderKindPurchase.Label() + " not found")
	}

	return nil
}
