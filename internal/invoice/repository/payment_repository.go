package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bizledger/internal/domain"
)

// MySQLPaymentRepository stores payments. Rows are never updated.
type MySQLPaymentRepository struct {
	db *sql.DB
}

func NewMySQLPaymentRepository(db *sql.DB) *MySQLPaymentRepository {
	return &MySQLPaymentRepository{db: db}
}

func (r *MySQLPaymentRepository) Insert(ctx context.Context, tx *sql.Tx, p domain.Payment) (uint, error) {
	query := `
		INSERT INTO payments (invoice_id, payment_date, amount, payment_method, reference_number, notes, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		p.InvoiceID, p.PaymentDate, p.Amount, p.Method, p.ReferenceNumber, p.Notes, p.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uint) ([]domain.Payment, error) {
	query := `
		SELECT id, invoice_id, payment_date, amount, payment_method, reference_number, notes, created_by, created_at
		FROM payments
		WHERE invoice_id = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.PaymentDate, &p.Amount, &p.Method,
			&p.ReferenceNumber, &p.Notes, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}
