package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
)

type MySQLInvoiceRepository struct {
	db *sql.DB
}

func NewMySQLInvoiceRepository(db *sql.DB) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{db: db}
}

func (r *MySQLInvoiceRepository) Insert(ctx context.Context, inv domain.Invoice) (uint, error) {
	query := `
		INSERT INTO invoices (invoice_number, sales_order_id, customer_name, invoice_date,
		                      due_date, total_amount, paid_amount, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		inv.Number, inv.SalesOrderID, inv.CustomerName, inv.InvoiceDate,
		inv.DueDate, inv.TotalAmount, inv.PaidAmount, inv.Status, inv.Notes,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewDuplicateError("Invoice number already exists")
		}
		if mysql.IsForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("Sales order not found")
		}
		return 0, fmt.Errorf("inserting invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLInvoiceRepository) FindByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	return r.findOne(ctx, r.db, id, "")
}

// FindByIDForUpdate reads an invoice and locks it until tx ends, so
// concurrent payments against it apply one after the other.
func (r *MySQLInvoiceRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error) {
	return r.findOne(ctx, tx, id, " FOR UPDATE")
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *MySQLInvoiceRepository) findOne(ctx context.Context, q queryRower, id uint, lock string) (*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, sales_order_id, customer_name, invoice_date, due_date,
		       total_amount, paid_amount, status, notes, created_at, updated_at
		FROM invoices
		WHERE id = ?` + lock

	var (
		inv          domain.Invoice
		salesOrderID sql.NullInt64
		dueDate      sql.NullTime
	)
	err := q.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &salesOrderID, &inv.CustomerName, &inv.InvoiceDate, &dueDate,
		&inv.TotalAmount, &inv.PaidAmount, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Invoice not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying invoice by id: %w", err)
	}

	if salesOrderID.Valid {
		soID := uint(salesOrderID.Int64)
		inv.SalesOrderID = &soID
	}
	if dueDate.Valid {
		inv.DueDate = &dueDate.Time
	}

	return &inv, nil
}

func (r *MySQLInvoiceRepository) IncrementPaidAmount(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error {
	query := `UPDATE invoices SET paid_amount = paid_amount + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("incrementing invoice paid amount: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("Invoice not found")
	}

	return nil
}

// FindTotals re-reads the persisted total and paid amounts within tx.
func (r *MySQLInvoiceRepository) FindTotals(ctx context.Context, tx *sql.Tx, id uint) (decimal.Decimal, decimal.Decimal, error) {
	query := `SELECT total_amount, paid_amount FROM invoices WHERE id = ?`

	var total, paid decimal.Decimal
	err := tx.QueryRowContext(ctx, query, id).Scan(&total, &paid)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, decimal.Zero, apperrors.NewNotFoundError("Invoice not found")
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("querying invoice totals: %w", err)
	}

	return total, paid, nil
}

func (r *MySQLInvoiceRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	query := `UPDATE invoices SET status = ? WHERE id = ?`

	_, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	return nil
}
