package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bizledger/internal/domain"
)

// MySQLStockTransactionRepository writes the stock audit log. Entries are
// only ever inserted.
type MySQLStockTransactionRepository struct {
	db *sql.DB
}

func NewMySQLStockTransactionRepository(db *sql.DB) *MySQLStockTransactionRepository {
	return &MySQLStockTransactionRepository{db: db}
}

func (r *MySQLStockTransactionRepository) Append(ctx context.Context, tx *sql.Tx, st domain.StockTransaction) (uint, error) {
	query := `
		INSERT INTO stock_transactions (product_id, transaction_type, quantity, reference_type, reference_id, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		st.ProductID, st.Type, st.Quantity, st.ReferenceType, st.ReferenceID, st.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting stock transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

// FindByReference lists the audit entries written for one order, oldest first.
func (r *MySQLStockTransactionRepository) FindByReference(ctx context.Context, referenceType string, referenceID uint) ([]domain.StockTransaction, error) {
	query := `
		SELECT id, product_id, transaction_type, quantity, reference_type, reference_id, created_by, created_at
		FROM stock_transactions
		WHERE reference_type = ? AND reference_id = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("querying stock transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockTransaction
	for rows.Next() {
		var st domain.StockTransaction
		if err := rows.Scan(
			&st.ID, &st.ProductID, &st.Type, &st.Quantity,
			&st.ReferenceType, &st.ReferenceID, &st.CreatedBy, &st.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stock transaction row: %w", err)
		}
		entries = append(entries, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock transaction rows: %w", err)
	}

	return entries, nil
}
