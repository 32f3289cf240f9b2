package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
)

const productColumns = `id, product_code, name, description, category, unit,
	cost_price, selling_price, stock_quantity, opening_stock, min_stock_level,
	status, created_at, updated_at`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p                           domain.Product
		description, category, unit sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &description, &category, &unit,
		&p.CostPrice, &p.SellingPrice, &p.StockQuantity, &p.OpeningStock, &p.MinStockLevel,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Category = category.String
	p.Unit = unit.String
	return &p, nil
}

// Insert creates a product whose opening stock equals its initial stock
// quantity.
func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO products (product_code, name, description, category, unit,
		                      cost_price, selling_price, stock_quantity, opening_stock,
		                      min_stock_level, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.Code, p.Name, nullString(p.Description), nullString(p.Category), nullString(p.Unit),
		p.CostPrice, p.SellingPrice, p.StockQuantity, p.StockQuantity,
		p.MinStockLevel, p.Status,
	)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewDuplicateError("Product code already exists")
		}
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(id), nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return p, nil
}

// FindByIDsForUpdate locks the given products in ascending id order and
// returns them keyed by id. Duplicate ids are locked once. A missing id
// fails the whole call with a NotFoundError naming it.
func (r *MySQLRepository) FindByIDsForUpdate(ctx context.Context, tx *sql.Tx, ids []int) (map[int]*domain.Product, error) {
	if len(ids) == 0 {
		return map[int]*domain.Product{}, nil
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	placeholders := make([]string, len(sorted))
	args := make([]any, len(sorted))
	for i, id := range sorted {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id IN (%s) ORDER BY id FOR UPDATE`,
		productColumns, strings.Join(placeholders, ", "))

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("locking products: %w", err)
	}
	defer rows.Close()

	products := make(map[int]*domain.Product, len(sorted))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	for _, id := range sorted {
		if _, ok := products[id]; !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Product %d not found", id))
		}
	}

	return products, nil
}

// AdjustStock applies a signed delta to a product's stock quantity. The
// product row must already be locked by tx.
func (r *MySQLRepository) AdjustStock(ctx context.Context, tx *sql.Tx, productID int, delta int) error {
	query := `UPDATE products SET stock_quantity = stock_quantity + ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, delta, productID)
	if err != nil {
		return fmt.Errorf("adjusting product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("Product %d not found", productID))
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
