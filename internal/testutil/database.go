package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"bizledger/internal/infrastructure/mysql"
)

// SetupTestDB opens the integration database. It expects a MySQL database
// called 'bizledger_test' on localhost:3306, or the DSN in
// BIZLEDGER_TEST_DSN, and skips the test when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("BIZLEDGER_TEST_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/bizledger_test?parseTime=true&multiStatements=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables applies the embedded schema migrations.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if _, err := mysql.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

// CleanupTestDB empties the ledger tables, children first, and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"payments", "invoices", "stock_transactions",
		"sales_order_items", "sales_orders",
		"purchase_order_items", "purchase_orders",
		"products",
	}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertProduct seeds a product with the given opening stock and returns its id.
func InsertProduct(t *testing.T, db *sql.DB, code string, stock int) int {
	result, err := db.Exec(`
		INSERT INTO products (product_code, name, cost_price, selling_price, stock_quantity, opening_stock)
		VALUES (?, ?, 1.00, 2.00, ?, ?)`,
		code, "Product "+code, stock, stock,
	)
	if err != nil {
		t.Fatalf("failed to insert product %s: %v", code, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read product id: %v", err)
	}

	return int(id)
}

// StockOf reads the persisted stock quantity of a product.
func StockOf(t *testing.T, db *sql.DB, productID int) int {
	var stock int
	if err := db.QueryRow(`SELECT stock_quantity FROM products WHERE id = ?`, productID).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock of product %d: %v", productID, err)
	}
	return stock
}

// CountRows counts rows of table matching the optional where clause.
func CountRows(t *testing.T, db *sql.DB, table string, where string, args ...any) int {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
