package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestOrderItemRepository_Insert_UsesKindTable(t *testing.T) {
	tests := []struct {
		kind  domain.OrderKind
		query string
	}{
		{domain.OrderKindSales, "INSERT INTO sales_order_items \\(so_id,"},
		{domain.OrderKindPurchase, "INSERT INTO purchase_order_items \\(po_id,"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			db, mock := testutil.NewMockDB(t)
			repo := NewMySQLOrderItemRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(tt.query).
				WithArgs(10, 3, 4, testutil.DecimalArg("2.50"), testutil.DecimalArg("10.00")).
				WillReturnResult(sqlmock.NewResult(21, 1))

			tx, err := db.Begin()
			require.NoError(t, err)

			item := domain.NewOrderItem(3, 4, decimal.RequireFromString("2.50"))
			item.OrderID = 10

			id, err := repo.Insert(context.Background(), tx, tt.kind, item)

			require.NoError(t, err)
			assert.Equal(t, uint(21), id)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderItemRepository_Insert_MissingProduct(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sales_order_items").
		WillReturnError(&gomysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), tx, domain.OrderKindSales, domain.OrderItem{OrderID: 1, ProductID: 404, Quantity: 1})

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Product 404 not found", nfe.Message)
}

func TestOrderItemRepository_FindByOrderID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectQuery("SELECT id, po_id, product_id, quantity, unit_price, total_price FROM purchase_order_items WHERE po_id = (.+) ORDER BY id").
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "po_id", "product_id", "quantity", "unit_price", "total_price"}).
			AddRow(1, 8, 3, 20, "5.00", "100.00").
			AddRow(2, 8, 4, 1, "0.00", "0.00"))

	items, err := repo.FindByOrderID(context.Background(), domain.OrderKindPurchase, 8)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 20, items[0].Quantity)
	assert.True(t, items[0].TotalPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 4, items[1].ProductID)
}

func TestOrderItemRepository_FindByOrderID_Empty(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectQuery("FROM sales_order_items").
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "so_id", "product_id", "quantity", "unit_price", "total_price"}))

	items, err := repo.FindByOrderID(context.Background(), domain.OrderKindSales, 8)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// Integration Tests

func TestOrderItemRepository_Integration_PreservesInputOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	orders := NewMySQLOrderRepository(db)
	repo := NewMySQLOrderItemRepository(db)
	a := testutil.InsertProduct(t, db, "ITEM-A", 10)
	b := testutil.InsertProduct(t, db, "ITEM-B", 10)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	orderID, err := orders.Insert(ctx, tx, domain.Order{
		Kind:          domain.OrderKindSales,
		Number:        "SO-ITEMS",
		CustomerName:  "Acme",
		OrderDate:     time.Now().UTC(),
		TotalAmount:   decimal.RequireFromString("80.00"),
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedBy:     1,
	})
	require.NoError(t, err)

	for _, item := range []domain.OrderItem{
		domain.NewOrderItem(b, 1, decimal.RequireFromString("50.00")),
		domain.NewOrderItem(a, 3, decimal.RequireFromString("10.00")),
	} {
		item.OrderID = orderID
		_, err := repo.Insert(ctx, tx, domain.OrderKindSales, item)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())

	items, err := repo.FindByOrderID(ctx, domain.OrderKindSales, orderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b, items[0].ProductID)
	assert.Equal(t, a, items[1].ProductID)
	assert.True(t, domain.OrderTotal(items).Equal(decimal.RequireFromString("80")))
}
