package service

import (
	"context"
	"database/sql"
	"time"

	"bizledger/internal/domain"
)

// fakeUnitOfWork runs fn without a database and records the outcome.
type fakeUnitOfWork struct {
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	if err := fn(ctx, nil); err != nil {
		u.rolledBack = true
		return err
	}
	u.committed = true
	return nil
}

type mockProductRepository struct {
	FindByIDsForUpdateFunc func(ctx context.Context, tx *sql.Tx, ids []int) (map[int]*domain.Product, error)
	AdjustStockFunc        func(ctx context.Context, tx *sql.Tx, productID int, delta int) error
}

func (m *mockProductRepository) FindByIDsForUpdate(ctx context.Context, tx *sql.Tx, ids []int) (map[int]*domain.Product, error) {
	return m.FindByIDsForUpdateFunc(ctx, tx, ids)
}

func (m *mockProductRepository) AdjustStock(ctx context.Context, tx *sql.Tx, productID int, delta int) error {
	return m.AdjustStockFunc(ctx, tx, productID, delta)
}

type mockOrderRepository struct {
	InsertFunc            func(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByIDForUpdateFunc func(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, id uint) (*domain.Order, error)
	MarkReceivedFunc      func(ctx context.Context, tx *sql.Tx, id uint, actorID int, at time.Time) error
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

func (m *mockOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, id uint) (*domain.Order, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, kind, id)
}

func (m *mockOrderRepository) MarkReceived(ctx context.Context, tx *sql.Tx, id uint, actorID int, at time.Time) error {
	return m.MarkReceivedFunc(ctx, tx, id, actorID, at)
}

type mockOrderItemRepository struct {
	InsertFunc          func(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, item domain.OrderItem) (uint, error)
	FindByOrderIDTxFunc func(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error)
}

func (m *mockOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, item domain.OrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, kind, item)
}

func (m *mockOrderItemRepository) FindByOrderIDTx(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error) {
	return m.FindByOrderIDTxFunc(ctx, tx, kind, orderID)
}

type mockStockTransactionRepository struct {
	AppendFunc func(ctx context.Context, tx *sql.Tx, st domain.StockTransaction) (uint, error)
}

func (m *mockStockTransactionRepository) Append(ctx context.Context, tx *sql.Tx, st domain.StockTransaction) (uint, error) {
	return m.AppendFunc(ctx, tx, st)
}

// ledgerFake backs the product, item and stock mocks with in-memory state
// so tests can assert the writes a workflow issued.
type ledgerFake struct {
	stock        map[int]int
	lockedIDs    [][]int
	deltas       map[int]int
	items        []domain.OrderItem
	transactions []domain.StockTransaction
}

func newLedgerFake(stock map[int]int) *ledgerFake {
	return &ledgerFake{stock: stock, deltas: map[int]int{}}
}

func (f *ledgerFake) products() *mockProductRepository {
	return &mockProductRepository{
		FindByIDsForUpdateFunc: func(ctx context.Context, tx *sql.Tx, ids []int) (map[int]*domain.Product, error) {
			f.lockedIDs = append(f.lockedIDs, ids)
			found := map[int]*domain.Product{}
			for _, id := range ids {
				qty, ok := f.stock[id]
				if !ok {
					return nil, errNotFound(id)
				}
				found[id] = &domain.Product{ID: id, Code: codeOf(id), StockQuantity: qty}
			}
			return found, nil
		},
		AdjustStockFunc: func(ctx context.Context, tx *sql.Tx, productID int, delta int) error {
			f.stock[productID] += delta
			f.deltas[productID] += delta
			return nil
		},
	}
}

func (f *ledgerFake) itemRepo() *mockOrderItemRepository {
	return &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, item domain.OrderItem) (uint, error) {
			f.items = append(f.items, item)
			return uint(len(f.items)), nil
		},
		FindByOrderIDTxFunc: func(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error) {
			return f.items, nil
		},
	}
}

func (f *ledgerFake) stockRepo() *mockStockTransactionRepository {
	return &mockStockTransactionRepository{
		AppendFunc: func(ctx context.Context, tx *sql.Tx, st domain.StockTransaction) (uint, error) {
			f.transactions = append(f.transactions, st)
			return uint(len(f.transactions)), nil
		},
	}
}
