package service

import (
	"context"
	"database/sql"
	"time"

	"bizledger/internal/domain"
)

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
}

type ProductRepository interface {
	FindByIDsForUpdate(ctx context.Context, tx *sql.Tx, ids []int) (map[int]*domain.Product, error)
	AdjustStock(ctx context.Context, tx *sql.Tx, productID int, delta int) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, id uint) (*domain.Order, error)
	MarkReceived(ctx context.Context, tx *sql.Tx, id uint, actorID int, at time.Time) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, item domain.OrderItem) (uint, error)
	FindByOrderIDTx(ctx context.Context, tx *sql.Tx, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error)
}

type StockTransactionRepository interface {
	Append(ctx context.Context, tx *sql.Tx, st domain.StockTransaction) (uint, error)
}
