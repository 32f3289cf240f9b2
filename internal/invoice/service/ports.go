package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
}

type InvoiceRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error)
	IncrementPaidAmount(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error
	FindTotals(ctx context.Context, tx *sql.Tx, id uint) (decimal.Decimal, decimal.Decimal, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
}

type PaymentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, p domain.Payment) (uint, error)
}
