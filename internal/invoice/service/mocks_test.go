package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"bizledger/internal/domain"
)

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

type mockInvoiceRepository struct {
	FindByIDForUpdateFunc   func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error)
	IncrementPaidAmountFunc func(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error
	FindTotalsFunc          func(ctx context.Context, tx *sql.Tx, id uint) (decimal.Decimal, decimal.Decimal, error)
	UpdateStatusFunc        func(ctx context.Context, tx *sql.Tx, id uint, status string) error
}

func (m *mockInvoiceRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error) {
	return m.FindByIDForUpdateFunc(ctx, tx, id)
}

func (m *mockInvoiceRepository) IncrementPaidAmount(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error {
	return m.IncrementPaidAmountFunc(ctx, tx, id, amount)
}

func (m *mockInvoiceRepository) FindTotals(ctx context.Context, tx *sql.Tx, id uint) (decimal.Decimal, decimal.Decimal, error) {
	return m.FindTotalsFunc(ctx, tx, id)
}

func (m *mockInvoiceRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	return m.UpdateStatusFunc(ctx, tx, id, status)
}

type mockPaymentRepository struct {
	InsertFunc func(ctx context.Context, tx *sql.Tx, p domain.Payment) (uint, error)
}

func (m *mockPaymentRepository) Insert(ctx context.Context, tx *sql.Tx, p domain.Payment) (uint, error) {
	return m.InsertFunc(ctx, tx, p)
}

// invoiceFake keeps one invoice and its payments in memory.
type invoiceFake struct {
	invoice  domain.Invoice
	payments []domain.Payment
	statuses []string
}

func newInvoiceFake(total, paid string, status string) *invoiceFake {
	return &invoiceFake{invoice: domain.Invoice{
		ID:          9,
		Number:      "INV-9",
		TotalAmount: decimal.RequireFromString(total),
		PaidAmount:  decimal.RequireFromString(paid),
		Status:      status,
	}}
}

func (f *invoiceFake) invoices() *mockInvoiceRepository {
	return &mockInvoiceRepository{
		FindByIDForUpdateFunc: func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error) {
			inv := f.invoice
			return &inv, nil
		},
		IncrementPaidAmountFunc: func(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error {
			f.invoice.PaidAmount = f.invoice.PaidAmount.Add(amount)
			return nil
		},
		FindTotalsFunc: func(ctx context.Context, tx *sql.Tx, id uint) (decimal.Decimal, decimal.Decimal, error) {
			return f.invoice.TotalAmount, f.invoice.PaidAmount, nil
		},
		UpdateStatusFunc: func(ctx context.Context, tx *sql.Tx, id uint, status string) error {
			f.invoice.Status = status
			f.statuses = append(f.statuses, status)
			return nil
		},
	}
}

func (f *invoiceFake) paymentRepo() *mockPaymentRepository {
	return &mockPaymentRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, p domain.Payment) (uint, error) {
			f.payments = append(f.payments, p)
			return uint(len(f.payments)), nil
		},
	}
}
