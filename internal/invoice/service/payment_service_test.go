package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

func paymentCommand(amount string) dto.RecordPaymentCommand {
	return dto.RecordPaymentCommand{
		InvoiceID:   9,
		Amount:      decimal.RequireFromString(amount),
		Method:      "bank_transfer",
		PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		ActorID:     3,
	}
}

func newTestPaymentService(f *invoiceFake, policy domain.OverpaymentPolicy) (*PaymentService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{}
	return NewPaymentService(uow, f.invoices(), f.paymentRepo(), policy, zap.NewNop()), uow
}

func TestPaymentService_RecordPayment_PartialThenFull(t *testing.T) {
	f := newInvoiceFake("100.00", "0", domain.InvoiceStatusSent)
	svc, uow := newTestPaymentService(f, domain.OverpaymentReject)
	ctx := context.Background()

	first, err := svc.RecordPayment(ctx, paymentCommand("60.00"))
	require.NoError(t, err)
	assert.True(t, uow.committed)
	assert.Equal(t, domain.InvoiceStatusSent, first.Invoice.Status)
	assert.True(t, first.Invoice.PaidAmount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, uint(1), first.Payment.ID)
	assert.Equal(t, 3, first.Payment.CreatedBy)

	second, err := svc.RecordPayment(ctx, paymentCommand("40.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, second.Invoice.Status)
	assert.True(t, second.Invoice.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, second.Invoice.Balance().IsZero())

	assert.Equal(t, []string{domain.InvoiceStatusPaid}, f.statuses)
	assert.True(t, domain.SumPayments(f.payments).Equal(f.invoice.PaidAmount))
}

func TestPaymentService_RecordPayment_RejectsOverpayment(t *testing.T) {
	f := newInvoiceFake("100.00", "60.00", domain.InvoiceStatusSent)
	svc, uow := newTestPaymentService(f, domain.OverpaymentReject)

	_, err := svc.RecordPayment(context.Background(), paymentCommand("50.00"))

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "Payment exceeds outstanding balance: balance 40.00, amount 50.00", ce.Message)
	assert.True(t, uow.rolledBack)
	assert.Empty(t, f.payments)
	assert.True(t, f.invoice.PaidAmount.Equal(decimal.NewFromInt(60)))
}

func TestPaymentService_RecordPayment_ClampsOverpayment(t *testing.T) {
	f := newInvoiceFake("100.00", "60.00", domain.InvoiceStatusSent)
	svc, _ := newTestPaymentService(f, domain.OverpaymentClamp)

	result, err := svc.RecordPayment(context.Background(), paymentCommand("50.00"))

	require.NoError(t, err)
	assert.True(t, result.Clamped)
	assert.True(t, result.Payment.Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, domain.InvoiceStatusPaid, result.Invoice.Status)
	require.Len(t, f.payments, 1)
	assert.True(t, f.payments[0].Amount.Equal(decimal.NewFromInt(40)))
}

func TestPaymentService_RecordPayment_ClampRejectsSettledInvoice(t *testing.T) {
	f := newInvoiceFake("100.00", "100.00", domain.InvoiceStatusPaid)
	svc, _ := newTestPaymentService(f, domain.OverpaymentClamp)

	_, err := svc.RecordPayment(context.Background(), paymentCommand("1.00"))

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "Invoice has no outstanding balance", ce.Message)
}

func TestPaymentService_RecordPayment_AllowKeepsPaidStatus(t *testing.T) {
	f := newInvoiceFake("100.00", "100.00", domain.InvoiceStatusPaid)
	svc, _ := newTestPaymentService(f, domain.OverpaymentAllow)

	result, err := svc.RecordPayment(context.Background(), paymentCommand("25.00"))

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, result.Invoice.Status)
	assert.True(t, result.Invoice.Balance().Equal(decimal.NewFromInt(-25)))
	assert.Empty(t, f.statuses)
}

func TestPaymentService_RecordPayment_CancelledInvoice(t *testing.T) {
	f := newInvoiceFake("100.00", "0", domain.InvoiceStatusCancelled)
	svc, _ := newTestPaymentService(f, domain.OverpaymentAllow)

	_, err := svc.RecordPayment(context.Background(), paymentCommand("10.00"))

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "Invoice is cancelled", ce.Message)
	assert.Empty(t, f.payments)
}

func TestPaymentService_RecordPayment_InvoiceNotFound(t *testing.T) {
	f := newInvoiceFake("100.00", "0", domain.InvoiceStatusSent)
	invoices := f.invoices()
	invoices.FindByIDForUpdateFunc = func(ctx context.Context, tx *sql.Tx, id uint) (*domain.Invoice, error) {
		return nil, apperrors.NewNotFoundError("Invoice not found")
	}
	uow := &fakeUnitOfWork{}
	svc := NewPaymentService(uow, invoices, f.paymentRepo(), domain.OverpaymentReject, zap.NewNop())

	_, err := svc.RecordPayment(context.Background(), paymentCommand("10.00"))

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.True(t, uow.rolledBack)
}

func TestPaymentService_RecordPayment_IncrementFailureAborts(t *testing.T) {
	f := newInvoiceFake("100.00", "0", domain.InvoiceStatusSent)
	invoices := f.invoices()
	invoices.IncrementPaidAmountFunc = func(ctx context.Context, tx *sql.Tx, id uint, amount decimal.Decimal) error {
		return errors.New("connection lost")
	}
	uow := &fakeUnitOfWork{}
	svc := NewPaymentService(uow, invoices, f.paymentRepo(), domain.OverpaymentReject, zap.NewNop())

	_, err := svc.RecordPayment(context.Background(), paymentCommand("10.00"))

	require.Error(t, err)
	assert.True(t, uow.rolledBack)
	assert.False(t, uow.committed)
}
