package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
	"bizledger/internal/invoice/repository"
	"bizledger/internal/testutil"
)

func TestIntegration_PaymentScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	invoices := repository.NewMySQLInvoiceRepository(db)
	payments := repository.NewMySQLPaymentRepository(db)
	svc := NewPaymentService(mysql.NewUnitOfWork(db, 5*time.Second, zap.NewNop()), invoices, payments, domain.OverpaymentReject, zap.NewNop())

	id, err := invoices.Insert(ctx, domain.Invoice{
		Number:       "INV-INT-PAY",
		CustomerName: "Acme",
		InvoiceDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:  decimal.RequireFromString("100.00"),
		PaidAmount:   decimal.Zero,
		Status:       domain.InvoiceStatusSent,
	})
	require.NoError(t, err)

	cmd := dto.RecordPaymentCommand{
		InvoiceID:   id,
		Method:      "bank_transfer",
		PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		ActorID:     3,
	}

	cmd.Amount = decimal.RequireFromString("60.00")
	first, err := svc.RecordPayment(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, first.Invoice.Status)

	cmd.Amount = decimal.RequireFromString("50.00")
	_, err = svc.RecordPayment(ctx, cmd)
	_, ok := apperrors.IsConflictError(err)
	require.True(t, ok)

	cmd.Amount = decimal.RequireFromString("40.00")
	second, err := svc.RecordPayment(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, second.Invoice.Status)

	inv, err := invoices.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(100)))

	recorded, err := payments.FindByInvoiceID(ctx, id)
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.True(t, domain.SumPayments(recorded).Equal(inv.PaidAmount))
	assert.Equal(t, 3, recorded[0].CreatedBy)
}

func TestIntegration_ConcurrentPaymentsAreMonotonic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	invoices := repository.NewMySQLInvoiceRepository(db)
	payments := repository.NewMySQLPaymentRepository(db)
	svc := NewPaymentService(mysql.NewUnitOfWork(db, 5*time.Second, zap.NewNop()), invoices, payments, domain.OverpaymentReject, zap.NewNop())

	id, err := invoices.Insert(ctx, domain.Invoice{
		Number:       "INV-INT-CONC",
		CustomerName: "Acme",
		InvoiceDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:  decimal.RequireFromString("100.00"),
		PaidAmount:   decimal.Zero,
		Status:       domain.InvoiceStatusSent,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mysql.RetryOnDeadlock(ctx, zap.NewNop(), 3, func() error {
				_, err := svc.RecordPayment(ctx, dto.RecordPaymentCommand{
					InvoiceID:   id,
					Amount:      decimal.RequireFromString("25.00"),
					Method:      "cash",
					PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
					ActorID:     3,
				})
				return err
			})
		}()
	}
	wg.Wait()

	inv, err := invoices.FindByID(ctx, id)
	require.NoError(t, err)
	recorded, err := payments.FindByInvoiceID(ctx, id)
	require.NoError(t, err)

	assert.Len(t, recorded, 4)
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, domain.SumPayments(recorded).Equal(inv.PaidAmount))
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
}
