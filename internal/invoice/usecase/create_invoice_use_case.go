package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bizledger/internal/domain"
)

type InvoiceWriter interface {
	Insert(ctx context.Context, inv domain.Invoice) (uint, error)
}

type CreateInvoiceUseCase struct {
	invoices InvoiceWriter
	logger   *zap.Logger
	now      func() time.Time
}

func NewCreateInvoiceUseCase(invoices InvoiceWriter, logger *zap.Logger) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoices: invoices,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateInvoice stores a new invoice with nothing paid. Number, date and
// status default to a generated INV number, today and draft.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	if err := validateCreateInvoice(inv); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now.Truncate(24 * time.Hour)
	}
	if inv.Number == "" {
		inv.Number = "INV-" + now.Format("20060102") + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	inv.PaidAmount = decimal.Zero

	id, err := uc.invoices.Insert(ctx, inv)
	if err != nil {
		uc.logger.Warn("create invoice failed", zap.String("number", inv.Number), zap.Error(err))
		return nil, err
	}
	inv.ID = id

	uc.logger.Info("invoice created",
		zap.Uint("invoiceId", id),
		zap.String("number", inv.Number),
		zap.String("total", inv.TotalAmount.String()),
	)

	return &inv, nil
}
