package usecase

import (
	"context"

	"bizledger/internal/domain"
)

type InvoiceReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Invoice, error)
}

type PaymentReader interface {
	FindByInvoiceID(ctx context.Context, invoiceID uint) ([]domain.Payment, error)
}

type GetInvoiceUseCase struct {
	invoices InvoiceReader
	payments PaymentReader
}

func NewGetInvoiceUseCase(invoices InvoiceReader, payments PaymentReader) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{invoices: invoices, payments: payments}
}

func (uc *GetInvoiceUseCase) GetInvoice(ctx context.Context, id uint) (*domain.Invoice, []domain.Payment, error) {
	inv, err := uc.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	payments, err := uc.payments.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return inv, payments, nil
}
