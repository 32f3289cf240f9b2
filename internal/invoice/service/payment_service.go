package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

// PaymentService records payments against invoices.
type PaymentService struct {
	uow         UnitOfWork
	invoiceRepo InvoiceRepository
	paymentRepo PaymentRepository
	policy      domain.OverpaymentPolicy
	logger      *zap.Logger
}

func NewPaymentService(
	uow UnitOfWork,
	invoiceRepo InvoiceRepository,
	paymentRepo PaymentRepository,
	policy domain.OverpaymentPolicy,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		uow:         uow,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		policy:      policy,
		logger:      logger,
	}
}

// RecordPayment inserts the payment, adds it to the invoice's paid amount
// and marks the invoice paid once the persisted paid amount covers the
// total. A paid invoice is never moved back to another status.
func (s *PaymentService) RecordPayment(ctx context.Context, cmd dto.RecordPaymentCommand) (*dto.PaymentResult, error) {
	var result *dto.PaymentResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := s.record(ctx, tx, cmd)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		s.logger.Warn("payment rolled back",
			zap.Uint("invoiceId", cmd.InvoiceID),
			zap.Int("actorId", cmd.ActorID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Uint("invoiceId", cmd.InvoiceID),
		zap.Uint("paymentId", result.Payment.ID),
		zap.String("amount", result.Payment.Amount.String()),
		zap.String("status", result.Invoice.Status),
		zap.Bool("clamped", result.Clamped),
	)

	return result, nil
}

func (s *PaymentService) record(ctx context.Context, tx *sql.Tx, cmd dto.RecordPaymentCommand) (*dto.PaymentResult, error) {
	// Block 1: lock the invoice and apply the overpayment policy
	invoice, err := s.invoiceRepo.FindByIDForUpdate(ctx, tx, cmd.InvoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, apperrors.NewConflictError("Invoice is cancelled")
	}

	amount, clamped, err := s.applyPolicy(*invoice, cmd.Amount)
	if err != nil {
		return nil, err
	}

	// Block 2: append the payment and increment paid_amount
	payment := domain.Payment{
		InvoiceID:       cmd.InvoiceID,
		PaymentDate:     cmd.PaymentDate,
		Amount:          amount,
		Method:          cmd.Method,
		ReferenceNumber: cmd.ReferenceNumber,
		Notes:           cmd.Notes,
		CreatedBy:       cmd.ActorID,
	}

	payment.ID, err = s.paymentRepo.Insert(ctx, tx, payment)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.IncrementPaidAmount(ctx, tx, cmd.InvoiceID, amount); err != nil {
		return nil, err
	}

	// Block 3: re-read totals and promote to paid
	total, paid, err := s.invoiceRepo.FindTotals(ctx, tx, cmd.InvoiceID)
	if err != nil {
		return nil, err
	}
	invoice.TotalAmount = total
	invoice.PaidAmount = paid

	if invoice.IsFullyPaid() && invoice.Status != domain.InvoiceStatusPaid {
		if err := s.invoiceRepo.UpdateStatus(ctx, tx, cmd.InvoiceID, domain.InvoiceStatusPaid); err != nil {
			return nil, err
		}
		invoice.Status = domain.InvoiceStatusPaid
	}

	return &dto.PaymentResult{Payment: payment, Invoice: *invoice, Clamped: clamped}, nil
}

// applyPolicy returns the amount to record for a payment against invoice.
func (s *PaymentService) applyPolicy(invoice domain.Invoice, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	balance := invoice.Balance()

	switch s.policy {
	case domain.OverpaymentAllow:
		return amount, false, nil
	case domain.OverpaymentClamp:
		if !balance.IsPositive() {
			return decimal.Zero, false, apperrors.NewConflictError("Invoice has no outstanding balance")
		}
		if amount.GreaterThan(balance) {
			return balance, true, nil
		}
		return amount, false, nil
	default:
		if amount.GreaterThan(balance) {
			return decimal.Zero, false, apperrors.NewConflictError(fmt.Sprintf(
				"Payment exceeds outstanding balance: balance %s, amount %s",
				balance.StringFixed(2), amount.StringFixed(2),
			))
		}
		return amount, false, nil
	}
}
