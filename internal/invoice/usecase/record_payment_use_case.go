package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bizledger/internal/dto"
	"bizledger/internal/infrastructure/mysql"
)

type PaymentWorkflow interface {
	RecordPayment(ctx context.Context, cmd dto.RecordPaymentCommand) (*dto.PaymentResult, error)
}

type RecordPaymentUseCase struct {
	workflow         PaymentWorkflow
	logger           *zap.Logger
	maxRetryAttempts int
	now              func() time.Time
}

func NewRecordPaymentUseCase(workflow PaymentWorkflow, logger *zap.Logger, maxRetryAttempts int) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		workflow:         workflow,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		now:              time.Now,
	}
}

func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, cmd dto.RecordPaymentCommand) (*dto.PaymentResult, error) {
	if err := validateRecordPayment(cmd); err != nil {
		return nil, err
	}

	if cmd.PaymentDate.IsZero() {
		cmd.PaymentDate = uc.now().UTC().Truncate(24 * time.Hour)
	}

	uc.logger.Info("record payment started",
		zap.Uint("invoiceId", cmd.InvoiceID),
		zap.String("amount", cmd.Amount.String()),
		zap.Int("actorId", cmd.ActorID),
	)

	var result *dto.PaymentResult
	err := mysql.RetryOnDeadlock(ctx, uc.logger, uc.maxRetryAttempts, func() error {
		res, err := uc.workflow.RecordPayment(ctx, cmd)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
