package usecase

import (
	"context"

	"go.uber.org/zap"

	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/infrastructure/mysql"
)

type ReceivingWorkflow interface {
	ReceivePurchaseOrder(ctx context.Context, orderID uint, actorID int) (*dto.ReceiveResult, error)
}

type ReceivePurchaseOrderUseCase struct {
	workflow         ReceivingWorkflow
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewReceivePurchaseOrderUseCase(workflow ReceivingWorkflow, logger *zap.Logger, maxRetryAttempts int) *ReceivePurchaseOrderUseCase {
	return &ReceivePurchaseOrderUseCase{
		workflow:         workflow,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ReceivePurchaseOrderUseCase) ReceivePurchaseOrder(ctx context.Context, orderID uint, actorID int) (*dto.ReceiveResult, error) {
	if actorID <= 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "received_by",
			Message: "an authenticated actor is required",
		})
	}

	uc.logger.Info("receive purchase order started", zap.Uint("orderId", orderID), zap.Int("actorId", actorID))

	var result *dto.ReceiveResult
	err := mysql.RetryOnDeadlock(ctx, uc.logger, uc.maxRetryAttempts, func() error {
		res, err := uc.workflow.ReceivePurchaseOrder(ctx, orderID, actorID)
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
