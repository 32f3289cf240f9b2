package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bizledger/internal/dto"
	"bizledger/internal/infrastructure/mysql"
)

type OrderWorkflow interface {
	CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error)
}

type CreateOrderUseCase struct {
	workflow         OrderWorkflow
	logger           *zap.Logger
	maxRetryAttempts int
	now              func() time.Time
}

func NewCreateOrderUseCase(workflow OrderWorkflow, logger *zap.Logger, maxRetryAttempts int) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		workflow:         workflow,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		now:              time.Now,
	}
}

// CreateOrder validates the command, fills in the order number and date
// when absent and runs the order workflow, retrying only when the database
// aborted it as a deadlock victim.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error) {
	if err := validateCreateOrder(cmd); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if cmd.OrderDate.IsZero() {
		cmd.OrderDate = now.Truncate(24 * time.Hour)
	}
	if cmd.Number == "" {
		cmd.Number = GenerateOrderNumber(cmd.Kind, now)
	}

	uc.logger.Info("create order started",
		zap.String("kind", string(cmd.Kind)),
		zap.String("number", cmd.Number),
		zap.Int("actorId", cmd.ActorID),
		zap.Int("itemCount", len(cmd.Lines)),
	)

	var result *dto.OrderResult
	err := mysql.RetryOnDeadlock(ctx, uc.logger, uc.maxRetryAttempts, func() error {
		res, err := uc.workflow.CreateOrder(ctx, cmd)
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
