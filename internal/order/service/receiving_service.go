package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

// ReceivingService books a purchase order's line items into stock.
type ReceivingService struct {
	uow         UnitOfWork
	productRepo ProductRepository
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	stockRepo   StockTransactionRepository
	policy      domain.ReceivingPolicy
	logger      *zap.Logger
	now         func() time.Time
}

func NewReceivingService(
	uow UnitOfWork,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	stockRepo StockTransactionRepository,
	policy domain.ReceivingPolicy,
	logger *zap.Logger,
) *ReceivingService {
	return &ReceivingService{
		uow:         uow,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		stockRepo:   stockRepo,
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
}

// ReceivePurchaseOrder marks the order received and increments stock for
// every line item. The order row is locked first, so two concurrent
// receipts of the same order are serialized and the second one observes
// the received status.
func (s *ReceivingService) ReceivePurchaseOrder(ctx context.Context, orderID uint, actorID int) (*dto.ReceiveResult, error) {
	var result *dto.ReceiveResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := s.receive(ctx, tx, orderID, actorID)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		s.logger.Warn("receiving rolled back", zap.Uint("orderId", orderID), zap.Int("actorId", actorID), zap.Error(err))
		return nil, err
	}

	if result.AlreadyReceived {
		s.logger.Info("purchase order already received", zap.Uint("orderId", orderID))
	} else {
		s.logger.Info("purchase order received",
			zap.Uint("orderId", orderID),
			zap.Int("actorId", actorID),
			zap.Int("itemCount", len(result.Items)),
		)
	}

	return result, nil
}

func (s *ReceivingService) receive(ctx context.Context, tx *sql.Tx, orderID uint, actorID int) (*dto.ReceiveResult, error) {
	// Block 1: lock the order and apply the receiving policy
	order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, domain.OrderKindPurchase, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.OrderStatusCancelled {
		return nil, apperrors.NewConflictError("Purchase order is cancelled")
	}

	items, err := s.itemRepo.FindByOrderIDTx(ctx, tx, domain.OrderKindPurchase, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsReceived() {
		switch s.policy {
		case domain.ReceivingReject:
			return nil, apperrors.NewConflictError("Purchase order already received")
		case domain.ReceivingReapply:
			s.logger.Warn("re-applying stock of received purchase order", zap.Uint("orderId", orderID))
		default:
			return &dto.ReceiveResult{Order: *order, Items: items, AlreadyReceived: true}, nil
		}
	}

	// Block 2: mark received and lock products
	at := s.now().UTC()
	if err := s.orderRepo.MarkReceived(ctx, tx, orderID, actorID, at); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusReceived
	order.ReceivedAt = &at
	order.ReceivedBy = &actorID

	productIDs := make([]int, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	if _, err := s.productRepo.FindByIDsForUpdate(ctx, tx, productIDs); err != nil {
		return nil, err
	}

	// Block 3: add stock with one audit row per line
	result := &dto.ReceiveResult{Order: *order, Items: items}
	for _, item := range items {
		if err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}

		st := domain.NewPurchaseReceiptTransaction(item.ProductID, item.Quantity, orderID, actorID)
		st.ID, err = s.stockRepo.Append(ctx, tx, st)
		if err != nil {
			return nil, err
		}
		result.StockTransactions = append(result.StockTransactions, st)
	}

	return result, nil
}
