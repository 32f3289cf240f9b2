package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

// OrderService applies sales and purchase orders to the ledger.
type OrderService struct {
	uow         UnitOfWork
	productRepo ProductRepository
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	stockRepo   StockTransactionRepository
	stockPolicy domain.StockPolicy
	logger      *zap.Logger
}

func NewOrderService(
	uow UnitOfWork,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	stockRepo StockTransactionRepository,
	stockPolicy domain.StockPolicy,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		uow:         uow,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		stockRepo:   stockRepo,
		stockPolicy: stockPolicy,
		logger:      logger,
	}
}

// CreateOrder writes the header, its line items and, for sales orders, the
// stock decrements with their audit entries, all in one transaction.
// Products are locked in ascending id order before any write so concurrent
// orders touching the same products serialize without deadlocking.
func (s *OrderService) CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error) {
	var result *dto.OrderResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := s.createOrder(ctx, tx, cmd)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		s.logger.Warn("order rolled back",
			zap.String("kind", string(cmd.Kind)),
			zap.String("number", cmd.Number),
			zap.Int("actorId", cmd.ActorID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order committed",
		zap.String("kind", string(cmd.Kind)),
		zap.Uint("orderId", result.Order.ID),
		zap.String("number", result.Order.Number),
		zap.String("totalAmount", result.Order.TotalAmount.StringFixed(2)),
		zap.Int("itemCount", len(result.Items)),
	)

	return result, nil
}

func (s *OrderService) createOrder(ctx context.Context, tx *sql.Tx, cmd dto.CreateOrderCommand) (*dto.OrderResult, error) {
	// Block 1: lock products and check stock
	items := make([]domain.OrderItem, len(cmd.Lines))
	productIDs := make([]int, len(cmd.Lines))
	for i, line := range cmd.Lines {
		items[i] = domain.NewOrderItem(line.ProductID, line.Quantity, line.UnitPrice)
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.FindByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	if cmd.Kind == domain.OrderKindSales {
		if err := s.checkStock(products, items); err != nil {
			return nil, err
		}
	}

	// Block 2: write header and line items
	order := domain.Order{
		Kind:          cmd.Kind,
		Number:        cmd.Number,
		CustomerName:  cmd.CustomerName,
		CustomerEmail: cmd.CustomerEmail,
		CustomerPhone: cmd.CustomerPhone,
		SupplierID:    cmd.SupplierID,
		OrderDate:     cmd.OrderDate,
		TotalAmount:   domain.OrderTotal(items),
		Status:        domain.OrderStatusPending,
		Notes:         cmd.Notes,
		CreatedBy:     cmd.ActorID,
	}
	if cmd.Kind == domain.OrderKindSales {
		order.PaymentStatus = domain.PaymentStatusUnpaid
	}

	order.ID, err = s.orderRepo.Insert(ctx, tx, order)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
		items[i].ID, err = s.itemRepo.Insert(ctx, tx, cmd.Kind, items[i])
		if err != nil {
			return nil, err
		}
	}

	result := &dto.OrderResult{Order: order, Items: items}
	if cmd.Kind != domain.OrderKindSales {
		return result, nil
	}

	// Block 3: decrement stock with one audit row per line
	for _, item := range items {
		if err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}

		st := domain.NewSaleTransaction(item.ProductID, item.Quantity, order.ID, cmd.ActorID)
		st.ID, err = s.stockRepo.Append(ctx, tx, st)
		if err != nil {
			return nil, err
		}
		result.StockTransactions = append(result.StockTransactions, st)

		s.logger.Debug("stock decremented",
			zap.Uint("orderId", order.ID),
			zap.Int("productId", item.ProductID),
			zap.Int("quantity", item.Quantity),
		)
	}

	return result, nil
}

// checkStock applies the stock policy to the locked products. Lines for the
// same product are summed before comparing.
func (s *OrderService) checkStock(products map[int]*domain.Product, items []domain.OrderItem) error {
	if s.stockPolicy == domain.StockPolicyAllow {
		return nil
	}

	requested := make(map[int]int, len(products))
	for _, item := range items {
		requested[item.ProductID] += item.Quantity
		p := products[item.ProductID]
		if requested[item.ProductID] > p.StockQuantity {
			return apperrors.NewConflictError(fmt.Sprintf(
				"Insufficient stock for product %s: available %d, requested %d",
				p.Code, p.StockQuantity, requested[item.ProductID],
			))
		}
	}

	return nil
}
