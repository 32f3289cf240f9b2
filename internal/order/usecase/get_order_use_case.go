package usecase

import (
	"context"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
)

type OrderReader interface {
	FindByID(ctx context.Context, kind domain.OrderKind, id uint) (*domain.Order, error)
}

type OrderItemReader interface {
	FindByOrderID(ctx context.Context, kind domain.OrderKind, orderID uint) ([]domain.OrderItem, error)
}

type GetOrderUseCase struct {
	orders OrderReader
	items  OrderItemReader
}

func NewGetOrderUseCase(orders OrderReader, items OrderItemReader) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders, items: items}
}

func (uc *GetOrderUseCase) GetOrder(ctx context.Context, kind domain.OrderKind, id uint) (*dto.OrderResult, error) {
	order, err := uc.orders.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.items.FindByOrderID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	return &dto.OrderResult{Order: *order, Items: items}, nil
}
