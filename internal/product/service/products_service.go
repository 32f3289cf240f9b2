package service

import (
	"context"

	"go.uber.org/zap"

	"bizledger/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type ProductService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// Create stores a new product and returns it as persisted. The initial
// stock quantity becomes the product's opening stock.
func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int("productId", id), zap.String("code", p.Code), zap.Int("openingStock", p.StockQuantity))

	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}
