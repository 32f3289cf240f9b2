package usecase

import (
	"context"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

type Service interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
}

type ProductUseCase struct {
	service Service
}

func NewProductUseCase(service Service) *ProductUseCase {
	return &ProductUseCase{service: service}
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateCreateProduct(req); err != nil {
		return nil, err
	}

	minStock := domain.DefaultMinStockLevel
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	p, err := uc.service.Create(ctx, domain.Product{
		Code:          req.ProductCode,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Unit:          req.Unit,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: minStock,
		Status:        domain.ProductStatusActive,
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewProductResponse(*p)
	return &resp, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id int) (*dto.ProductResponse, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewProductResponse(*p)
	return &resp, nil
}

func validateCreateProduct(req dto.CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.ProductCode == "" {
		details = append(details, apperrors.ValidationDetail{Field: "product_code", Message: "product_code is required"})
	}
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.CostPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "cost_price", Message: "cost_price must be non-negative"})
	} else if !domain.FitsMoneyScale(req.CostPrice) {
		details = append(details, apperrors.ValidationDetail{Field: "cost_price", Message: "cost_price must have at most 2 decimal places"})
	}
	if req.SellingPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "selling_price", Message: "selling_price must be non-negative"})
	} else if !domain.FitsMoneyScale(req.SellingPrice) {
		details = append(details, apperrors.ValidationDetail{Field: "selling_price", Message: "selling_price must have at most 2 decimal places"})
	}
	if req.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock_quantity", Message: "stock_quantity must be non-negative"})
	}
	if req.MinStockLevel != nil && *req.MinStockLevel < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "min_stock_level", Message: "min_stock_level must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
