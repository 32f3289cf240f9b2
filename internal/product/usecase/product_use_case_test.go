package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/internal/domain"
	"bizledger/internal/dto"
	apperrors "bizledger/internal/errors"
)

type mockService struct {
	CreateFunc func(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetFunc    func(ctx context.Context, id int) (*domain.Product, error)
}

func (m *mockService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockService) Get(ctx context.Context, id int) (*domain.Product, error) {
	return m.GetFunc(ctx, id)
}

func TestCreateProduct_DefaultsMinStockLevel(t *testing.T) {
	svc := &mockService{
		CreateFunc: func(ctx context.Context, p domain.Product) (*domain.Product, error) {
			p.ID = 1
			p.OpeningStock = p.StockQuantity
			return &p, nil
		},
	}
	uc := NewProductUseCase(svc)

	resp, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		ProductCode:   "P-1",
		Name:          "Hammer",
		SellingPrice:  decimal.RequireFromString("9.99"),
		StockQuantity: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMinStockLevel, resp.MinStockLevel)
	assert.True(t, resp.LowStock)
	assert.Equal(t, 4, resp.OpeningStock)
	assert.Equal(t, "P-1", resp.ProductCode)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := NewProductUseCase(&mockService{})
	negative := -1

	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		CostPrice:     decimal.RequireFromString("-1"),
		StockQuantity: -2,
		MinStockLevel: &negative,
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 5)
}

func TestCreateProduct_RejectsSubCentPrices(t *testing.T) {
	uc := NewProductUseCase(&mockService{})

	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		ProductCode:  "P-1",
		Name:         "Widget",
		CostPrice:    decimal.RequireFromString("1.005"),
		SellingPrice: decimal.RequireFromString("2.50"),
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "cost_price", ve.Details[0].Field)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := NewProductUseCase(&mockService{
		GetFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("Product not found")
		},
	})

	_, err := uc.GetProduct(context.Background(), 9)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
