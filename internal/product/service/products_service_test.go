package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizledger/internal/domain"
	apperrors "bizledger/internal/errors"
)

type mockRepository struct {
	InsertFunc   func(ctx context.Context, p domain.Product) (int, error)
	FindByIDFunc func(ctx context.Context, id int) (*domain.Product, error)
}

func (m *mockRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	return m.InsertFunc(ctx, p)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func TestProductService_Create(t *testing.T) {
	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) (int, error) {
			inserted = p
			return 3, nil
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Code: inserted.Code, StockQuantity: inserted.StockQuantity, OpeningStock: inserted.StockQuantity}, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	p, err := svc.Create(context.Background(), domain.Product{Code: "P-1", Name: "Hammer", StockQuantity: 12})

	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusActive, inserted.Status)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, 12, p.OpeningStock)
}

func TestProductService_Create_Duplicate(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) (int, error) {
			return 0, apperrors.NewDuplicateError("Product code already exists")
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			t.Fatal("must not read after failed insert")
			return nil, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), domain.Product{Code: "P-1"})

	_, ok := apperrors.IsDuplicateError(err)
	assert.True(t, ok)
}
