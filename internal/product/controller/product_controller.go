package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"bizledger/internal/commons"
	"bizledger/internal/dto"
)

type ProductUseCase interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id int) (*dto.ProductResponse, error)
}

type Controller struct {
	useCase ProductUseCase
	logger  *zap.Logger
}

func NewController(useCase ProductUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, commons.InvalidBody(), c.logger)
		return
	}

	resp, err := c.useCase.CreateProduct(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, traceID, "Product created successfully", resp, c.logger)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	resp, err := c.useCase.GetProduct(r.Context(), int(id))
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, traceID, "", resp, c.logger)
}
