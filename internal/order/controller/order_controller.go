package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"bizledger/internal/auth"
	"bizledger/internal/commons"
	"bizledger/internal/domain"
	"bizledger/internal/dto"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, cmd dto.CreateOrderCommand) (*dto.OrderResult, error)
}

type ReceivePurchaseOrderUseCase interface {
	ReceivePurchaseOrder(ctx context.Context, orderID uint, actorID int) (*dto.ReceiveResult, error)
}

type GetOrderUseCase interface {
	GetOrder(ctx context.Context, kind domain.OrderKind, id uint) (*dto.OrderResult, error)
}

type OrderController struct {
	create  CreateOrderUseCase
	receive ReceivePurchaseOrderUseCase
	get     GetOrderUseCase
	logger  *zap.Logger
}

func NewOrderController(create CreateOrderUseCase, receive ReceivePurchaseOrderUseCase, get GetOrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		create:  create,
		receive: receive,
		get:     get,
		logger:  logger,
	}
}

func (c *OrderController) HandleCreateSalesOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateSalesOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, commons.InvalidBody(), c.logger)
		return
	}

	orderDate, err := commons.ParseDate("order_date", req.OrderDate)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	cmd := dto.CreateOrderCommand{
		Kind:          domain.OrderKindSales,
		Number:        req.SONumber,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		OrderDate:     orderDate,
		Notes:         req.Notes,
		Lines:         toLines(req.Items),
		ActorID:       actorID(r),
	}

	c.createOrder(w, r, traceID, cmd)
}

func (c *OrderController) HandleCreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, commons.InvalidBody(), c.logger)
		return
	}

	orderDate, err := commons.ParseDate("order_date", req.OrderDate)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	cmd := dto.CreateOrderCommand{
		Kind:       domain.OrderKindPurchase,
		Number:     req.PONumber,
		SupplierID: req.SupplierID,
		OrderDate:  orderDate,
		Notes:      req.Notes,
		Lines:      toLines(req.Items),
		ActorID:    actorID(r),
	}

	c.createOrder(w, r, traceID, cmd)
}

func (c *OrderController) createOrder(w http.ResponseWriter, r *http.Request, traceID string, cmd dto.CreateOrderCommand) {
	result, err := c.create.CreateOrder(r.Context(), cmd)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, traceID,
		cmd.Kind.Label()+" created successfully",
		dto.NewOrderResponse(result.Order, result.Items),
		c.logger,
	)
}

func (c *OrderController) HandleGetSalesOrder(w http.ResponseWriter, r *http.Request) {
	c.getOrder(w, r, domain.OrderKindSales)
}

func (c *OrderController) HandleGetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	c.getOrder(w, r, domain.OrderKindPurchase)
}

func (c *OrderController) getOrder(w http.ResponseWriter, r *http.Request, kind domain.OrderKind) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	result, err := c.get.GetOrder(r.Context(), kind, id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, traceID, "", dto.NewOrderResponse(result.Order, result.Items), c.logger)
}

func (c *OrderController) HandleReceivePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	result, err := c.receive.ReceivePurchaseOrder(r.Context(), id, actorID(r))
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	message := "Purchase order received and stock updated"
	if result.AlreadyReceived {
		message = "Purchase order already received"
	}

	commons.WriteSuccess(w, http.StatusOK, traceID, message, dto.ReceiveResponse{
		OrderResponse:   dto.NewOrderResponse(result.Order, result.Items),
		AlreadyReceived: result.AlreadyReceived,
	}, c.logger)
}

func toLines(items []dto.OrderItemRequest) []dto.OrderLine {
	lines := make([]dto.OrderLine, len(items))
	for i, item := range items {
		lines[i] = dto.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return lines
}

func actorID(r *http.Request) int {
	actor, _ := auth.ActorFromContext(r.Context())
	return actor.ID
}
