package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bizledger/internal/auth"
	"bizledger/internal/commons"
	"bizledger/internal/domain"
	"bizledger/internal/dto"
)

type CreateInvoiceUseCase interface {
	CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
}

type GetInvoiceUseCase interface {
	GetInvoice(ctx context.Context, id uint) (*domain.Invoice, []domain.Payment, error)
}

type RecordPaymentUseCase interface {
	RecordPayment(ctx context.Context, cmd dto.RecordPaymentCommand) (*dto.PaymentResult, error)
}

type InvoiceController struct {
	create CreateInvoiceUseCase
	get    GetInvoiceUseCase
	pay    RecordPaymentUseCase
	logger *zap.Logger
}

func NewInvoiceController(create CreateInvoiceUseCase, get GetInvoiceUseCase, pay RecordPaymentUseCase, logger *zap.Logger) *InvoiceController {
	return &InvoiceController{
		create: create,
		get:    get,
		pay:    pay,
		logger: logger,
	}
}

func (c *InvoiceController) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, commons.InvalidBody(), c.logger)
		return
	}

	invoiceDate, err := commons.ParseDate("invoice_date", req.InvoiceDate)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := commons.ParseDate("due_date", *req.DueDate)
		if err != nil {
			commons.WriteError(w, traceID, err, c.logger)
			return
		}
		dueDate = &due
	}

	inv, err := c.create.CreateInvoice(r.Context(), domain.Invoice{
		Number:       req.InvoiceNumber,
		SalesOrderID: req.SalesOrderID,
		CustomerName: req.CustomerName,
		InvoiceDate:  invoiceDate,
		DueDate:      dueDate,
		TotalAmount:  req.TotalAmount,
		Status:       req.Status,
		Notes:        req.Notes,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, traceID, "Invoice created successfully", dto.NewInvoiceResponse(*inv, nil), c.logger)
}

func (c *InvoiceController) HandleGetInvoice(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	inv, payments, err := c.get.GetInvoice(r.Context(), id)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusOK, traceID, "", dto.NewInvoiceResponse(*inv, payments), c.logger)
}

func (c *InvoiceController) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		commons.WriteError(w, traceID, commons.InvalidBody(), c.logger)
		return
	}

	paymentDate, err := commons.ParseDate("payment_date", req.PaymentDate)
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	actor, _ := auth.ActorFromContext(r.Context())

	result, err := c.pay.RecordPayment(r.Context(), dto.RecordPaymentCommand{
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		Method:          req.PaymentMethod,
		PaymentDate:     paymentDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		ActorID:         actor.ID,
	})
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	commons.WriteSuccess(w, http.StatusCreated, traceID, "Payment recorded successfully", dto.RecordPaymentResponse{
		Payment: dto.NewPaymentResponse(result.Payment),
		Invoice: dto.NewInvoiceResponse(result.Invoice, nil),
		Clamped: result.Clamped,
	}, c.logger)
}
