package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bizledger/internal/auth"
	"bizledger/internal/commons"
	invoicecontroller "bizledger/internal/invoice/controller"
	ordercontroller "bizledger/internal/order/controller"
	productcontroller "bizledger/internal/product/controller"
	"bizledger/internal/reconcile"
)

type Handlers struct {
	Products  *productcontroller.Controller
	Orders    *ordercontroller.OrderController
	Invoices  *invoicecontroller.InvoiceController
	Reconcile *reconcile.Controller
}

// NewRouter mounts every ledger route behind bearer authentication and the
// role check of the operation.
func NewRouter(h Handlers, tokens *auth.TokenManager, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		commons.WriteSuccess(w, http.StatusOK, commons.TraceID(r), "ok", nil, logger)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Authenticate(tokens, logger))

		r.Route("/products", func(r chi.Router) {
			r.With(auth.Require(logger, auth.RoleAdmin, auth.RoleInventory)).Post("/", h.Products.HandleCreateProduct)
			r.Get("/{id}", h.Products.HandleGetProduct)
		})

		r.Route("/sales", func(r chi.Router) {
			r.With(auth.Require(logger, auth.RoleAdmin, auth.RoleInventory, auth.RoleManager)).Post("/", h.Orders.HandleCreateSalesOrder)
			r.Get("/{id}", h.Orders.HandleGetSalesOrder)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Use(auth.Require(logger, auth.RoleAdmin, auth.RoleInventory))
			r.Post("/", h.Orders.HandleCreatePurchaseOrder)
			r.Get("/{id}", h.Orders.HandleGetPurchaseOrder)
			r.Put("/{id}/receive", h.Orders.HandleReceivePurchaseOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Require(logger, auth.RoleAdmin, auth.RoleFinance))
			r.Post("/invoices", h.Invoices.HandleCreateInvoice)
			r.Get("/invoices/{id}", h.Invoices.HandleGetInvoice)
			r.Post("/payments", h.Invoices.HandleRecordPayment)
		})

		r.With(auth.Require(logger, auth.RoleAdmin)).Get("/ledger/reconcile", h.Reconcile.HandleReconcile)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("traceId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
