package invoice

import (
	"database/sql"

	"go.uber.org/zap"

	"bizledger/internal/config"
	"bizledger/internal/infrastructure/mysql"
	"bizledger/internal/invoice/controller"
	"bizledger/internal/invoice/repository"
	"bizledger/internal/invoice/service"
	"bizledger/internal/invoice/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, policies config.Policies, logger *zap.Logger) *controller.InvoiceController {
	uow := mysql.NewUnitOfWork(db, cfg.Ledger.TxTimeout, logger)
	invoiceRepo := repository.NewMySQLInvoiceRepository(db)
	paymentRepo := repository.NewMySQLPaymentRepository(db)

	paymentSvc := service.NewPaymentService(uow, invoiceRepo, paymentRepo, policies.Overpayment, logger)

	return controller.NewInvoiceController(
		usecase.NewCreateInvoiceUseCase(invoiceRepo, logger),
		usecase.NewGetInvoiceUseCase(invoiceRepo, paymentRepo),
		usecase.NewRecordPaymentUseCase(paymentSvc, logger, cfg.Ledger.MaxRetryAttempts),
		logger,
	)
}
