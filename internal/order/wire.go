package order

import (
	"database/sql"

	"go.uber.org/zap"

	"bizledger/internal/config"
	"bizledger/internal/infrastructure/mysql"
	"bizledger/internal/order/controller"
	orderrepo "bizledger/internal/order/repository"
	"bizledger/internal/order/service"
	"bizledger/internal/order/usecase"
	productrepo "bizledger/internal/product/repository"
	stockrepo "bizledger/internal/stock/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, policies config.Policies, logger *zap.Logger) *controller.OrderController {
	uow := mysql.NewUnitOfWork(db, cfg.Ledger.TxTimeout, logger)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)
	stockRepo := stockrepo.NewMySQLStockTransactionRepository(db)

	orderSvc := service.NewOrderService(uow, productRepo, orderRepo, itemRepo, stockRepo, policies.Stock, logger)
	receivingSvc := service.NewReceivingService(uow, productRepo, orderRepo, itemRepo, stockRepo, policies.Receiving, logger)

	return controller.NewOrderController(
		usecase.NewCreateOrderUseCase(orderSvc, logger, cfg.Ledger.MaxRetryAttempts),
		usecase.NewReceivePurchaseOrderUseCase(receivingSvc, logger, cfg.Ledger.MaxRetryAttempts),
		usecase.NewGetOrderUseCase(orderRepo, itemRepo),
		logger,
	)
}
