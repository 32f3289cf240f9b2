package product

import (
	"database/sql"

	"go.uber.org/zap"

	"bizledger/internal/product/controller"
	"bizledger/internal/product/repository"
	"bizledger/internal/product/service"
	"bizledger/internal/product/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo, logger)
	uc := usecase.NewProductUseCase(svc)
	return controller.NewController(uc, logger)
}
