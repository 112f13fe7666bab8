package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"lectern/internal/catalog/controller"
	"lectern/internal/catalog/repository"
	"lectern/internal/catalog/service"
	"lectern/internal/catalog/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.LessonsController {
	repo := repository.NewMySQLLessonsRepository(db)
	svc := service.NewService(repo)
	uc := usecase.NewBrowseUseCase(svc)
	return controller.NewLessonsController(uc, logger)
}
