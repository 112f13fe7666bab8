package inventory

import (
	"database/sql"

	"go.uber.org/zap"

	"lectern/internal/config"
	"lectern/internal/inventory/controller"
	"lectern/internal/inventory/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.CapacityController {
	store := repository.NewMySQLCapacityRepository(
		db,
		logger,
		cfg.Reservation.MaxRetryAttempts,
		cfg.Reservation.StatementTimeout,
	)
	return controller.NewCapacityController(store, logger)
}
