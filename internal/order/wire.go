package order

import (
	"database/sql"

	"go.uber.org/zap"

	"lectern/internal/config"
	inventoryrepo "lectern/internal/inventory/repository"
	"lectern/internal/order/controller"
	orderrepo "lectern/internal/order/repository"
	"lectern/internal/order/service"
	"lectern/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrdersController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	capacityRepo := inventoryrepo.NewMySQLCapacityRepository(
		db,
		logger,
		cfg.Reservation.MaxRetryAttempts,
		cfg.Reservation.StatementTimeout,
	)

	reservationSvc := service.NewReservationService(capacityRepo, logger)

	uc := usecase.NewSubmitOrderUseCase(
		db,
		orderRepo,
		orderItemRepo,
		reservationSvc,
		logger,
	)

	return controller.NewOrdersController(uc, logger)
}
