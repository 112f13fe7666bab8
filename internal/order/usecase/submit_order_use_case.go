package usecase

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"lectern/internal/domain"
	"lectern/internal/dto"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderLineItem) (uint, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error)
}

type ReservationCoordinator interface {
	Reserve(ctx context.Context, orderID uint, requests []dto.ReservationRequest) (*dto.OrderReservationResult, error)
}

// SubmitOrderUseCase records the order first and reserves capacity second.
// The two are deliberately not atomic with respect to each other: an order
// whose reservation partially or fully fails stays recorded, and the caller
// reconciles against the per-item outcomes.
type SubmitOrderUseCase struct {
	db             TransactionManager
	orderRepo      OrderRepository
	orderItemRepo  OrderItemRepository
	reservationSvc ReservationCoordinator
	logger         *zap.Logger
}

func NewSubmitOrderUseCase(
	db TransactionManager,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	reservationSvc ReservationCoordinator,
	logger *zap.Logger,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		db:             db,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		reservationSvc: reservationSvc,
		logger:         logger,
	}
}

func (uc *SubmitOrderUseCase) SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*dto.OrderReservationResult, error) {
	uc.logger.Info("order submission started",
		zap.String("customerName", req.Name),
		zap.Int("itemCount", len(req.Items)),
	)

	orderID, err := uc.recordOrder(ctx, req)
	if err != nil {
		uc.logger.Error("failed to record order", zap.Error(err))
		return nil, err
	}

	requests := make([]dto.ReservationRequest, len(req.Items))
	for i, item := range req.Items {
		requests[i] = dto.ReservationRequest{
			LessonID: item.LessonID,
			Quantity: item.Quantity,
		}
	}

	result, err := uc.reservationSvc.Reserve(ctx, orderID, requests)
	if err != nil {
		// The order record is kept; the caller can read it back and retry
		// reservation through a fresh submission.
		return nil, err
	}

	if err := uc.orderRepo.UpdateStatus(ctx, orderID, statusForResult(result.Status)); err != nil {
		// The reservation outcome is already durable; a failed status write
		// only degrades the read side.
		uc.logger.Warn("failed to update order status", zap.Uint("orderId", orderID), zap.Error(err))
	}

	return result, nil
}

// recordOrder persists the order and its line items in one transaction,
// unconditionally with respect to the reservation that follows.
func (uc *SubmitOrderUseCase) recordOrder(ctx context.Context, req dto.SubmitOrderRequest) (uint, error) {
	tx, err := uc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	order := domain.Order{
		CustomerName:  req.Name,
		CustomerPhone: req.PhoneNumber,
		Status:        domain.OrderStatusPending,
	}

	orderID, err := uc.orderRepo.Insert(ctx, tx, order)
	if err != nil {
		return 0, err
	}

	for _, item := range req.Items {
		_, err := uc.orderItemRepo.Insert(ctx, tx, domain.OrderLineItem{
			OrderID:  orderID,
			LessonID: item.LessonID,
			Quantity: item.Quantity,
		})
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	uc.logger.Info("order recorded", zap.Uint("orderId", orderID))
	return orderID, nil
}

func (uc *SubmitOrderUseCase) GetOrder(ctx context.Context, orderID uint) (*dto.OrderDTO, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.LineItems = items

	return toOrderDTO(*order), nil
}

func (uc *SubmitOrderUseCase) ListOrders(ctx context.Context) ([]dto.OrderDTO, error) {
	orders, err := uc.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.OrderDTO, 0, len(orders))
	for _, order := range orders {
		items, err := uc.orderItemRepo.FindByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.LineItems = items
		dtos = append(dtos, *toOrderDTO(order))
	}

	return dtos, nil
}

func statusForResult(status dto.ReservationStatus) string {
	switch status {
	case dto.ReservationAllApplied:
		return domain.OrderStatusCreated
	case dto.ReservationPartiallyApplied:
		return domain.OrderStatusPartiallyCreated
	default:
		return domain.OrderStatusRejected
	}
}

func toOrderDTO(order domain.Order) *dto.OrderDTO {
	itemDTOs := make([]dto.OrderItemDTO, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		itemDTOs = append(itemDTOs, dto.OrderItemDTO{
			LessonID: item.LessonID,
			Quantity: item.Quantity,
		})
	}

	return &dto.OrderDTO{
		ID:          order.ID,
		Name:        order.CustomerName,
		PhoneNumber: order.CustomerPhone,
		Status:      order.Status,
		Items:       itemDTOs,
		CreatedAt:   order.CreatedAt,
	}
}
