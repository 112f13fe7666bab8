package service

import (
	"context"

	"go.uber.org/zap"

	"lectern/internal/dto"
	"lectern/internal/validation"
)

type CapacityStore interface {
	TryDecrement(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error)
}

// ReservationService is a stateless coordinator over the capacity store. It
// processes line items sequentially in caller order; a later request for the
// same lesson sees the effect of an earlier one within the same call.
//
// There is no rollback: once a line item's decrement has been applied it
// stays applied, whatever happens to the remaining items or to the caller's
// context. Reserve is not idempotent — calling it twice decrements twice.
// Callers needing retry safety must deduplicate above this layer.
type ReservationService struct {
	store  CapacityStore
	logger *zap.Logger
}

func NewReservationService(store CapacityStore, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		store:  store,
		logger: logger,
	}
}

func (s *ReservationService) Reserve(ctx context.Context, orderID uint, requests []dto.ReservationRequest) (*dto.OrderReservationResult, error) {
	outcomes := make([]dto.ItemOutcome, 0, len(requests))
	appliedCount := 0

	for _, req := range requests {
		outcome, err := s.reserveSingleItem(ctx, req)
		if err != nil {
			// Infrastructure failure. Decrements already applied for earlier
			// items stay committed.
			s.logger.Error("reservation aborted",
				zap.Uint("orderId", orderID),
				zap.Int("lessonId", req.LessonID),
				zap.Error(err),
			)
			return nil, err
		}

		outcomes = append(outcomes, dto.ItemOutcome{
			LessonID: req.LessonID,
			Quantity: req.Quantity,
			Outcome:  outcome,
		})

		if outcome == dto.OutcomeApplied {
			appliedCount++
			s.logger.Info("line item reserved",
				zap.Uint("orderId", orderID),
				zap.Int("lessonId", req.LessonID),
				zap.Int("quantity", req.Quantity),
			)
		} else {
			s.logger.Warn("line item not reserved",
				zap.Uint("orderId", orderID),
				zap.Int("lessonId", req.LessonID),
				zap.Int("quantity", req.Quantity),
				zap.String("outcome", string(outcome)),
			)
		}
	}

	status := dto.ReservationPartiallyApplied
	switch {
	case appliedCount == 0:
		status = dto.ReservationNoneApplied
	case appliedCount == len(requests):
		status = dto.ReservationAllApplied
	}

	s.logger.Info("reservation finished",
		zap.Uint("orderId", orderID),
		zap.String("status", string(status)),
		zap.Int("appliedCount", appliedCount),
		zap.Int("itemCount", len(requests)),
	)

	return &dto.OrderReservationResult{
		OrderID:  orderID,
		Status:   status,
		Outcomes: outcomes,
	}, nil
}

func (s *ReservationService) reserveSingleItem(ctx context.Context, req dto.ReservationRequest) (dto.ReservationOutcome, error) {
	// Invalid requests never reach the store.
	if !validation.ValidQuantity(req.Quantity) || !validation.ValidLessonID(req.LessonID) {
		return dto.OutcomeInvalidQuantity, nil
	}

	return s.store.TryDecrement(ctx, req.LessonID, req.Quantity)
}
