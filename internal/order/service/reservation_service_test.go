package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lectern/internal/dto"
	"lectern/internal/inventory/memory"
)

type mockCapacityStore struct {
	TryDecrementFunc func(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error)
	calls            int
}

func (m *mockCapacityStore) TryDecrement(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error) {
	m.calls++
	return m.TryDecrementFunc(ctx, lessonID, quantity)
}

func TestReserve_AllApplied(t *testing.T) {
	store := memory.NewCapacityStore()
	store.Seed(1, 5)
	store.Seed(2, 5)

	svc := NewReservationService(store, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 2},
		{LessonID: 2, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationAllApplied, result.Status)
	assert.Equal(t, uint(10), result.OrderID)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, dto.OutcomeApplied, result.Outcomes[0].Outcome)
	assert.Equal(t, dto.OutcomeApplied, result.Outcomes[1].Outcome)
	assert.Equal(t, 3, result.AppliedQuantity())

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 3, capacity)
	capacity, _ = store.Capacity(2)
	assert.Equal(t, 4, capacity)
}

func TestReserve_PartiallyApplied(t *testing.T) {
	// Lesson A has 1 seat but 2 are requested; lesson B has 5.
	store := memory.NewCapacityStore()
	store.Seed(1, 1)
	store.Seed(2, 5)

	svc := NewReservationService(store, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 2},
		{LessonID: 2, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationPartiallyApplied, result.Status)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, result.Outcomes[0].Outcome)
	assert.Equal(t, dto.OutcomeApplied, result.Outcomes[1].Outcome)

	// A is untouched, B is reduced by 1.
	capacity, _ := store.Capacity(1)
	assert.Equal(t, 1, capacity)
	capacity, _ = store.Capacity(2)
	assert.Equal(t, 4, capacity)
}

func TestReserve_NoneApplied(t *testing.T) {
	store := memory.NewCapacityStore()
	store.Seed(1, 0)

	svc := NewReservationService(store, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 1},
		{LessonID: 99, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationNoneApplied, result.Status)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, result.Outcomes[0].Outcome)
	assert.Equal(t, dto.OutcomeLessonNotFound, result.Outcomes[1].Outcome)
}

func TestReserve_InvalidRequestsNeverReachStore(t *testing.T) {
	store := &mockCapacityStore{
		TryDecrementFunc: func(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error) {
			return dto.OutcomeApplied, nil
		},
	}

	svc := NewReservationService(store, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 0},
		{LessonID: 1, Quantity: -1},
		{LessonID: -3, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationNoneApplied, result.Status)
	for _, outcome := range result.Outcomes {
		assert.Equal(t, dto.OutcomeInvalidQuantity, outcome.Outcome)
	}
	assert.Equal(t, 0, store.calls)
}

func TestReserve_SequentialOrderWithinCall(t *testing.T) {
	// Two requests for the same lesson within one call: the second sees the
	// effect of the first.
	store := memory.NewCapacityStore()
	store.Seed(1, 3)

	svc := NewReservationService(store, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 2},
		{LessonID: 1, Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationPartiallyApplied, result.Status)
	assert.Equal(t, dto.OutcomeApplied, result.Outcomes[0].Outcome)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, result.Outcomes[1].Outcome)

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 1, capacity)
}

func TestReserve_NotIdempotent(t *testing.T) {
	// Invoking Reserve twice with identical requests decrements twice. This
	// is deliberate: retry safety belongs to a higher layer, and a change
	// that silently makes Reserve idempotent must update its callers.
	store := memory.NewCapacityStore()
	store.Seed(1, 10)

	svc := NewReservationService(store, zap.NewNop())
	requests := []dto.ReservationRequest{{LessonID: 1, Quantity: 3}}

	for i := 0; i < 2; i++ {
		result, err := svc.Reserve(context.Background(), 10, requests)
		require.NoError(t, err)
		assert.Equal(t, dto.ReservationAllApplied, result.Status)
	}

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 4, capacity)
}

func TestReserve_StoreErrorAbortsButKeepsAppliedDecrements(t *testing.T) {
	store := memory.NewCapacityStore()
	store.Seed(1, 5)

	failing := &mockCapacityStore{}
	failing.TryDecrementFunc = func(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error) {
		if failing.calls == 1 {
			return store.TryDecrement(ctx, lessonID, quantity)
		}
		return "", errors.New("connection lost")
	}

	svc := NewReservationService(failing, zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, []dto.ReservationRequest{
		{LessonID: 1, Quantity: 2},
		{LessonID: 1, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, result)

	// The first decrement stays committed; there is no compensating rollback.
	capacity, _ := store.Capacity(1)
	assert.Equal(t, 3, capacity)
}

func TestReserve_EmptyRequests(t *testing.T) {
	svc := NewReservationService(memory.NewCapacityStore(), zap.NewNop())

	result, err := svc.Reserve(context.Background(), 10, nil)

	require.NoError(t, err)
	assert.Equal(t, dto.ReservationNoneApplied, result.Status)
	assert.Empty(t, result.Outcomes)
}
