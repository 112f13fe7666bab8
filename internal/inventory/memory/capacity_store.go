package memory

import (
	"context"
	"sync"

	"lectern/internal/dto"
	"lectern/internal/validation"
)

// CapacityStore is a mutex-guarded in-memory implementation of the
// conditional-decrement contract. It backs coordinator tests and local
// bootstrap without a database.
type CapacityStore struct {
	mu         sync.Mutex
	capacities map[int]int
}

func NewCapacityStore() *CapacityStore {
	return &CapacityStore{
		capacities: make(map[int]int),
	}
}

func (s *CapacityStore) TryDecrement(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error) {
	_ = ctx

	if !validation.ValidQuantity(quantity) || !validation.ValidLessonID(lessonID) {
		return dto.OutcomeInvalidQuantity, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	capacity, ok := s.capacities[lessonID]
	if !ok {
		return dto.OutcomeLessonNotFound, nil
	}
	if capacity < quantity {
		return dto.OutcomeInsufficientCapacity, nil
	}

	s.capacities[lessonID] = capacity - quantity
	return dto.OutcomeApplied, nil
}

// Seed sets a lesson's capacity directly. Bootstrap and test use only.
func (s *CapacityStore) Seed(lessonID int, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacities[lessonID] = capacity
}

// Capacity returns the current capacity for a lesson and whether it exists.
func (s *CapacityStore) Capacity(lessonID int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	capacity, ok := s.capacities[lessonID]
	return capacity, ok
}
