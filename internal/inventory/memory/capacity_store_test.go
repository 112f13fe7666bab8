package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lectern/internal/dto"
)

func TestTryDecrement_Applied(t *testing.T) {
	store := NewCapacityStore()
	store.Seed(1, 5)

	outcome, err := store.TryDecrement(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeApplied, outcome)

	capacity, ok := store.Capacity(1)
	require.True(t, ok)
	assert.Equal(t, 2, capacity)
}

func TestTryDecrement_InsufficientCapacity(t *testing.T) {
	store := NewCapacityStore()
	store.Seed(1, 2)

	outcome, err := store.TryDecrement(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, outcome)

	// A rejected call has strictly zero effect.
	capacity, _ := store.Capacity(1)
	assert.Equal(t, 2, capacity)
}

func TestTryDecrement_ExactCapacity(t *testing.T) {
	store := NewCapacityStore()
	store.Seed(1, 3)

	outcome, err := store.TryDecrement(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeApplied, outcome)

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 0, capacity)
}

func TestTryDecrement_LessonNotFound(t *testing.T) {
	store := NewCapacityStore()

	outcome, err := store.TryDecrement(context.Background(), 99, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeLessonNotFound, outcome)

	// The lookup must not create a record as a side effect.
	_, ok := store.Capacity(99)
	assert.False(t, ok)
}

func TestTryDecrement_InvalidQuantity(t *testing.T) {
	store := NewCapacityStore()
	store.Seed(1, 5)

	for _, quantity := range []int{0, -1, -100} {
		outcome, err := store.TryDecrement(context.Background(), 1, quantity)
		require.NoError(t, err)
		assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)
	}

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 5, capacity)
}

func TestTryDecrement_InvalidLessonID(t *testing.T) {
	store := NewCapacityStore()

	outcome, err := store.TryDecrement(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)

	outcome, err = store.TryDecrement(context.Background(), -5, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)
}

func TestTryDecrement_ContentionExactlyCapacityApplied(t *testing.T) {
	store := NewCapacityStore()
	store.Seed(1, 3)

	const callers = 10
	outcomes := make([]dto.ReservationOutcome, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			outcome, _ := store.TryDecrement(context.Background(), 1, 1)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	applied, insufficient := 0, 0
	for _, outcome := range outcomes {
		switch outcome {
		case dto.OutcomeApplied:
			applied++
		case dto.OutcomeInsufficientCapacity:
			insufficient++
		}
	}

	assert.Equal(t, 3, applied)
	assert.Equal(t, 7, insufficient)

	capacity, _ := store.Capacity(1)
	assert.Equal(t, 0, capacity)
}

func TestTryDecrement_NoOversellUnderMixedQuantities(t *testing.T) {
	store := NewCapacityStore()
	const initial = 20
	store.Seed(1, initial)

	quantities := []int{1, 2, 3, 4, 5, 6, 7, 1, 2, 3, 4, 5}

	var wg sync.WaitGroup
	var mu sync.Mutex
	appliedTotal := 0

	wg.Add(len(quantities))
	for _, q := range quantities {
		go func(q int) {
			defer wg.Done()
			outcome, _ := store.TryDecrement(context.Background(), 1, q)
			if outcome == dto.OutcomeApplied {
				mu.Lock()
				appliedTotal += q
				mu.Unlock()
			}
		}(q)
	}
	wg.Wait()

	capacity, _ := store.Capacity(1)
	assert.LessOrEqual(t, appliedTotal, initial)
	assert.Equal(t, initial-appliedTotal, capacity)
	assert.GreaterOrEqual(t, capacity, 0)
}
