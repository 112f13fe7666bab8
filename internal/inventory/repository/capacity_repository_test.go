package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lectern/internal/dto"
	"lectern/internal/testutil"
)

func newTestRepository(db *sql.DB) *MySQLCapacityRepository {
	return NewMySQLCapacityRepository(db, zap.NewNop(), 3, 5*time.Second)
}

func TestNewMySQLCapacityRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCapacityRepository(db, zap.NewNop(), 3, 5*time.Second)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestTryDecrement_InvalidQuantity_NoStoreAccess(t *testing.T) {
	// A nil DB proves invalid input short-circuits before any query.
	repo := newTestRepository(nil)

	outcome, err := repo.TryDecrement(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)

	outcome, err = repo.TryDecrement(context.Background(), 1, -1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)

	outcome, err = repo.TryDecrement(context.Background(), -2, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInvalidQuantity, outcome)
}

// Integration Tests

func TestTryDecrement_Applied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	lessonID := testutil.InsertLesson(t, db, "Mathematics", "London", 25.00, 5)
	repo := newTestRepository(db)

	outcome, err := repo.TryDecrement(context.Background(), lessonID, 3)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeApplied, outcome)
	assert.Equal(t, 2, testutil.LessonCapacity(t, db, lessonID))
}

func TestTryDecrement_InsufficientCapacity_LeavesStateUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	lessonID := testutil.InsertLesson(t, db, "Chemistry", "York", 30.00, 2)
	repo := newTestRepository(db)

	outcome, err := repo.TryDecrement(context.Background(), lessonID, 3)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, outcome)
	assert.Equal(t, 2, testutil.LessonCapacity(t, db, lessonID))
}

func TestTryDecrement_LessonNotFound_NoRowCreated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := newTestRepository(db)

	outcome, err := repo.TryDecrement(context.Background(), 424242, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeLessonNotFound, outcome)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM Lessons WHERE id = ?`, 424242).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTryDecrement_ExactCapacityToZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	lessonID := testutil.InsertLesson(t, db, "Physics", "Leeds", 28.00, 4)
	repo := newTestRepository(db)

	outcome, err := repo.TryDecrement(context.Background(), lessonID, 4)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeApplied, outcome)
	assert.Equal(t, 0, testutil.LessonCapacity(t, db, lessonID))

	outcome, err = repo.TryDecrement(context.Background(), lessonID, 1)
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeInsufficientCapacity, outcome)
}

func TestTryDecrement_ContentionExactlyCapacityApplied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	lessonID := testutil.InsertLesson(t, db, "Music", "Bristol", 20.00, 3)
	repo := newTestRepository(db)

	const callers = 10
	outcomes := make([]dto.ReservationOutcome, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = repo.TryDecrement(context.Background(), lessonID, 1)
		}(i)
	}
	wg.Wait()

	applied, insufficient := 0, 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		switch outcomes[i] {
		case dto.OutcomeApplied:
			applied++
		case dto.OutcomeInsufficientCapacity:
			insufficient++
		}
	}

	assert.Equal(t, 3, applied)
	assert.Equal(t, 7, insufficient)
	assert.Equal(t, 0, testutil.LessonCapacity(t, db, lessonID))
}

func TestTryDecrement_NoOversellUnderMixedQuantities(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	const initial = 15
	lessonID := testutil.InsertLesson(t, db, "History", "Oxford", 22.00, initial)
	repo := newTestRepository(db)

	quantities := []int{1, 2, 3, 4, 5, 6, 1, 2, 3, 4}
	applied := make([]int, len(quantities))
	errs := make([]error, len(quantities))

	var wg sync.WaitGroup
	wg.Add(len(quantities))
	for i, q := range quantities {
		go func(i, q int) {
			defer wg.Done()
			outcome, err := repo.TryDecrement(context.Background(), lessonID, q)
			errs[i] = err
			if outcome == dto.OutcomeApplied {
				applied[i] = q
			}
		}(i, q)
	}
	wg.Wait()

	appliedTotal := 0
	for i := range quantities {
		require.NoError(t, errs[i])
		appliedTotal += applied[i]
	}

	final := testutil.LessonCapacity(t, db, lessonID)
	assert.LessOrEqual(t, appliedTotal, initial)
	assert.Equal(t, initial-appliedTotal, final)
	assert.GreaterOrEqual(t, final, 0)
}
