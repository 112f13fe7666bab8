package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"lectern/internal/dto"
	"lectern/internal/validation"
)

// MySQLCapacityRepository is the authoritative owner of availableCapacity.
// All mutation goes through TryDecrement; there is no get/set pair, so a
// caller cannot reintroduce a read-then-write race.
type MySQLCapacityRepository struct {
	db               *sql.DB
	logger           *zap.Logger
	maxRetryAttempts int
	statementTimeout time.Duration
}

func NewMySQLCapacityRepository(
	db *sql.DB,
	logger *zap.Logger,
	maxRetryAttempts int,
	statementTimeout time.Duration,
) *MySQLCapacityRepository {
	return &MySQLCapacityRepository{
		db:               db,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		statementTimeout: statementTimeout,
	}
}

// TryDecrement atomically subtracts quantity from the lesson's capacity when
// the remaining capacity suffices. The check and the subtraction are one
// statement, so concurrent callers against the same lesson are serialized by
// the row lock and the stored value can never go negative. A non-APPLIED
// outcome leaves stored state strictly unchanged.
func (r *MySQLCapacityRepository) TryDecrement(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error) {
	if !validation.ValidQuantity(quantity) || !validation.ValidLessonID(lessonID) {
		return dto.OutcomeInvalidQuantity, nil
	}

	stmtCtx, cancel := context.WithTimeout(ctx, r.statementTimeout)
	defer cancel()

	query := `
		UPDATE Lessons
		SET availableCapacity = availableCapacity - ?
		WHERE id = ? AND availableCapacity >= ?
	`

	result, err := r.execWithRetry(stmtCtx, query, quantity, lessonID, quantity)
	if err != nil {
		return "", fmt.Errorf("decrementing lesson capacity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 1 {
		return dto.OutcomeApplied, nil
	}

	// The conditional update matched nothing: either the lesson does not
	// exist or its capacity is below the requested quantity.
	var exists int
	err = r.db.QueryRowContext(stmtCtx, `SELECT 1 FROM Lessons WHERE id = ?`, lessonID).Scan(&exists)
	if err == sql.ErrNoRows {
		return dto.OutcomeLessonNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("checking lesson existence: %w", err)
	}

	return dto.OutcomeInsufficientCapacity, nil
}

func (r *MySQLCapacityRepository) execWithRetry(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	maxAttempts := r.maxRetryAttempts
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableError(err) || attempt == maxAttempts {
			return nil, err
		}

		backoff := backoffs[len(backoffs)-1]
		if attempt-1 < len(backoffs) {
			backoff = backoffs[attempt-1]
		}
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		time.Sleep(jitter)
		r.logger.Warn("retrying capacity decrement",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
	}

	return nil, lastErr
}

func isRetryableError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
