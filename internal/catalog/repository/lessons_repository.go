package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lectern/internal/domain"
	"lectern/internal/errors"
)

type MySQLLessonsRepository struct {
	db *sql.DB
}

func NewMySQLLessonsRepository(db *sql.DB) *MySQLLessonsRepository {
	return &MySQLLessonsRepository{db: db}
}

func (r *MySQLLessonsRepository) FindAll(ctx context.Context) ([]domain.Lesson, error) {
	query := `
		SELECT id, title, location, price, availableCapacity, createdAt, updatedAt
		FROM Lessons
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		err := rows.Scan(
			&l.ID, &l.Title, &l.Location, &l.Price, &l.AvailableCapacity,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson rows: %w", err)
	}

	return lessons, nil
}

func (r *MySQLLessonsRepository) FindByID(ctx context.Context, lessonID int) (*domain.Lesson, error) {
	query := `
		SELECT id, title, location, price, availableCapacity, createdAt, updatedAt
		FROM Lessons
		WHERE id = ?
	`

	var l domain.Lesson
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(
		&l.ID, &l.Title, &l.Location, &l.Price, &l.AvailableCapacity,
		&l.CreatedAt, &l.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("lesson with id %d not found", lessonID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying lesson by id: %w", err)
	}

	return &l, nil
}
