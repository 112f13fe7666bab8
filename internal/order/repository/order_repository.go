package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lectern/internal/domain"
	"lectern/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `INSERT INTO Orders (customerName, customerPhone, status) VALUES (?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.CustomerName, order.CustomerPhone, order.Status)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, customerName, customerPhone, status, createdAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Status, &order.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, customerName, customerPhone, status, createdAt
		FROM Orders
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Status, &order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus writes the post-reservation status. The order's line items are
// immutable; status is the only column ever touched after insert.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	query := `UPDATE Orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}
