package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// OrderRepository handles order data access. The order/table coupling is
// kept consistent by running every coupled pair of writes in a single
// transaction, so no partially applied state is ever observable.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, restaurant_id, table_id, items, status, created_at, updated_at`

// GetByID retrieves an order scoped to a restaurant
func (r *OrderRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND restaurant_id = $2`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "order %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// Open creates a pending order against a free table, marking the table
// pending and pointing it at the new order. The table row is locked for the
// duration so two devices cannot open the same table at once.
func (r *OrderRepository) Open(ctx context.Context, restaurantID, tableID uuid.UUID, items models.ItemQuantities) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status models.TableStatus
	err = tx.GetContext(ctx, &status,
		`SELECT status FROM restaurant_tables WHERE id = $1 AND restaurant_id = $2 FOR UPDATE`,
		tableID, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		err = api.Errorf(api.KindNotFound, "table %s not found", tableID)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock table: %w", err)
	}

	if status != models.TableFree {
		err = api.Errorf(api.KindConflict, "table %s already has an open order", tableID)
		return nil, err
	}

	var order models.Order
	err = tx.GetContext(ctx, &order, `
		INSERT INTO orders (restaurant_id, table_id, items, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderColumns,
		restaurantID, tableID, items, models.OrderPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET status = $1, order_id = $2, updated_at = now()
		WHERE id = $3 AND restaurant_id = $4`,
		models.TablePending, order.ID, tableID, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, nil
}

// MergeItems adds delta quantities on top of the order's current items. The
// order row is locked first, so concurrent increments from two devices
// serialize instead of overwriting each other. With reopen set, the order
// and its table are forced back to pending regardless of prior status.
func (r *OrderRepository) MergeItems(ctx context.Context, restaurantID, orderID uuid.UUID, delta models.ItemQuantities, reopen bool) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var order models.Order
	err = tx.GetContext(ctx, &order,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND restaurant_id = $2 FOR UPDATE`,
		orderID, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		err = api.Errorf(api.KindNotFound, "order %s not found", orderID)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	order.Items = models.MergeQuantities(order.Items, delta)
	if reopen {
		order.Status = models.OrderPending
	}

	err = tx.GetContext(ctx, &order, `
		UPDATE orders
		SET items = $1, status = $2, updated_at = now()
		WHERE id = $3 AND restaurant_id = $4
		RETURNING `+orderColumns,
		order.Items, order.Status, orderID, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order items: %w", err)
	}

	if reopen {
		_, err = tx.ExecContext(ctx, `
			UPDATE restaurant_tables
			SET status = $1, order_id = $2, updated_at = now()
			WHERE id = $3 AND restaurant_id = $4`,
			models.TablePending, order.ID, order.TableID, restaurantID)
		if err != nil {
			return nil, fmt.Errorf("failed to reopen table: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, nil
}

// Advance moves an order forward and mirrors the transition onto its table
// in the same transaction. A target at or behind the current status leaves
// both rows untouched and reports advanced=false. On completion the table
// returns to free but keeps pointing at the completed order; the status
// alone governs whether the table can be opened again.
func (r *OrderRepository) Advance(ctx context.Context, restaurantID, orderID uuid.UUID, target models.OrderStatus) (*models.Order, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var order models.Order
	err = tx.GetContext(ctx, &order,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND restaurant_id = $2 FOR UPDATE`,
		orderID, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		err = api.Errorf(api.KindNotFound, "order %s not found", orderID)
		return nil, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock order: %w", err)
	}

	if !models.CanAdvance(order.Status, target) {
		if err = tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &order, false, nil
	}

	err = tx.GetContext(ctx, &order, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND restaurant_id = $3
		RETURNING `+orderColumns,
		target, orderID, restaurantID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to advance order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET status = $1, updated_at = now()
		WHERE id = $2 AND restaurant_id = $3`,
		models.TableStatusFor(target), order.TableID, restaurantID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update table status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &order, true, nil
}
