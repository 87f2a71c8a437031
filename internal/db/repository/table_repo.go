package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// TableRepository handles floor-plan table data access
type TableRepository struct {
	db *sqlx.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *sqlx.DB) *TableRepository {
	return &TableRepository{db: db}
}

const tableColumns = `id, restaurant_id, numero, status, order_id, pos_x, pos_y, created_at, updated_at`

// ListByRestaurant retrieves every table of a restaurant
func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY numero ASC`

	tables := []models.Table{}
	err := r.db.SelectContext(ctx, &tables, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return tables, nil
}

// GetByID retrieves a table scoped to a restaurant
func (r *TableRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1 AND restaurant_id = $2`

	var table models.Table
	err := r.db.GetContext(ctx, &table, query, id, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "table %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

// ReplaceAll deletes every table of the restaurant and creates count fresh
// ones numbered 1..count. This is the destructive floor-plan reset: existing
// positions are gone on purpose.
func (r *TableRepository) ReplaceAll(ctx context.Context, restaurantID uuid.UUID, count int) ([]models.Table, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM restaurant_tables WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear tables: %w", err)
	}

	tables := make([]models.Table, 0, count)
	for i := 1; i <= count; i++ {
		var table models.Table
		err = tx.GetContext(ctx, &table, `
			INSERT INTO restaurant_tables (restaurant_id, numero, status)
			VALUES ($1, $2, $3)
			RETURNING `+tableColumns,
			restaurantID, strconv.Itoa(i), models.TableFree)
		if err != nil {
			return nil, fmt.Errorf("failed to create table %d: %w", i, err)
		}
		tables = append(tables, table)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tables, nil
}

// Reconcile syncs the layout editor's working set against the stored set in
// one transaction: tables absent from the working set are deleted, known ids
// get their numero and position updated in place, and entries without a
// known id are inserted as fresh free tables. Occupancy state is never
// touched from this path; the lifecycle service owns it.
func (r *TableRepository) Reconcile(ctx context.Context, restaurantID uuid.UUID, working []models.WorkingTable) ([]models.Table, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	existing := []uuid.UUID{}
	err = tx.SelectContext(ctx, &existing,
		`SELECT id FROM restaurant_tables WHERE restaurant_id = $1 FOR UPDATE`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock tables: %w", err)
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	kept := make(map[uuid.UUID]bool, len(working))
	for _, wt := range working {
		if wt.ID == "" {
			continue
		}
		id, parseErr := uuid.Parse(wt.ID)
		if parseErr != nil {
			err = api.Errorf(api.KindValidation, "invalid table id %q", wt.ID)
			return nil, err
		}
		if known[id] {
			kept[id] = true
		}
	}

	for id := range known {
		if kept[id] {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`DELETE FROM restaurant_tables WHERE id = $1 AND restaurant_id = $2`, id, restaurantID)
		if err != nil {
			return nil, fmt.Errorf("failed to delete table %s: %w", id, err)
		}
	}

	for _, wt := range working {
		if wt.ID != "" {
			id, _ := uuid.Parse(wt.ID)
			if kept[id] {
				_, err = tx.ExecContext(ctx, `
					UPDATE restaurant_tables
					SET numero = $1, pos_x = $2, pos_y = $3, updated_at = now()
					WHERE id = $4 AND restaurant_id = $5`,
					wt.Numero, wt.Position.X, wt.Position.Y, id, restaurantID)
				if err != nil {
					return nil, fmt.Errorf("failed to update table %s: %w", id, err)
				}
				continue
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO restaurant_tables (restaurant_id, numero, status, pos_x, pos_y)
			VALUES ($1, $2, $3, $4, $5)`,
			restaurantID, wt.Numero, models.TableFree, wt.Position.X, wt.Position.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to create table %q: %w", wt.Numero, err)
		}
	}

	final := []models.Table{}
	err = tx.SelectContext(ctx, &final,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY numero ASC`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tables: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return final, nil
}
