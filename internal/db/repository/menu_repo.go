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

// MenuRepository handles menu data access
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = `id, restaurant_id, name, dish_type, price, allergens, image_url, created_at, updated_at`

// ListByRestaurant retrieves the full menu of a restaurant. The catalog is
// bounded by its expected size, so there is no pagination here.
func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY created_at ASC`

	items := []models.MenuItem{}
	err := r.db.SelectContext(ctx, &items, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a menu item scoped to a restaurant
func (r *MenuRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1 AND restaurant_id = $2`

	var item models.MenuItem
	err := r.db.GetContext(ctx, &item, query, id, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

// Create creates a new menu item
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (restaurant_id, name, dish_type, price, allergens, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + menuColumns

	var created models.MenuItem
	err := r.db.GetContext(ctx, &created, query,
		item.RestaurantID, item.Name, item.DishType, item.Price, item.Allergens, item.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &created, nil
}

// Update mutates a menu item in place
func (r *MenuRepository) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1, dish_type = $2, price = $3, allergens = $4, image_url = $5, updated_at = now()
		WHERE id = $6 AND restaurant_id = $7
		RETURNING ` + menuColumns

	var updated models.MenuItem
	err := r.db.GetContext(ctx, &updated, query,
		item.Name, item.DishType, item.Price, item.Allergens, item.ImageURL,
		item.ID, item.RestaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "menu item %s not found", item.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &updated, nil
}

// SetImage stores the URL of an uploaded item image
func (r *MenuRepository) SetImage(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET image_url = $1, updated_at = now() WHERE id = $2 AND restaurant_id = $3`,
		imageURL, id, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to set menu item image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set menu item image: %w", err)
	}
	if rows == 0 {
		return api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}

	return nil
}

// Delete removes a menu item permanently. There is no soft delete.
func (r *MenuRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`, id, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if rows == 0 {
		return api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}

	return nil
}
