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

// RestaurantRepository handles restaurant profile data access
type RestaurantRepository struct {
	db *sqlx.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `id, name, location, email, phone_number, category, hours, owner_id, created_at, updated_at`

// GetByID retrieves a restaurant by ID
func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	var restaurant models.Restaurant
	err := r.db.GetContext(ctx, &restaurant, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "restaurant %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

// Update updates the restaurant profile fields
func (r *RestaurantRepository) Update(ctx context.Context, id uuid.UUID, req models.RestaurantRequest) (*models.Restaurant, error) {
	query := `
		UPDATE restaurants
		SET name = $1, location = $2, email = $3, phone_number = $4,
		    category = $5, hours = $6, updated_at = now()
		WHERE id = $7
		RETURNING ` + restaurantColumns

	var updated models.Restaurant
	err := r.db.GetContext(ctx, &updated, query,
		req.Name, req.Location, req.Email, req.PhoneNumber, req.Category, req.Hours, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "restaurant %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return &updated, nil
}
