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

// UserRepository handles user data access
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, restaurant_id, created_at, updated_at`

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// Create inserts a user bound to an existing restaurant
func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, role, restaurant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created models.User
	err := r.db.GetContext(ctx, &created, query,
		user.Email, user.PasswordHash, user.Name, user.Role, user.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

// CreateWithRestaurant creates a fresh restaurant and its owning admin user
// in one transaction, so a failed registration never leaves an orphaned
// restaurant behind.
func (r *UserRepository) CreateWithRestaurant(ctx context.Context, user models.User, restaurant models.Restaurant) (*models.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var restaurantID uuid.UUID
	err = tx.GetContext(ctx, &restaurantID, `
		INSERT INTO restaurants (name, location, email, phone_number, category, hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		restaurant.Name, restaurant.Location, restaurant.Email,
		restaurant.PhoneNumber, restaurant.Category, restaurant.Hours)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	var created models.User
	err = tx.GetContext(ctx, &created, `
		INSERT INTO users (email, password_hash, name, role, restaurant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, user.Name, user.Role, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE restaurants SET owner_id = $1, updated_at = now() WHERE id = $2`,
		created.ID, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to set restaurant owner: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

// UpdateProfile updates the editable profile fields. Role and restaurant
// binding are immutable after registration, so they are not touched here.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + userColumns

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, name, email, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.Errorf(api.KindNotFound, "user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return &updated, nil
}
