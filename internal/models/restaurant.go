package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the tenant every other entity is partitioned under.
type Restaurant struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Location    string    `db:"location" json:"location"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Category    string    `db:"category" json:"category"`
	Hours       string    `db:"hours" json:"hours"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RestaurantRequest is used for profile updates
type RestaurantRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Location    string `json:"location" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=6,max=20"`
	Category    string `json:"category" validate:"max=50"`
	Hours       string `json:"hours" validate:"max=200"`
}

// Scope identifies the restaurant partition an authenticated user acts in.
// It is resolved from the users table on every request and passed explicitly
// into service operations; nothing reads it from ambient state.
type Scope struct {
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Role         UserRole
}

// IsAdmin reports whether the scope may mutate the menu catalog,
// the floor plan and the restaurant profile.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}
