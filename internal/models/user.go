package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never expose in JSON
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest is used for account creation. The role is fixed at
// registration time; there is no role-change flow. Admins without a
// restaurant get a fresh one created and owned by them, employees must
// join an existing restaurant.
type RegisterRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Name           string   `json:"name" validate:"required,min=2,max=100"`
	Role           UserRole `json:"role" validate:"required,oneof=admin employee"`
	RestaurantID   string   `json:"restaurant_id" validate:"omitempty,uuid"`
	RestaurantName string   `json:"restaurant_name" validate:"omitempty,min=1,max=100"`
}

// ProfileUpdateRequest covers the editable profile fields. Role and
// restaurant binding are immutable after registration.
type ProfileUpdateRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}
