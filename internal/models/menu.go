package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DishType categorizes a menu item
type DishType string

const (
	DishTypeStarter       DishType = "starter"
	DishTypeMainCourse    DishType = "main_course"
	DishTypeSecondoCourse DishType = "secondo_course"
	DishTypeDessert       DishType = "dessert"
	DishTypeBeverage      DishType = "beverage"
	DishTypeTapa          DishType = "tapa"
)

// DishTypeAll is the pass-all sentinel accepted by menu filtering.
const DishTypeAll DishType = "all"

// MenuItem represents a dish on a restaurant's menu
type MenuItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	Name         string    `db:"name" json:"name"`
	DishType     DishType  `db:"dish_type" json:"dish_type"`
	Price        float64   `db:"price" json:"price"`
	Allergens    string    `db:"allergens" json:"allergens"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Complete reports whether the item has everything it needs to be shown
// to waitstaff, which includes an uploaded image.
func (m MenuItem) Complete() bool {
	return m.Name != "" && m.ImageURL != ""
}

// MenuItemRequest is used for menu item creation/update. Price arrives as a
// string so the two-fractional-digit format can be validated before parsing.
type MenuItemRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	DishType  DishType `json:"dish_type" validate:"required,oneof=starter main_course secondo_course dessert beverage tapa"`
	Price     string   `json:"price" validate:"required"`
	Allergens string   `json:"allergens" validate:"max=500"`
	ImageURL  string   `json:"image_url" validate:"omitempty,url"`
}

// MenuFilter combines the two menu predicates. Both AND together; a zero
// value (or DishTypeAll) leaves the corresponding predicate out.
type MenuFilter struct {
	DishType      DishType
	NameSubstring string
}

// FilterMenu returns the items matching the filter. It never mutates the
// input slice, so callers can re-filter the full set on every input change.
func FilterMenu(items []MenuItem, f MenuFilter) []MenuItem {
	byType := f.DishType != "" && f.DishType != DishTypeAll
	bySub := f.NameSubstring != ""
	sub := strings.ToLower(f.NameSubstring)

	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if byType && item.DishType != f.DishType {
			continue
		}
		if bySub && !strings.Contains(strings.ToLower(item.Name), sub) {
			continue
		}
		out = append(out, item)
	}
	return out
}
