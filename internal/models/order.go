package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the service state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
)

var orderStatusRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderServed:    1,
	OrderCompleted: 2,
}

// ValidOrderStatus reports whether s is one of the canonical statuses.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanAdvance reports whether target is strictly ahead of current. Status
// only moves forward through advance: pending -> served -> completed, with
// completed also reachable straight from pending. A target at or behind
// the current status is a no-op for the caller, not an error.
func CanAdvance(current, target OrderStatus) bool {
	cr, ok := orderStatusRank[current]
	if !ok {
		return false
	}
	tr, ok := orderStatusRank[target]
	if !ok {
		return false
	}
	return tr > cr
}

// TableStatusFor gives the table status that mirrors an order status:
// the table tracks the order while it is open and returns to free once
// the order completes.
func TableStatusFor(s OrderStatus) TableStatus {
	switch s {
	case OrderServed:
		return TableServed
	case OrderCompleted:
		return TableFree
	default:
		return TablePending
	}
}

// ItemQuantities maps menu item ids to ordered quantities. Persisted as a
// JSONB document, mirroring the basket shape the ordering screens work with.
type ItemQuantities map[string]int

func (q ItemQuantities) Value() (driver.Value, error) {
	if q == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(q)
}

func (q *ItemQuantities) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*q = ItemQuantities{}
		return nil
	default:
		return fmt.Errorf("cannot scan item quantities from %T", src)
	}
	return json.Unmarshal(data, q)
}

// FilterQuantities drops entries with a zero or negative quantity. Callers
// pass baskets straight from the UI, where decrement buttons can leave
// zeroed rows behind; those are silently removed, never rejected.
func FilterQuantities(in ItemQuantities) ItemQuantities {
	out := make(ItemQuantities, len(in))
	for id, qty := range in {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// MergeQuantities returns a copy of base with every delta quantity added
// on top. Missing keys count as zero; quantities are never decreased
// through this path.
func MergeQuantities(base, delta ItemQuantities) ItemQuantities {
	out := make(ItemQuantities, len(base)+len(delta))
	for id, qty := range base {
		out[id] = qty
	}
	for id, qty := range delta {
		if qty <= 0 {
			continue
		}
		out[id] += qty
	}
	return out
}

// Order is a basket of menu-item quantities tied to one table. A completed
// order is terminal; opening the table again creates a fresh order.
type Order struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	RestaurantID uuid.UUID      `db:"restaurant_id" json:"restaurant_id"`
	TableID      uuid.UUID      `db:"table_id" json:"table_id"`
	Items        ItemQuantities `db:"items" json:"items"`
	Status       OrderStatus    `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// OpenOrderRequest is used to open an order against a free table.
type OpenOrderRequest struct {
	TableID string         `json:"table_id" validate:"required,uuid"`
	Items   ItemQuantities `json:"items" validate:"required"`
}

// AddItemsRequest merges more quantities into an existing order. Reopen
// forces the order (and its table) back to pending regardless of prior
// status; ordering more always reopens service.
type AddItemsRequest struct {
	Items  ItemQuantities `json:"items" validate:"required"`
	Reopen bool           `json:"reopen"`
}

// AdvanceStatusRequest moves an order forward through its lifecycle.
type AdvanceStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=served completed"`
}
