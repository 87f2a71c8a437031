package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TableStatus represents a table's occupancy state
type TableStatus string

const (
	TableFree    TableStatus = "free"
	TablePending TableStatus = "pending"
	TableServed  TableStatus = "served"
)

// NormalizeTableStatus maps the status strings older clients wrote into the
// canonical enum. "occupied" (and its Spanish forms) meant pending service;
// anything unrecognized is treated as free.
func NormalizeTableStatus(raw string) TableStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "occupied", "pendiente", "ocupada":
		return TablePending
	case "served", "servido", "servida":
		return TableServed
	default:
		return TableFree
	}
}

// Scan normalizes legacy status synonyms at the database boundary.
func (s *TableStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = NormalizeTableStatus(v)
	case []byte:
		*s = NormalizeTableStatus(string(v))
	case nil:
		*s = TableFree
	default:
		return fmt.Errorf("cannot scan table status from %T", src)
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Position is a free-form 2D offset inside the floor plan. There is no
// bounds or collision constraint: overlapping tables are allowed.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Table is a physical seating unit. OrderID points at the table's open
// order while the status is pending or served; after completion it keeps
// pointing at the last order historically, and the status alone governs
// whether the table can be opened again.
type Table struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	RestaurantID uuid.UUID   `db:"restaurant_id" json:"restaurant_id"`
	Numero       string      `db:"numero" json:"numero"`
	Status       TableStatus `db:"status" json:"status"`
	OrderID      *uuid.UUID  `db:"order_id" json:"order_id"`
	PosX         float64     `db:"pos_x" json:"-"`
	PosY         float64     `db:"pos_y" json:"-"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// Position returns the table's layout coordinates.
func (t Table) Position() Position {
	return Position{X: t.PosX, Y: t.PosY}
}

// TableView is the wire shape for a table, with the position nested the
// way the layout editor works with it.
type TableView struct {
	Table
	Position Position `json:"position"`
}

func (t Table) View() TableView {
	return TableView{Table: t, Position: t.Position()}
}

// WorkingTable is one entry of the layout editor's in-memory working set.
// An empty ID marks a table added during the session that does not exist
// in the backend yet.
type WorkingTable struct {
	ID       string   `json:"id" validate:"omitempty,uuid"`
	Numero   string   `json:"numero" validate:"required,min=1,max=20"`
	Position Position `json:"position"`
}

// LayoutRequest is the full working set submitted by the layout editor.
// Reconciliation upserts every entry and deletes backend tables absent
// from it.
type LayoutRequest struct {
	Tables []WorkingTable `json:"tables" validate:"dive"`
}

// GenerateTablesRequest asks for a destructive floor-plan reset.
type GenerateTablesRequest struct {
	Count int `json:"count" validate:"required,min=1,max=200"`
}
