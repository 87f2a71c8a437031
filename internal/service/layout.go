package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// LayoutService owns the floor plan: listing tables, the destructive
// regenerate-by-count reset, and reconciling the layout editor's working
// set against the stored set. Positions are free-form offsets; overlap is
// allowed by design and nothing here checks bounds or collisions.
type LayoutService struct {
	tables TableStore
	events Publisher
}

// NewLayoutService creates a new layout service
func NewLayoutService(tables TableStore, events Publisher) *LayoutService {
	return &LayoutService{tables: tables, events: events}
}

// ListTables retrieves every table of the restaurant.
func (s *LayoutService) ListTables(ctx context.Context, scope models.Scope) ([]models.Table, error) {
	return s.tables.ListByRestaurant(ctx, scope.RestaurantID)
}

// GetTable retrieves a single table.
func (s *LayoutService) GetTable(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.Table, error) {
	return s.tables.GetByID(ctx, scope.RestaurantID, id)
}

// GenerateTables deletes every existing table and creates count fresh free
// ones numbered 1..count. This reset is intentional, not an incremental
// add: existing positions are lost. Admin only.
func (s *LayoutService) GenerateTables(ctx context.Context, scope models.Scope, count int) ([]models.Table, error) {
	if !scope.IsAdmin() {
		return nil, api.Errorf(api.KindForbidden, "only admins may configure tables")
	}
	if count < 1 {
		return nil, api.Errorf(api.KindValidation, "table count must be at least 1")
	}

	tables, err := s.tables.ReplaceAll(ctx, scope.RestaurantID, count)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(ctx, Event{
			Type:         EventTablesGenerated,
			RestaurantID: scope.RestaurantID.String(),
			Count:        count,
		})
	}

	return tables, nil
}

// SavePositions reconciles the editor's working set against the stored
// tables: kept entries are upserted with their numero and position, stored
// tables absent from the set are deleted. The whole diff runs in one
// transaction, so there is no window with stale deletions or insertions.
// Admin only.
func (s *LayoutService) SavePositions(ctx context.Context, scope models.Scope, working []models.WorkingTable) ([]models.Table, error) {
	if !scope.IsAdmin() {
		return nil, api.Errorf(api.KindForbidden, "only admins may configure tables")
	}

	return s.tables.Reconcile(ctx, scope.RestaurantID, working)
}
