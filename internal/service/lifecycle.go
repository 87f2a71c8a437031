package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// LifecycleService mediates every state change to a table's occupancy and
// its order, keeping the two records consistent:
//
//	free  --open-->              pending/pending
//	pending/pending --advance--> pending/served
//	pending/served  --advance--> free/completed
//	pending/served  --add more-> pending/pending (reopen)
//
// A completed order is terminal; opening the freed table again creates a
// fresh order.
type LifecycleService struct {
	orders OrderStore
	tables TableStore
	menu   MenuStore
	events Publisher
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(orders OrderStore, tables TableStore, menu MenuStore, events Publisher) *LifecycleService {
	return &LifecycleService{
		orders: orders,
		tables: tables,
		menu:   menu,
		events: events,
	}
}

// OpenOrder creates a pending order against a free table. Zero and negative
// quantities are dropped rather than rejected; the basket must have at
// least one surviving entry. Every item must belong to the restaurant's
// menu.
func (s *LifecycleService) OpenOrder(ctx context.Context, scope models.Scope, tableID uuid.UUID, items models.ItemQuantities) (*models.Order, error) {
	filtered := models.FilterQuantities(items)
	if len(filtered) == 0 {
		return nil, api.Errorf(api.KindValidation, "order needs at least one item")
	}

	if err := s.checkItemsOnMenu(ctx, scope, filtered); err != nil {
		return nil, err
	}

	order, err := s.orders.Open(ctx, scope.RestaurantID, tableID, filtered)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(ctx, Event{
			Type:         EventOrderOpened,
			RestaurantID: scope.RestaurantID.String(),
			OrderID:      order.ID.String(),
			TableID:      order.TableID.String(),
		})
	}

	return order, nil
}

// AddItems merges delta quantities into an existing order; missing keys
// count as zero and quantities never decrease through this path. With
// reopen set, the order and its table go back to pending: ordering more
// always reopens service, even on a served table.
func (s *LifecycleService) AddItems(ctx context.Context, scope models.Scope, orderID uuid.UUID, delta models.ItemQuantities, reopen bool) (*models.Order, error) {
	filtered := models.FilterQuantities(delta)
	if len(filtered) == 0 && !reopen {
		return s.orders.GetByID(ctx, scope.RestaurantID, orderID)
	}

	if err := s.checkItemsOnMenu(ctx, scope, filtered); err != nil {
		return nil, err
	}

	order, err := s.orders.MergeItems(ctx, scope.RestaurantID, orderID, filtered, reopen)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(ctx, Event{
			Type:         EventItemsAdded,
			RestaurantID: scope.RestaurantID.String(),
			OrderID:      order.ID.String(),
			TableID:      order.TableID.String(),
		})
	}

	return order, nil
}

// AdvanceStatus moves an order forward (pending -> served -> completed,
// completed also reachable straight from pending) and mirrors the change
// onto the table; completion returns the table to free. A target at or
// behind the current status is a no-op, not an error.
func (s *LifecycleService) AdvanceStatus(ctx context.Context, scope models.Scope, orderID uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(target) || target == models.OrderPending {
		return nil, api.Errorf(api.KindValidation, "cannot advance to status %q", target)
	}

	order, advanced, err := s.orders.Advance(ctx, scope.RestaurantID, orderID, target)
	if err != nil {
		return nil, err
	}

	if advanced && s.events != nil {
		s.events.Publish(ctx, Event{
			Type:         EventStatusAdvanced,
			RestaurantID: scope.RestaurantID.String(),
			OrderID:      order.ID.String(),
			TableID:      order.TableID.String(),
			Status:       string(order.Status),
		})
	}

	return order, nil
}

// GetOrder retrieves an order by id within the scope.
func (s *LifecycleService) GetOrder(ctx context.Context, scope models.Scope, orderID uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, scope.RestaurantID, orderID)
}

// checkItemsOnMenu verifies every basket key references a menu item of the
// same restaurant.
func (s *LifecycleService) checkItemsOnMenu(ctx context.Context, scope models.Scope, items models.ItemQuantities) error {
	if len(items) == 0 {
		return nil
	}

	catalog, err := s.menu.ListByRestaurant(ctx, scope.RestaurantID)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		known[item.ID.String()] = true
	}

	for id := range items {
		if !known[id] {
			return api.Errorf(api.KindValidation, "item %s is not on the menu", id)
		}
	}

	return nil
}

// ComputeTotal sums price*quantity over the order's items. Entries whose
// id is absent from the catalog are skipped, not treated as an error.
func ComputeTotal(order *models.Order, catalog []models.MenuItem) float64 {
	prices := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ID.String()] = item.Price
	}

	var total float64
	for id, qty := range order.Items {
		price, ok := prices[id]
		if !ok {
			continue
		}
		total += price * float64(qty)
	}
	return total
}
