package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/mocks"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

type lifecycleFixture struct {
	scope  models.Scope
	menu   *mocks.FakeMenuStore
	tables *mocks.FakeTableStore
	orders *mocks.FakeOrderStore
	events *mocks.FakePublisher
	svc    *service.LifecycleService

	table *models.Table
	bravas, paella models.MenuItem
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	restaurantID := uuid.New()
	menu := mocks.NewFakeMenuStore()
	tables := mocks.NewFakeTableStore()
	orders := mocks.NewFakeOrderStore(tables)
	events := &mocks.FakePublisher{}

	return &lifecycleFixture{
		scope:  models.Scope{UserID: uuid.New(), RestaurantID: restaurantID, Role: models.RoleEmployee},
		menu:   menu,
		tables: tables,
		orders: orders,
		events: events,
		svc:    service.NewLifecycleService(orders, tables, menu, events),
		table:  tables.Add(restaurantID, "1", models.TableFree),
		bravas: menu.Add(restaurantID, "Patatas Bravas", models.DishTypeTapa, 6.50),
		paella: menu.Add(restaurantID, "Paella", models.DishTypeMainCourse, 14.00),
	}
}

func TestOpenOrder(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{
		f.bravas.ID.String(): 2,
		f.paella.ID.String(): 0,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.ItemQuantities{f.bravas.ID.String(): 2}, order.Items, "zero quantities are dropped")

	table, err := f.tables.GetByID(ctx, f.scope.RestaurantID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TablePending, table.Status)
	require.NotNil(t, table.OrderID)
	assert.Equal(t, order.ID, *table.OrderID)

	assert.Equal(t, []string{service.EventOrderOpened}, f.events.Types())
}

func TestOpenOrderRejectsEmptyBasket(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.OpenOrder(context.Background(), f.scope, f.table.ID, models.ItemQuantities{
		f.bravas.ID.String(): 0,
		f.paella.ID.String(): -3,
	})

	assert.Equal(t, api.KindValidation, api.KindOf(err), "nothing survives filtering")
	assert.Empty(t, f.events.Types())
}

func TestOpenOrderRejectsUnknownItem(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.OpenOrder(context.Background(), f.scope, f.table.ID, models.ItemQuantities{
		uuid.New().String(): 1,
	})

	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestOpenOrderConflictsOnBusyTable(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	basket := models.ItemQuantities{f.bravas.ID.String(): 1}

	_, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, basket)
	require.NoError(t, err)

	_, err = f.svc.OpenOrder(ctx, f.scope, f.table.ID, basket)
	assert.Equal(t, api.KindConflict, api.KindOf(err))
}

func TestAddItemsMergesAdditively(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 2})
	require.NoError(t, err)

	updated, err := f.svc.AddItems(ctx, f.scope, order.ID, models.ItemQuantities{
		f.bravas.ID.String(): 3,
		f.paella.ID.String(): 1,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, models.ItemQuantities{
		f.bravas.ID.String(): 5,
		f.paella.ID.String(): 1,
	}, updated.Items)
}

func TestAddItemsEmptyDeltaIsReadOnly(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 2})
	require.NoError(t, err)
	f.events.Events = nil

	same, err := f.svc.AddItems(ctx, f.scope, order.ID, models.ItemQuantities{f.paella.ID.String(): -1}, false)
	require.NoError(t, err)

	assert.Equal(t, order.Items, same.Items)
	assert.Empty(t, f.events.Types(), "nothing changed, nothing published")
}

func TestAddItemsReopensServedTable(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 1})
	require.NoError(t, err)

	_, err = f.svc.AdvanceStatus(ctx, f.scope, order.ID, models.OrderServed)
	require.NoError(t, err)

	updated, err := f.svc.AddItems(ctx, f.scope, order.ID, models.ItemQuantities{f.paella.ID.String(): 1}, true)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, updated.Status)

	table, err := f.tables.GetByID(ctx, f.scope.RestaurantID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TablePending, table.Status)
}

func TestAdvanceStatusMirrorsTable(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 1})
	require.NoError(t, err)

	served, err := f.svc.AdvanceStatus(ctx, f.scope, order.ID, models.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderServed, served.Status)

	table, err := f.tables.GetByID(ctx, f.scope.RestaurantID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableServed, table.Status)

	completed, err := f.svc.AdvanceStatus(ctx, f.scope, order.ID, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, completed.Status)

	table, err = f.tables.GetByID(ctx, f.scope.RestaurantID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableFree, table.Status)
	assert.NotNil(t, table.OrderID, "last order id is kept for history")
}

func TestAdvanceStatusBackwardIsNoOp(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	order, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 1})
	require.NoError(t, err)

	_, err = f.svc.AdvanceStatus(ctx, f.scope, order.ID, models.OrderCompleted)
	require.NoError(t, err)
	f.events.Events = nil

	same, err := f.svc.AdvanceStatus(ctx, f.scope, order.ID, models.OrderServed)
	require.NoError(t, err, "stale advance is a no-op, not an error")
	assert.Equal(t, models.OrderCompleted, same.Status)

	table, err := f.tables.GetByID(ctx, f.scope.RestaurantID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableFree, table.Status)

	assert.Empty(t, f.events.Types())
}

func TestAdvanceStatusRejectsPendingTarget(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.AdvanceStatus(context.Background(), f.scope, uuid.New(), models.OrderPending)
	assert.Equal(t, api.KindValidation, api.KindOf(err))

	_, err = f.svc.AdvanceStatus(context.Background(), f.scope, uuid.New(), models.OrderStatus("done"))
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestReopenedTableCreatesFreshOrder(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	first, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.bravas.ID.String(): 1})
	require.NoError(t, err)

	_, err = f.svc.AdvanceStatus(ctx, f.scope, first.ID, models.OrderCompleted)
	require.NoError(t, err)

	second, err := f.svc.OpenOrder(ctx, f.scope, f.table.ID, models.ItemQuantities{f.paella.ID.String(): 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.ItemQuantities{f.paella.ID.String(): 1}, second.Items)

	kept, err := f.svc.GetOrder(ctx, f.scope, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, kept.Status, "completed orders stay queryable")
}

func TestComputeTotal(t *testing.T) {
	f := newLifecycleFixture(t)
	catalog := []models.MenuItem{f.bravas, f.paella}

	order := &models.Order{Items: models.ItemQuantities{
		f.bravas.ID.String(): 2,
		f.paella.ID.String(): 1,
		uuid.New().String():  7,
	}}

	assert.InDelta(t, 2*6.50+14.00, service.ComputeTotal(order, catalog), 1e-9,
		"unknown ids are skipped, not priced")
	assert.Zero(t, service.ComputeTotal(&models.Order{}, catalog))
	assert.Zero(t, service.ComputeTotal(order, nil))
}
