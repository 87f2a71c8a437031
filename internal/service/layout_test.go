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

func adminScope(restaurantID uuid.UUID) models.Scope {
	return models.Scope{UserID: uuid.New(), RestaurantID: restaurantID, Role: models.RoleAdmin}
}

func TestGenerateTablesResetsFloorPlan(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	tables := mocks.NewFakeTableStore()
	events := &mocks.FakePublisher{}
	svc := service.NewLayoutService(tables, events)

	old := tables.Add(restaurantID, "42", models.TablePending)

	generated, err := svc.GenerateTables(ctx, adminScope(restaurantID), 3)
	require.NoError(t, err)
	require.Len(t, generated, 3)

	numeros := map[string]bool{}
	for _, table := range generated {
		numeros[table.Numero] = true
		assert.Equal(t, models.TableFree, table.Status)
		assert.NotEqual(t, old.ID, table.ID)
	}
	assert.Equal(t, map[string]bool{"1": true, "2": true, "3": true}, numeros)

	_, err = tables.GetByID(ctx, restaurantID, old.ID)
	assert.Equal(t, api.KindNotFound, api.KindOf(err), "reset is destructive")

	assert.Equal(t, []string{service.EventTablesGenerated}, events.Types())
}

func TestGenerateTablesRejectsNonAdmin(t *testing.T) {
	svc := service.NewLayoutService(mocks.NewFakeTableStore(), nil)
	scope := models.Scope{UserID: uuid.New(), RestaurantID: uuid.New(), Role: models.RoleEmployee}

	_, err := svc.GenerateTables(context.Background(), scope, 3)
	assert.Equal(t, api.KindForbidden, api.KindOf(err))
}

func TestGenerateTablesRejectsZeroCount(t *testing.T) {
	svc := service.NewLayoutService(mocks.NewFakeTableStore(), nil)

	_, err := svc.GenerateTables(context.Background(), adminScope(uuid.New()), 0)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestSavePositionsReconcilesWorkingSet(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	tables := mocks.NewFakeTableStore()
	svc := service.NewLayoutService(tables, nil)
	scope := adminScope(restaurantID)

	t1 := tables.Add(restaurantID, "1", models.TablePending)
	t2 := tables.Add(restaurantID, "2", models.TableFree)
	t3 := tables.Add(restaurantID, "3", models.TableFree)

	// Keep T1 moved and renumbered, drop T2 and T3, add a brand-new T4.
	final, err := svc.SavePositions(ctx, scope, []models.WorkingTable{
		{ID: t1.ID.String(), Numero: "1A", Position: models.Position{X: 10, Y: 20}},
		{Numero: "4", Position: models.Position{X: 300, Y: 300}},
	})
	require.NoError(t, err)
	require.Len(t, final, 2)

	byNumero := map[string]models.Table{}
	for _, table := range final {
		byNumero[table.Numero] = table
	}

	kept, ok := byNumero["1A"]
	require.True(t, ok)
	assert.Equal(t, t1.ID, kept.ID, "kept tables retain their identity")
	assert.Equal(t, models.Position{X: 10, Y: 20}, kept.Position())
	assert.Equal(t, models.TablePending, kept.Status, "reconciliation never touches occupancy")

	added, ok := byNumero["4"]
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, added.ID)
	assert.Equal(t, models.TableFree, added.Status)

	for _, dropped := range []uuid.UUID{t2.ID, t3.ID} {
		_, err := tables.GetByID(ctx, restaurantID, dropped)
		assert.Equal(t, api.KindNotFound, api.KindOf(err))
	}
}

func TestSavePositionsEmptySetClearsFloorPlan(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	tables := mocks.NewFakeTableStore()
	svc := service.NewLayoutService(tables, nil)

	tables.Add(restaurantID, "1", models.TableFree)

	final, err := svc.SavePositions(ctx, adminScope(restaurantID), nil)
	require.NoError(t, err)
	assert.Empty(t, final)
}

func TestSavePositionsRejectsNonAdmin(t *testing.T) {
	svc := service.NewLayoutService(mocks.NewFakeTableStore(), nil)
	scope := models.Scope{UserID: uuid.New(), RestaurantID: uuid.New(), Role: models.RoleEmployee}

	_, err := svc.SavePositions(context.Background(), scope, nil)
	assert.Equal(t, api.KindForbidden, api.KindOf(err))
}

func TestSavePositionsKeepsOverlappingPositions(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	tables := mocks.NewFakeTableStore()
	svc := service.NewLayoutService(tables, nil)

	final, err := svc.SavePositions(ctx, adminScope(restaurantID), []models.WorkingTable{
		{Numero: "1", Position: models.Position{X: -50, Y: -50}},
		{Numero: "2", Position: models.Position{X: -50, Y: -50}},
	})
	require.NoError(t, err)
	require.Len(t, final, 2)

	for _, table := range final {
		assert.Equal(t, models.Position{X: -50, Y: -50}, table.Position(), "free-form offsets, no bounds or collision rules")
	}
}
