// Package mocks provides in-memory store implementations for tests. The
// fakes apply the same coupled-write semantics as the sqlx repositories,
// so service-level invariants can be exercised without a database.
package mocks

import (
	"context"
	"io"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

// FakeMenuStore is an in-memory MenuStore.
type FakeMenuStore struct {
	mu    sync.Mutex
	Items map[uuid.UUID]models.MenuItem
}

func NewFakeMenuStore() *FakeMenuStore {
	return &FakeMenuStore{Items: make(map[uuid.UUID]models.MenuItem)}
}

// Add seeds a menu item and returns it.
func (f *FakeMenuStore) Add(restaurantID uuid.UUID, name string, dishType models.DishType, price float64) models.MenuItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		DishType:     dishType,
		Price:        price,
	}
	f.Items[item.ID] = item
	return item
}

func (f *FakeMenuStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []models.MenuItem{}
	for _, item := range f.Items {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *FakeMenuStore) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.Items[id]
	if !ok || item.RestaurantID != restaurantID {
		return nil, api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}
	return &item, nil
}

func (f *FakeMenuStore) Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = uuid.New()
	f.Items[item.ID] = item
	return &item, nil
}

func (f *FakeMenuStore) Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.Items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return nil, api.Errorf(api.KindNotFound, "menu item %s not found", item.ID)
	}
	f.Items[item.ID] = item
	return &item, nil
}

func (f *FakeMenuStore) SetImage(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.Items[id]
	if !ok || item.RestaurantID != restaurantID {
		return api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}
	item.ImageURL = imageURL
	f.Items[id] = item
	return nil
}

func (f *FakeMenuStore) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.Items[id]
	if !ok || item.RestaurantID != restaurantID {
		return api.Errorf(api.KindNotFound, "menu item %s not found", id)
	}
	delete(f.Items, id)
	return nil
}

// FakeTableStore is an in-memory TableStore.
type FakeTableStore struct {
	mu     sync.Mutex
	Tables map[uuid.UUID]*models.Table
}

func NewFakeTableStore() *FakeTableStore {
	return &FakeTableStore{Tables: make(map[uuid.UUID]*models.Table)}
}

// Add seeds a table and returns it.
func (f *FakeTableStore) Add(restaurantID uuid.UUID, numero string, status models.TableStatus) *models.Table {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := &models.Table{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Numero:       numero,
		Status:       status,
	}
	f.Tables[table.ID] = table
	return table
}

func (f *FakeTableStore) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := []models.Table{}
	for _, t := range f.Tables {
		if t.RestaurantID == restaurantID {
			tables = append(tables, *t)
		}
	}
	return tables, nil
}

func (f *FakeTableStore) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.Tables[id]
	if !ok || t.RestaurantID != restaurantID {
		return nil, api.Errorf(api.KindNotFound, "table %s not found", id)
	}
	copy := *t
	return &copy, nil
}

func (f *FakeTableStore) ReplaceAll(ctx context.Context, restaurantID uuid.UUID, count int) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.Tables {
		if t.RestaurantID == restaurantID {
			delete(f.Tables, id)
		}
	}
	tables := make([]models.Table, 0, count)
	for i := 1; i <= count; i++ {
		t := &models.Table{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Numero:       strconv.Itoa(i),
			Status:       models.TableFree,
		}
		f.Tables[t.ID] = t
		tables = append(tables, *t)
	}
	return tables, nil
}

func (f *FakeTableStore) Reconcile(ctx context.Context, restaurantID uuid.UUID, working []models.WorkingTable) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := make(map[uuid.UUID]bool, len(working))
	for _, wt := range working {
		if wt.ID == "" {
			continue
		}
		id, err := uuid.Parse(wt.ID)
		if err != nil {
			return nil, api.Errorf(api.KindValidation, "invalid table id %q", wt.ID)
		}
		if t, ok := f.Tables[id]; ok && t.RestaurantID == restaurantID {
			kept[id] = true
		}
	}

	for id, t := range f.Tables {
		if t.RestaurantID == restaurantID && !kept[id] {
			delete(f.Tables, id)
		}
	}

	for _, wt := range working {
		if wt.ID != "" {
			id, _ := uuid.Parse(wt.ID)
			if kept[id] {
				t := f.Tables[id]
				t.Numero = wt.Numero
				t.PosX = wt.Position.X
				t.PosY = wt.Position.Y
				continue
			}
		}
		t := &models.Table{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Numero:       wt.Numero,
			Status:       models.TableFree,
			PosX:         wt.Position.X,
			PosY:         wt.Position.Y,
		}
		f.Tables[t.ID] = t
	}

	final := []models.Table{}
	for _, t := range f.Tables {
		if t.RestaurantID == restaurantID {
			final = append(final, *t)
		}
	}
	return final, nil
}

// FakeOrderStore is an in-memory OrderStore coupled to a FakeTableStore,
// mirroring the transactional order/table writes of the real repository.
type FakeOrderStore struct {
	mu     sync.Mutex
	Orders map[uuid.UUID]*models.Order
	tables *FakeTableStore
}

func NewFakeOrderStore(tables *FakeTableStore) *FakeOrderStore {
	return &FakeOrderStore{Orders: make(map[uuid.UUID]*models.Order), tables: tables}
}

func (f *FakeOrderStore) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.Orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return nil, api.Errorf(api.KindNotFound, "order %s not found", id)
	}
	copy := *o
	copy.Items = models.MergeQuantities(o.Items, nil)
	return &copy, nil
}

func (f *FakeOrderStore) Open(ctx context.Context, restaurantID, tableID uuid.UUID, items models.ItemQuantities) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table, ok := f.tables.Tables[tableID]
	if !ok || table.RestaurantID != restaurantID {
		return nil, api.Errorf(api.KindNotFound, "table %s not found", tableID)
	}
	if table.Status != models.TableFree {
		return nil, api.Errorf(api.KindConflict, "table %s already has an open order", tableID)
	}

	order := &models.Order{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		TableID:      tableID,
		Items:        models.MergeQuantities(items, nil),
		Status:       models.OrderPending,
	}
	f.Orders[order.ID] = order

	table.Status = models.TablePending
	id := order.ID
	table.OrderID = &id

	copy := *order
	return &copy, nil
}

func (f *FakeOrderStore) MergeItems(ctx context.Context, restaurantID, orderID uuid.UUID, delta models.ItemQuantities, reopen bool) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.Orders[orderID]
	if !ok || order.RestaurantID != restaurantID {
		return nil, api.Errorf(api.KindNotFound, "order %s not found", orderID)
	}

	order.Items = models.MergeQuantities(order.Items, delta)
	if reopen {
		order.Status = models.OrderPending
		if table, ok := f.tables.Tables[order.TableID]; ok {
			table.Status = models.TablePending
			id := order.ID
			table.OrderID = &id
		}
	}

	copy := *order
	return &copy, nil
}

func (f *FakeOrderStore) Advance(ctx context.Context, restaurantID, orderID uuid.UUID, target models.OrderStatus) (*models.Order, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.Orders[orderID]
	if !ok || order.RestaurantID != restaurantID {
		return nil, false, api.Errorf(api.KindNotFound, "order %s not found", orderID)
	}

	if !models.CanAdvance(order.Status, target) {
		copy := *order
		return &copy, false, nil
	}

	order.Status = target
	if table, ok := f.tables.Tables[order.TableID]; ok {
		table.Status = models.TableStatusFor(target)
	}

	copy := *order
	return &copy, true, nil
}

// FakeUserStore is an in-memory UserStore.
type FakeUserStore struct {
	mu    sync.Mutex
	Users map[uuid.UUID]models.User
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{Users: make(map[uuid.UUID]models.User)}
}

// Add seeds a user and returns it.
func (f *FakeUserStore) Add(restaurantID uuid.UUID, role models.UserRole) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := models.User{
		ID:           uuid.New(),
		Email:        uuid.New().String() + "@example.com",
		Name:         "Test User",
		Role:         role,
		RestaurantID: restaurantID,
	}
	f.Users[user.ID] = user
	return user
}

func (f *FakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.Users[id]
	if !ok {
		return nil, api.Errorf(api.KindNotFound, "user %s not found", id)
	}
	return &user, nil
}

func (f *FakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.Users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, api.Errorf(api.KindNotFound, "user not found")
}

func (f *FakeUserStore) Create(ctx context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.New()
	f.Users[user.ID] = user
	return &user, nil
}

func (f *FakeUserStore) CreateWithRestaurant(ctx context.Context, user models.User, restaurant models.Restaurant) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.New()
	user.RestaurantID = uuid.New()
	f.Users[user.ID] = user
	return &user, nil
}

func (f *FakeUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.Users[id]
	if !ok {
		return nil, api.Errorf(api.KindNotFound, "user %s not found", id)
	}
	user.Name = name
	user.Email = email
	f.Users[id] = user
	return &user, nil
}

// FakeImageSink records stored image URLs in memory.
type FakeImageSink struct {
	mu    sync.Mutex
	Saved []string
}

func (f *FakeImageSink) SaveImage(fileName string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "http://assets.test/images/" + uuid.New().String()
	f.Saved = append(f.Saved, url)
	return url, nil
}

func (f *FakeImageSink) RemoveImage(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, saved := range f.Saved {
		if saved == url {
			f.Saved = append(f.Saved[:i], f.Saved[i+1:]...)
			return nil
		}
	}
	return nil
}

// FakePublisher records published events.
type FakePublisher struct {
	mu     sync.Mutex
	Events []service.Event
}

func (f *FakePublisher) Publish(ctx context.Context, event service.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, event)
}

// Types returns the published event types in order.
func (f *FakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.Events))
	for _, e := range f.Events {
		types = append(types, e.Type)
	}
	return types
}
