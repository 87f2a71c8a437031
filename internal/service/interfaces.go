package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/models"
)

// The services depend on these narrow store interfaces rather than the
// concrete sqlx repositories, so the lifecycle rules can be exercised in
// tests with in-memory fakes and no live database.

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	CreateWithRestaurant(ctx context.Context, user models.User, restaurant models.Restaurant) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*models.User, error)
}

type RestaurantStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, req models.RestaurantRequest) (*models.Restaurant, error)
}

type MenuStore interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error)
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	SetImage(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type TableStore interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error)
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error)
	ReplaceAll(ctx context.Context, restaurantID uuid.UUID, count int) ([]models.Table, error)
	Reconcile(ctx context.Context, restaurantID uuid.UUID, working []models.WorkingTable) ([]models.Table, error)
}

type OrderStore interface {
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error)
	Open(ctx context.Context, restaurantID, tableID uuid.UUID, items models.ItemQuantities) (*models.Order, error)
	MergeItems(ctx context.Context, restaurantID, orderID uuid.UUID, delta models.ItemQuantities, reopen bool) (*models.Order, error)
	Advance(ctx context.Context, restaurantID, orderID uuid.UUID, target models.OrderStatus) (*models.Order, bool, error)
}

// ImageSink stores uploaded menu images and returns the public URL they
// will be served from.
type ImageSink interface {
	SaveImage(fileName string, r io.Reader) (string, error)
	RemoveImage(url string) error
}

// Publisher emits lifecycle analytics events. Services treat a nil
// publisher as "analytics disabled".
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
