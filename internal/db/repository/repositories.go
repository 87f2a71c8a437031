package repository

import (
	"github.com/comanda-app/table-service/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User       *UserRepository
	Restaurant *RestaurantRepository
	Menu       *MenuRepository
	Table      *TableRepository
	Order      *OrderRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		User:       NewUserRepository(database.DB),
		Restaurant: NewRestaurantRepository(database.DB),
		Menu:       NewMenuRepository(database.DB),
		Table:      NewTableRepository(database.DB),
		Order:      NewOrderRepository(database.DB),
	}
}
