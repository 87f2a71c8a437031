package service

import (
	"context"
	"io"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// Matches a non-negative decimal with at most two fractional digits.
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// MenuService handles the menu catalog: the read path is open to every
// staff member, mutation is admin-only.
type MenuService struct {
	menu   MenuStore
	images ImageSink
}

// NewMenuService creates a new menu service
func NewMenuService(menu MenuStore, images ImageSink) *MenuService {
	return &MenuService{menu: menu, images: images}
}

// ListMenu retrieves the restaurant's full menu and applies the filter to
// it. Filtering is pure and always recomputed from the complete set, so
// narrowing a filter is never irreversible.
func (s *MenuService) ListMenu(ctx context.Context, scope models.Scope, filter models.MenuFilter) ([]models.MenuItem, error) {
	items, err := s.menu.ListByRestaurant(ctx, scope.RestaurantID)
	if err != nil {
		return nil, err
	}
	return models.FilterMenu(items, filter), nil
}

// GetItem retrieves a single menu item.
func (s *MenuService) GetItem(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.MenuItem, error) {
	return s.menu.GetByID(ctx, scope.RestaurantID, id)
}

// CreateItem creates a menu item. Admin only.
func (s *MenuService) CreateItem(ctx context.Context, scope models.Scope, req models.MenuItemRequest) (*models.MenuItem, error) {
	if !scope.IsAdmin() {
		return nil, api.Errorf(api.KindForbidden, "only admins may edit the menu")
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	return s.menu.Create(ctx, models.MenuItem{
		RestaurantID: scope.RestaurantID,
		Name:         req.Name,
		DishType:     req.DishType,
		Price:        price,
		Allergens:    req.Allergens,
		ImageURL:     req.ImageURL,
	})
}

// UpdateItem mutates a menu item in place. Admin only.
func (s *MenuService) UpdateItem(ctx context.Context, scope models.Scope, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error) {
	if !scope.IsAdmin() {
		return nil, api.Errorf(api.KindForbidden, "only admins may edit the menu")
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	existing, err := s.menu.GetByID(ctx, scope.RestaurantID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.DishType = req.DishType
	existing.Price = price
	existing.Allergens = req.Allergens
	if req.ImageURL != "" {
		existing.ImageURL = req.ImageURL
	}

	return s.menu.Update(ctx, *existing)
}

// AttachImage stores the URL of a freshly uploaded item image. Admin only.
func (s *MenuService) AttachImage(ctx context.Context, scope models.Scope, id uuid.UUID, imageURL string) error {
	if !scope.IsAdmin() {
		return api.Errorf(api.KindForbidden, "only admins may edit the menu")
	}
	return s.menu.SetImage(ctx, scope.RestaurantID, id, imageURL)
}

// UploadImage stores an uploaded image and attaches its URL to the item.
// The admin gate and the item lookup run before anything touches disk, so a
// rejected upload leaves no file behind; if attaching fails after the write,
// the stored file is removed again. Admin only.
func (s *MenuService) UploadImage(ctx context.Context, scope models.Scope, id uuid.UUID, fileName string, r io.Reader) (string, error) {
	if !scope.IsAdmin() {
		return "", api.Errorf(api.KindForbidden, "only admins may edit the menu")
	}

	if _, err := s.menu.GetByID(ctx, scope.RestaurantID, id); err != nil {
		return "", err
	}

	url, err := s.images.SaveImage(fileName, r)
	if err != nil {
		return "", err
	}

	if err := s.menu.SetImage(ctx, scope.RestaurantID, id, url); err != nil {
		_ = s.images.RemoveImage(url)
		return "", err
	}

	return url, nil
}

// DeleteItem removes a menu item permanently. Admin only, irreversible.
func (s *MenuService) DeleteItem(ctx context.Context, scope models.Scope, id uuid.UUID) error {
	if !scope.IsAdmin() {
		return api.Errorf(api.KindForbidden, "only admins may edit the menu")
	}
	return s.menu.Delete(ctx, scope.RestaurantID, id)
}

func parsePrice(raw string) (float64, error) {
	if !priceFormat.MatchString(raw) {
		return 0, api.Errorf(api.KindValidation, "invalid price %q, expected format 0.00", raw)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, api.Errorf(api.KindValidation, "invalid price %q", raw)
	}
	return price, nil
}
