package handler

import (
	"net/http"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

// RestaurantHandler handles restaurant profile requests
type RestaurantHandler struct {
	restaurants service.RestaurantStore
	scopes      *service.ScopeResolver
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurants service.RestaurantStore, scopes *service.ScopeResolver) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, scopes: scopes}
}

// HandleRestaurant handles GET /restaurant and PUT /restaurant
func (h *RestaurantHandler) HandleRestaurant(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveScope(r, h.scopes)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		restaurant, err := h.restaurants.GetByID(r.Context(), scope.RestaurantID)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, restaurant)

	case http.MethodPut:
		if !scope.IsAdmin() {
			api.WriteError(w, api.Errorf(api.KindForbidden, "only admins may edit the restaurant profile"))
			return
		}

		var req models.RestaurantRequest
		if err := decodeAndValidate(r, &req); err != nil {
			api.WriteError(w, err)
			return
		}

		restaurant, err := h.restaurants.Update(r.Context(), scope.RestaurantID, req)
		if err != nil {
			api.WriteError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, restaurant)

	default:
		methodNotAllowed(w)
	}
}
