package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
	"github.com/comanda-app/table-service/internal/websockets"
)

// OrderHandler handles order lifecycle requests
type OrderHandler struct {
	lifecycle *service.LifecycleService
	menu      *service.MenuService
	scopes    *service.ScopeResolver
	hub       *websockets.Hub
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(lifecycle *service.LifecycleService, menu *service.MenuService, scopes *service.ScopeResolver, hub *websockets.Hub) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle, menu: menu, scopes: scopes, hub: hub}
}

// orderView is an order plus its computed total.
type orderView struct {
	models.Order
	Total float64 `json:"total"`
}

// HandleOrders handles requests under /orders
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveScope(r, h.scopes)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/orders")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.openOrder(w, r, scope)
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		api.BadRequest(w, "invalid order id")
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.getOrder(w, r, scope, id)
		return
	}

	if len(parts) == 2 {
		switch {
		case parts[1] == "items" && r.Method == http.MethodPost:
			h.addItems(w, r, scope, id)
			return
		case parts[1] == "status" && r.Method == http.MethodPut:
			h.advanceStatus(w, r, scope, id)
			return
		}
	}

	api.BadRequest(w, "invalid path")
}

func (h *OrderHandler) openOrder(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	var req models.OpenOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		api.BadRequest(w, "invalid table id")
		return
	}

	order, err := h.lifecycle.OpenOrder(r.Context(), scope, tableID, req.Items)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.notifyTableUpdate(scope, order)
	api.WriteJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	order, err := h.lifecycle.GetOrder(r.Context(), scope, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	// The detail screen shows a running total alongside the basket.
	catalog, err := h.menu.ListMenu(r.Context(), scope, models.MenuFilter{})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, orderView{
		Order: *order,
		Total: service.ComputeTotal(order, catalog),
	})
}

func (h *OrderHandler) addItems(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	var req models.AddItemsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	order, err := h.lifecycle.AddItems(r.Context(), scope, id, req.Items, req.Reopen)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.notifyTableUpdate(scope, order)
	api.WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) advanceStatus(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	var req models.AdvanceStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	order, err := h.lifecycle.AdvanceStatus(r.Context(), scope, id, req.Status)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.notifyTableUpdate(scope, order)
	api.WriteJSON(w, http.StatusOK, order)
}

// notifyTableUpdate pushes the table/order state change to the other staff
// devices of the restaurant.
func (h *OrderHandler) notifyTableUpdate(scope models.Scope, order *models.Order) {
	if h.hub == nil {
		return
	}

	msg, err := websockets.NewMessage(websockets.TypeTableUpdate, struct {
		TableID string             `json:"table_id"`
		OrderID string             `json:"order_id"`
		Status  models.OrderStatus `json:"status"`
	}{
		TableID: order.TableID.String(),
		OrderID: order.ID.String(),
		Status:  order.Status,
	})
	if err != nil {
		return
	}

	h.hub.BroadcastToRestaurant(scope.RestaurantID.String(), msg)
}
