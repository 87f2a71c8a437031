package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

// maxImageUpload caps menu image uploads at 8MB.
const maxImageUpload = 8 << 20

// MenuHandler handles menu catalog requests
type MenuHandler struct {
	menu   *service.MenuService
	scopes *service.ScopeResolver
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *service.MenuService, scopes *service.ScopeResolver) *MenuHandler {
	return &MenuHandler{menu: menu, scopes: scopes}
}

// HandleMenu handles requests under /menu
func (h *MenuHandler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveScope(r, h.scopes)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/menu")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.listMenu(w, r, scope)
		case http.MethodPost:
			h.createItem(w, r, scope)
		default:
			methodNotAllowed(w)
		}
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		api.BadRequest(w, "invalid menu item id")
		return
	}

	if len(parts) == 2 && parts[1] == "image" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.uploadImage(w, r, scope, id)
		return
	}
	if len(parts) > 1 {
		api.BadRequest(w, "invalid path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getItem(w, r, scope, id)
	case http.MethodPut:
		h.updateItem(w, r, scope, id)
	case http.MethodDelete:
		h.deleteItem(w, r, scope, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *MenuHandler) listMenu(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	filter := models.MenuFilter{
		DishType:      models.DishType(r.URL.Query().Get("dish_type")),
		NameSubstring: r.URL.Query().Get("q"),
	}

	items, err := h.menu.ListMenu(r.Context(), scope, filter)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) getItem(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	item, err := h.menu.GetItem(r.Context(), scope, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) createItem(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	var req models.MenuItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	item, err := h.menu.CreateItem(r.Context(), scope, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) updateItem(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	var req models.MenuItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	item, err := h.menu.UpdateItem(r.Context(), scope, id, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) deleteItem(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	if err := h.menu.DeleteItem(r.Context(), scope, id); err != nil {
		api.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadImage accepts a multipart image, stores it and attaches its URL to
// the item.
func (h *MenuHandler) uploadImage(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		api.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		api.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.menu.UploadImage(r.Context(), scope, id, header.Filename, file)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, struct {
		ImageURL string `json:"image_url"`
	}{ImageURL: url})
}
