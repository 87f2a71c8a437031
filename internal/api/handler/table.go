package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

// TableHandler handles floor-plan requests
type TableHandler struct {
	layout *service.LayoutService
	qr     service.TableQRGenerator
	scopes *service.ScopeResolver
}

// NewTableHandler creates a new table handler
func NewTableHandler(layout *service.LayoutService, qr service.TableQRGenerator, scopes *service.ScopeResolver) *TableHandler {
	return &TableHandler{layout: layout, qr: qr, scopes: scopes}
}

// HandleTables handles requests under /tables
func (h *TableHandler) HandleTables(w http.ResponseWriter, r *http.Request) {
	scope, err := resolveScope(r, h.scopes)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/tables")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.listTables(w, r, scope)
		return

	case "generate":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.generateTables(w, r, scope)
		return

	case "layout":
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		h.saveLayout(w, r, scope)
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		api.BadRequest(w, "invalid table id")
		return
	}

	if len(parts) == 2 && parts[1] == "qr" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.tableQR(w, r, scope, id)
		return
	}
	if len(parts) > 1 {
		api.BadRequest(w, "invalid path")
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	h.getTable(w, r, scope, id)
}

func (h *TableHandler) listTables(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	tables, err := h.layout.ListTables(r.Context(), scope)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	views := make([]models.TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, t.View())
	}
	api.WriteJSON(w, http.StatusOK, views)
}

func (h *TableHandler) getTable(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	table, err := h.layout.GetTable(r.Context(), scope, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, table.View())
}

func (h *TableHandler) generateTables(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	var req models.GenerateTablesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	tables, err := h.layout.GenerateTables(r.Context(), scope, req.Count)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	views := make([]models.TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, t.View())
	}
	api.WriteJSON(w, http.StatusCreated, views)
}

func (h *TableHandler) saveLayout(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	var req models.LayoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	tables, err := h.layout.SavePositions(r.Context(), scope, req.Tables)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	views := make([]models.TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, t.View())
	}
	api.WriteJSON(w, http.StatusOK, views)
}

func (h *TableHandler) tableQR(w http.ResponseWriter, r *http.Request, scope models.Scope, id uuid.UUID) {
	// Confirm the table exists in this scope before rendering anything.
	table, err := h.layout.GetTable(r.Context(), scope, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	png, err := h.qr.Generate(scope.RestaurantID, table.ID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
