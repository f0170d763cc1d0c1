package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/stockroom/internal/importer"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// ItemsHandler handles catalog endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// updateItemRequest is a direct edit. ExpectedAvailable, when sent, is the
// quantity_available the client last saw.
type updateItemRequest struct {
	model.ItemFields
	ExpectedAvailable *int `json:"expected_available"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// cleanFields trims manual input and fills the same defaults an import
// would, so both entry paths produce comparable items.
func cleanFields(f model.ItemFields) model.ItemFields {
	f.SKU = strings.TrimSpace(f.SKU)
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	f.Location = strings.TrimSpace(f.Location)
	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	f.Notes = strings.TrimSpace(f.Notes)

	if f.Category == "" {
		f.Category = importer.DefaultCategory
	}
	if f.Location == "" {
		f.Location = importer.DefaultLocation
	}
	if f.Type == "" {
		f.Type = model.ItemTypeConsumable
	}
	return f
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// LowStock handles GET /api/items/low-stock.
func (h *ItemsHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListLowStockItems(r.Context(), h.DB)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemFields
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, cleanFields(req))
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("item created", "item", item.SKU, "by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetBySKU handles GET /api/items/sku/{sku}, the barcode lookup.
func (h *ItemsHandler) GetBySKU(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItemBySKU(r.Context(), h.DB, strings.TrimSpace(r.PathValue("sku")))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, r.PathValue("id"), cleanFields(req.ItemFields), req.ExpectedAvailable)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("item updated", "item", item.SKU, "by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("item deleted", "id", id, "by", GetClaims(r.Context()).Username)
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete handles POST /api/items/delete.
func (h *ItemsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		jsonError(w, http.StatusBadRequest, "ids required")
		return
	}

	n, err := store.DeleteItems(r.Context(), h.DB, req.IDs)
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("items deleted", "count", n, "by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, map[string]int64{"deleted": n})
}
