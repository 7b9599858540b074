package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/metrics"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// MenuStore is the slice of the repository the menu handler needs.
type MenuStore interface {
	ListMenu(ctx context.Context, filter repository.MenuFilter) ([]*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	InsertMenuItem(ctx context.Context, item *model.MenuItem) error
	UpdateMenuItem(ctx context.Context, id string, item *model.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	EstimatedMenuCount(ctx context.Context) (int64, error)
}

// MenuHandler handles catalog reads and admin catalog management.
type MenuHandler struct {
	store   MenuStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, logger *slog.Logger, recorder metrics.Recorder) *MenuHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MenuHandler{store: store, logger: logger, metrics: recorder}
}

// List handles GET /menu. Optional ?page and ?limit paginate with
// skip = (page-1)*limit; without them the whole catalog is returned.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.MenuFilter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	items, err := h.store.ListMenu(r.Context(), filter)
	if err != nil {
		h.logger.Error("menu list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not list menu")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ByCategory handles GET /category?name=...&page=...&limit=...
func (h *MenuHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "name query parameter is required")
		return
	}

	filter := repository.MenuFilter{
		Category: name,
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	items, err := h.store.ListMenu(r.Context(), filter)
	if err != nil {
		h.logger.Error("category list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not list category")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Total handles GET /total. Response shape follows the original API:
// {"result": N}.
func (h *MenuHandler) Total(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.EstimatedMenuCount(r.Context())
	if err != nil {
		h.logger.Error("menu count failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not count menu")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"result": count})
}

// Get handles GET /menu/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.GetMenuItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /menu (admin only). A price posted as a numeric
// string is coerced to its float value before storage.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Name == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "name and category are required")
		return
	}

	item := &model.MenuItem{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price.Float64(),
	}

	if err := h.store.InsertMenuItem(r.Context(), item); err != nil {
		h.logger.Error("menu insert failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not insert menu item")
		return
	}

	h.metrics.IncMenuItemCreated()
	h.logger.Info("menu item created",
		slog.String("item_id", item.ID.Hex()),
		slog.String("category", item.Category),
	)
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /menu/{id} (admin only).
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	item := &model.MenuItem{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price.Float64(),
	}

	if err := h.store.UpdateMenuItem(r.Context(), id, item); err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.logger.Info("menu item updated", slog.String("item_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /menu/{id} (admin only).
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteMenuItem(r.Context(), id); err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.metrics.IncMenuItemDeleted()
	h.logger.Info("menu item deleted", slog.String("item_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleStoreError maps repository errors to HTTP responses.
func (h *MenuHandler) handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Menu item not found")
	case errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Invalid menu item ID")
	default:
		h.logger.Error("menu store error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Menu operation failed")
	}
}

// queryInt parses a positive integer query parameter; 0 means absent.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
