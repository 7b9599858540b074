package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

// CartEntryStore is the slice of the repository the cart handler
// needs. Bulk deletion is missing on purpose: only the settlement
// service may remove entries in bulk.
type CartEntryStore interface {
	ListCartByEmail(ctx context.Context, email string) ([]*model.CartItem, error)
	InsertCartItem(ctx context.Context, item *model.CartItem) error
	DeleteCartItem(ctx context.Context, id string) error
}

// CartHandler handles per-user cart operations.
type CartHandler struct {
	store  CartEntryStore
	logger *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store CartEntryStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{store: store, logger: logger}
}

// List handles GET /carts?email=... (authenticated, self-match).
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "email query parameter is required")
		return
	}

	items, err := h.store.ListCartByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("cart list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not list cart")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /carts (authenticated).
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Email == "" || req.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "email and menu_item_id are required")
		return
	}

	item := &model.CartItem{
		Email:      req.Email,
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price.Float64(),
	}

	if err := h.store.InsertCartItem(r.Context(), item); err != nil {
		h.logger.Error("cart insert failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not add cart item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Remove handles DELETE /carts/{id} (authenticated).
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteCartItem(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCartItemNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Cart item not found")
		case errors.Is(err, repository.ErrInvalidID):
			writeError(w, http.StatusBadRequest, "VALIDATION", "Invalid cart item ID")
		default:
			h.logger.Error("cart delete failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not remove cart item")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
