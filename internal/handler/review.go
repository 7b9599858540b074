package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/model"
)

// ReviewStore is the slice of the repository the review handler needs.
type ReviewStore interface {
	ListReviews(ctx context.Context) ([]*model.Review, error)
	InsertReview(ctx context.Context, review *model.Review) error
}

// ReviewHandler handles review pass-through operations.
type ReviewHandler struct {
	store  ReviewStore
	logger *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(store ReviewStore, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{store: store, logger: logger}
}

// List handles GET /reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.store.ListReviews(r.Context())
	if err != nil {
		h.logger.Error("review list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not list reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Create handles POST /reviews (authenticated).
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	review := &model.Review{
		Name:    req.Name,
		Details: req.Details,
		Rating:  req.Rating,
	}

	if err := h.store.InsertReview(r.Context(), review); err != nil {
		h.logger.Error("review insert failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not store review")
		return
	}

	writeJSON(w, http.StatusCreated, review)
}
