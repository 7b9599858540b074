package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/handler/dto"
	"github.com/bistroboss/bistroboss/internal/service"
)

// PaymentHandler exposes the settlement flow.
type PaymentHandler struct {
	svc    *service.Settlement
	logger *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.Settlement, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

// CreateIntent handles POST /create-payment-intent (authenticated).
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	secret, err := h.svc.CreatePaymentIntent(r.Context(), req.Price.Float64())
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, "VALIDATION", "price must be positive")
			return
		}
		h.logger.Error("payment intent failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "GATEWAY", "Could not create payment intent")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreateIntentResponse{ClientSecret: secret})
}

// Record handles POST /payments (authenticated). The response reports
// both settlement outcomes: the ledger entry and the cart delete
// count, so the caller can detect partial application.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.RecordPayment(r.Context(), service.RecordPaymentInput{
		Email:       req.Email,
		Price:       req.Price.Float64(),
		CartItemIDs: req.CartItemIDs,
		MenuItemIDs: req.MenuItemIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCartItems):
			writeError(w, http.StatusBadRequest, "VALIDATION", "cartItems must not be empty")
		case errors.Is(err, service.ErrPaymentNotRecorded):
			h.logger.Error("payment not recorded", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not record payment")
		default:
			h.logger.Error("settlement failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Settlement failed")
		}
		return
	}

	h.logger.Info("payment settled",
		slog.String("payment_id", result.Payment.ID),
		slog.String("email", result.Payment.Email),
		slog.Int64("deleted_count", result.DeletedCount),
		slog.Bool("reconciled", result.ReconcileErr == nil),
	)

	writeJSON(w, http.StatusCreated, dto.RecordPaymentResponse{
		PaymentID:    result.Payment.ID,
		DeletedCount: result.DeletedCount,
		Reconciled:   result.ReconcileErr == nil,
	})
}

// History handles GET /payments/{email} (authenticated, self-match).
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	payments, err := h.svc.PaymentHistory(r.Context(), email)
	if err != nil {
		h.logger.Error("payment history failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not load payment history")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
