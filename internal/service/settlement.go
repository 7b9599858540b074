// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bistroboss/bistroboss/internal/metrics"
	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/payments"
)

// Settlement errors.
var (
	ErrNoCartItems        = errors.New("payment references no cart items")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrPaymentNotRecorded = errors.New("payment could not be recorded")
)

// Checkout currency is fixed.
const settlementCurrency = "usd"

// PaymentStore is the slice of the repository the settlement needs for
// the ledger.
type PaymentStore interface {
	InsertPayment(ctx context.Context, payment *model.Payment) error
	ListPaymentsByEmail(ctx context.Context, email string) ([]*model.Payment, error)
}

// CartStore reconciles consumed cart entries.
type CartStore interface {
	DeleteCartItems(ctx context.Context, ids []string) (int64, error)
}

// Settlement records completed payments and reconciles the originating
// cart. It holds exclusive authority over bulk cart deletion.
type Settlement struct {
	payments PaymentStore
	carts    CartStore
	gateway  payments.Gateway
	logger   *slog.Logger
	metrics  metrics.Recorder
	newID    func() string
	now      func() time.Time
}

// NewSettlement creates a Settlement service.
func NewSettlement(paymentStore PaymentStore, cartStore CartStore, gateway payments.Gateway, logger *slog.Logger, recorder metrics.Recorder) *Settlement {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Settlement{
		payments: paymentStore,
		carts:    cartStore,
		gateway:  gateway,
		logger:   logger,
		metrics:  recorder,
		newID:    func() string { return ulid.Make().String() },
		now:      time.Now,
	}
}

// CreatePaymentIntent asks the gateway to register an intended payment
// and returns the client secret for completing it client-side. The
// price is converted to the gateway's minor-unit representation by
// multiplying by 100 and truncating.
func (s *Settlement) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", ErrInvalidAmount
	}

	minorUnits := int64(price * 100)
	secret, err := s.gateway.CreateIntent(ctx, minorUnits, settlementCurrency)
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}

	s.metrics.IncPaymentIntentCreated()
	return secret, nil
}

// RecordPaymentInput carries the client-posted payment record.
type RecordPaymentInput struct {
	Email       string
	Price       float64
	CartItemIDs []string
	MenuItemIDs []string
}

// SettlementResult reports both outcomes of a settlement so the caller
// can detect partial application.
type SettlementResult struct {
	Payment      *model.Payment
	DeletedCount int64
	// ReconcileErr is set when the payment was persisted but cart
	// deletion failed. The payment is never rolled back: the external
	// transaction has already settled by this point.
	ReconcileErr error
}

// RecordPayment appends the payment to the ledger, then deletes the
// cart entries that funded it. The two steps are not wrapped in a
// transaction: insert failure aborts before any deletion, while delete
// failure after a successful insert is surfaced in the result and the
// request still succeeds. A delete count smaller than the submitted ID
// list is not an error; already-removed entries simply do not count.
// Duplicate submissions are not deduplicated here.
func (s *Settlement) RecordPayment(ctx context.Context, input RecordPaymentInput) (*SettlementResult, error) {
	if len(input.CartItemIDs) == 0 {
		return nil, ErrNoCartItems
	}

	payment := &model.Payment{
		ID:          s.newID(),
		Email:       input.Email,
		Price:       input.Price,
		Date:        s.now().UTC(),
		CartItemIDs: input.CartItemIDs,
		MenuItemIDs: input.MenuItemIDs,
		Status:      model.PaymentSettled,
	}

	if err := s.payments.InsertPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotRecorded, err)
	}
	s.metrics.IncPaymentRecorded()

	result := &SettlementResult{Payment: payment}
	deleted, err := s.carts.DeleteCartItems(ctx, input.CartItemIDs)
	result.DeletedCount = deleted
	if err != nil {
		// Reconciliation gap: report it, keep the payment.
		result.ReconcileErr = err
		s.metrics.IncReconciliationGap()
		s.logger.Error("cart reconciliation failed after payment insert",
			slog.String("payment_id", payment.ID),
			slog.String("email", payment.Email),
			slog.String("error", err.Error()),
		)
		return result, nil
	}

	if deleted < int64(len(input.CartItemIDs)) {
		s.logger.Warn("cart reconciliation removed fewer entries than submitted",
			slog.String("payment_id", payment.ID),
			slog.Int("submitted", len(input.CartItemIDs)),
			slog.Int64("deleted", deleted),
		)
	}

	return result, nil
}

// PaymentHistory returns the payment ledger entries for one payer.
func (s *Settlement) PaymentHistory(ctx context.Context, email string) ([]*model.Payment, error) {
	return s.payments.ListPaymentsByEmail(ctx, email)
}
