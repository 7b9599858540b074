package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistroboss/internal/model"
)

// InsertPayment appends a payment record to the ledger.
// Records are write-once; nothing ever updates them.
func (r *Repository) InsertPayment(ctx context.Context, payment *model.Payment) error {
	if _, err := r.payments.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPaymentsByEmail returns the payment history for one payer,
// newest first.
func (r *Repository) ListPaymentsByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.payments.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []*model.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

// AllPayments returns every payment record in the ledger.
func (r *Repository) AllPayments(ctx context.Context) ([]*model.Payment, error) {
	cursor, err := r.payments.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []*model.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

// CountPayments returns the number of ledger entries.
func (r *Repository) CountPayments(ctx context.Context) (int64, error) {
	count, err := r.payments.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}
