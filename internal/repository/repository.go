// Package repository provides document store access.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the application database.
const (
	usersCollection    = "users"
	menuCollection     = "menu"
	reviewsCollection  = "reviews"
	cartsCollection    = "carts"
	paymentsCollection = "payments"
)

// Repository provides document store access methods.
type Repository struct {
	client   *mongo.Client
	users    *mongo.Collection
	menu     *mongo.Collection
	reviews  *mongo.Collection
	carts    *mongo.Collection
	payments *mongo.Collection
}

// New connects to the document store and returns a Repository.
func New(ctx context.Context, uri, database string) (*Repository, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	db := client.Database(database)
	return &Repository{
		client:   client,
		users:    db.Collection(usersCollection),
		menu:     db.Collection(menuCollection),
		reviews:  db.Collection(reviewsCollection),
		carts:    db.Collection(cartsCollection),
		payments: db.Collection(paymentsCollection),
	}, nil
}

// Ping checks document store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close disconnects from the document store.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
