package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistroboss/bistroboss/internal/model"
)

// ErrCartItemNotFound is returned when a cart entry does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

// ListCartByEmail returns all cart entries owned by the given email.
func (r *Repository) ListCartByEmail(ctx context.Context, email string) ([]*model.CartItem, error) {
	cursor, err := r.carts.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	return items, nil
}

// InsertCartItem adds an entry to a user's cart.
func (r *Repository) InsertCartItem(ctx context.Context, item *model.CartItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	if _, err := r.carts.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}
	return nil
}

// DeleteCartItem removes a single cart entry by ID.
func (r *Repository) DeleteCartItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.carts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// DeleteCartItems bulk-deletes the cart entries with the given IDs and
// returns how many were actually removed. Deleting an already-removed
// ID yields a smaller count, not an error; IDs that do not parse as
// object IDs are skipped for the same reason.
func (r *Repository) DeleteCartItems(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	result, err := r.carts.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart items: %w", err)
	}
	return result.DeletedCount, nil
}
