package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistroboss/internal/model"
)

// ErrMenuItemNotFound is returned when a menu item does not exist.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuFilter defines filters for listing menu items.
// Page is 1-based; skip = (page-1)*limit. Zero values disable paging.
type MenuFilter struct {
	Category string
	Page     int
	Limit    int
}

// ListMenu retrieves menu items matching the filter.
func (r *Repository) ListMenu(ctx context.Context, filter MenuFilter) ([]*model.MenuItem, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
		}
	}

	cursor, err := r.menu.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem retrieves a single menu item by ID.
func (r *Repository) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var item model.MenuItem
	if err := r.menu.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

// InsertMenuItem adds a new item to the catalog.
func (r *Repository) InsertMenuItem(ctx context.Context, item *model.MenuItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.menu.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem updates the mutable fields of a catalog item.
func (r *Repository) UpdateMenuItem(ctx context.Context, id string, item *model.MenuItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"name":     item.Name,
		"recipe":   item.Recipe,
		"image":    item.Image,
		"category": item.Category,
		"price":    item.Price,
	}}

	result, err := r.menu.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// DeleteMenuItem removes an item from the catalog.
func (r *Repository) DeleteMenuItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.menu.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// EstimatedMenuCount returns the estimated number of catalog items.
func (r *Repository) EstimatedMenuCount(ctx context.Context) (int64, error) {
	count, err := r.menu.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

// ListReviews returns all reviews.
func (r *Repository) ListReviews(ctx context.Context) ([]*model.Review, error) {
	cursor, err := r.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// InsertReview stores a new review.
func (r *Repository) InsertReview(ctx context.Context, review *model.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}
