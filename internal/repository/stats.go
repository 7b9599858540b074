package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistroboss/internal/model"
)

// OrderStats expands every payment's menu-item references into line
// items, joins each against the catalog and groups by category.
// References that no longer resolve in the catalog drop out of the
// join; that is the defined policy for deleted items, not an error.
func (r *Repository) OrderStats(ctx context.Context) ([]*model.CategoryStat, error) {
	cursor, err := r.payments.Aggregate(ctx, orderStatsPipeline(menuCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []*model.CategoryStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}

	for _, s := range stats {
		s.Category = model.CapitalizeCategory(s.Category)
	}
	return stats, nil
}

// orderStatsPipeline builds the aggregation run against the payments
// collection. Stages: unwind the menu-item references, join each
// against the menu catalog by converted object ID, unwind the join
// result (unresolvable references have an empty result and are dropped
// here), group by category and project the output shape.
func orderStatsPipeline(menuColl string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$menuItemIds"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: menuColl},
			{Key: "let", Value: bson.D{{Key: "itemId", Value: bson.D{
				{Key: "$convert", Value: bson.D{
					{Key: "input", Value: "$menuItemIds"},
					{Key: "to", Value: "objectId"},
					{Key: "onError", Value: nil},
				}},
			}}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{
						{Key: "$eq", Value: bson.A{"$_id", "$$itemId"}},
					}},
				}}},
			}},
			{Key: "as", Value: "menuItems"},
		}}},
		bson.D{{Key: "$unwind", Value: "$menuItems"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "revenue", Value: 1},
		}}},
	}
}
