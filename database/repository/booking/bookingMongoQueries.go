package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"shopspotlight/models"

	"go.mongodb.org/mongo-driver/bson"
)

// listPipeline builds the aggregation joining shop and customer display
// fields onto each booking, newest first.
func listPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$sort": bson.M{"created_at": -1}},
		{"$lookup": bson.M{
			"from":         "shops",
			"localField":   "shop_id",
			"foreignField": "id",
			"as":           "shop_doc",
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "customer_id",
			"foreignField": "id",
			"as":           "customer_doc",
		}},
		{"$addFields": bson.M{
			"shop": bson.M{
				"name":  bson.M{"$first": "$shop_doc.name"},
				"phone": bson.M{"$first": "$shop_doc.phone"},
			},
			"customer": bson.M{
				"name":  bson.M{"$first": "$customer_doc.name"},
				"phone": bson.M{"$first": "$customer_doc.phone"},
			},
		}},
		{"$project": bson.M{"shop_doc": 0, "customer_doc": 0}},
	}
}

func (r *MongoBookingRepo) list(ctx context.Context, match bson.M) ([]models.BookingView, error) {
	cursor, err := r.coll.Aggregate(ctx, listPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)
	var views []models.BookingView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return views, nil
}

func (r *MongoBookingRepo) ListForCustomer(customerID string) ([]models.BookingView, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *MongoBookingRepo) ListForShops(shopIDs []string) ([]models.BookingView, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	if len(shopIDs) == 0 {
		return []models.BookingView{}, nil
	}
	return r.list(ctx, bson.M{"shop_id": bson.M{"$in": shopIDs}})
}
