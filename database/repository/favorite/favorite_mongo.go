package favoriteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopspotlight/database"
	"shopspotlight/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicate is returned when the (customer, shop) pair is already saved.
var ErrDuplicate = errors.New("shop already in favorites")

// FavoriteRepository defines methods for favorite data access.
type FavoriteRepository interface {
	// Add saves the (customer, shop) pair; ErrDuplicate when already present.
	Add(fav *models.Favorite) error
	// Remove deletes the pair. Removing an absent pair is not an error.
	Remove(customerID, shopID string) error
	// ListForCustomer returns the customer's favorites with shop documents
	// joined in, newest first.
	ListForCustomer(customerID string) ([]models.FavoriteView, error)
}

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo creates a new instance of FavoriteRepository using MongoDB.
func NewMongoFavoriteRepo() FavoriteRepository {
	coll := database.DB().Collection("favorites")
	return &MongoFavoriteRepo{coll: coll}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoFavoriteRepo) Add(fav *models.Favorite) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, fav); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *MongoFavoriteRepo) Remove(customerID, shopID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{"customer_id": customerID, "shop_id": shopID}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *MongoFavoriteRepo) ListForCustomer(customerID string) ([]models.FavoriteView, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"customer_id": customerID}},
		{"$sort": bson.M{"created_at": -1}},
		{"$lookup": bson.M{
			"from":         "shops",
			"localField":   "shop_id",
			"foreignField": "id",
			"as":           "shop_doc",
		}},
		{"$unwind": "$shop_doc"},
		{"$addFields": bson.M{"shop": "$shop_doc"}},
		{"$project": bson.M{"shop_doc": 0}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer cursor.Close(ctx)
	var views []models.FavoriteView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return views, nil
}

// EnsureIndexes enforces the composite identity of a favorite.
func (r *MongoFavoriteRepo) EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "shop_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create favorite indexes: %w", err)
	}
	return nil
}
