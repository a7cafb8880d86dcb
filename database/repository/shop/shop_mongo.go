package shopRepo

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

// ErrVersionConflict is returned when a guarded services write lost the race
// against a concurrent session.
var ErrVersionConflict = errors.New("shop catalog version conflict")

// MongoShopRepo implements ShopRepository using MongoDB.
type MongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo creates a new instance of ShopRepository using MongoDB.
func NewMongoShopRepo() ShopRepository {
	coll := database.DB().Collection("shops")
	return &MongoShopRepo{coll: coll}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoShopRepo) GetByID(id string) (*models.Shop, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var shop models.Shop
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&shop); err != nil {
		return nil, fmt.Errorf("failed to fetch shop with id %s: %w", id, err)
	}
	return &shop, nil
}

func (r *MongoShopRepo) GetByOwner(ownerID string) (*models.Shop, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var shop models.Shop
	filter := bson.M{"owner_id": ownerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&shop); err != nil {
		return nil, fmt.Errorf("failed to fetch shop for owner %s: %w", ownerID, err)
	}
	return &shop, nil
}

func (r *MongoShopRepo) GetAll() ([]models.Shop, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shops: %w", err)
	}
	defer cursor.Close(ctx)
	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}

func (r *MongoShopRepo) GetByIDs(ids []string) ([]models.Shop, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	filter := bson.M{"id": bson.M{"$in": ids}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shops by ids: %w", err)
	}
	defer cursor.Close(ctx)
	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}
