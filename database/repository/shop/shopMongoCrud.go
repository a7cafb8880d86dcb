package shopRepo

import (
	"fmt"
	"time"

	"shopspotlight/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new shop document.
func (r *MongoShopRepo) Create(shop *models.Shop) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, shop); err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

// UpdateFields patches a shop document with the specified fields.
func (r *MongoShopRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	update := bson.M{"$set": fields}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update shop with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("shop with id %s not found", id)
	}
	return nil
}

// ReplaceServices writes the full services sequence as one conditional write,
// guarded by the document version read by the caller.
func (r *MongoShopRepo) ReplaceServices(id string, services []models.ServiceEntry, expectedVersion int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"services": services, "updated_at": time.Now()},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace services for shop %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("shop %s: %w", id, ErrVersionConflict)
	}
	return nil
}

// Delete removes a shop document by its ID.
func (r *MongoShopRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shop with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("shop with id %s not found", id)
	}
	return nil
}
