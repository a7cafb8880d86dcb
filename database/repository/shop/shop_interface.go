package shopRepo

import (
	"shopspotlight/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ShopRepository defines methods for shop data access.
type ShopRepository interface {
	// GetByID retrieves a shop by its unique ID.
	GetByID(id string) (*models.Shop, error)
	// GetByOwner retrieves the shop owned by ownerID. When the owner has no
	// shop the returned error wraps mongo.ErrNoDocuments, which callers treat
	// as a normal empty state rather than a failure.
	GetByOwner(ownerID string) (*models.Shop, error)
	// GetAll retrieves every shop ordered by creation time, newest first.
	GetAll() ([]models.Shop, error)
	// GetByIDs retrieves the shops with the given IDs, newest first.
	GetByIDs(ids []string) ([]models.Shop, error)
	// Create inserts a new shop record.
	Create(shop *models.Shop) error
	// UpdateFields patches a shop document with the specified fields.
	UpdateFields(id string, fields bson.M) error
	// ReplaceServices writes the full services sequence conditional on the
	// version read; returns ErrVersionConflict when another session got there
	// first.
	ReplaceServices(id string, services []models.ServiceEntry, expectedVersion int64) error
	// Delete removes a shop record by its ID.
	Delete(id string) error
}
