package userRepo

import (
	"shopspotlight/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateFields patches a user document with the specified fields.
	UpdateFields(id string, fields bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
