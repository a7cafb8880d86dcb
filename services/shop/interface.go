package shop

import "shopspotlight/models"

// CreateRequest carries the fields of a new shop profile.
type CreateRequest struct {
	Name        string
	Address     string
	Description string
	Phone       string
	PhotoURL    string
	Latitude    *float64
	Longitude   *float64
}

// ProfileUpdate patches the shop's descriptive fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name        *string
	Address     *string
	Description *string
	Phone       *string
	PhotoURL    *string
}

// ServiceInput carries the editable fields of a catalog entry.
type ServiceInput struct {
	Name        string
	Price       float64
	Description string
}

// Service manages shop profiles and their service catalogs.
type Service interface {
	// Create registers the owner's shop. An owner who already has a shop is
	// rejected.
	Create(ownerID string, req CreateRequest) (*models.Shop, error)
	// GetByID returns one shop.
	GetByID(id string) (*models.Shop, error)
	// GetByOwner returns the owner's shop, or nil without error when none
	// exists yet.
	GetByOwner(ownerID string) (*models.Shop, error)
	// UpdateStatus sets the shop's occupancy status.
	UpdateStatus(ownerID string, status models.ShopStatus) error
	// UpdateProfile patches the shop's descriptive fields.
	UpdateProfile(ownerID string, update ProfileUpdate) error
	// UpdateLocation sets or clears the shop's coordinates. Coordinates are
	// set and cleared as a pair.
	UpdateLocation(ownerID string, lat, lng *float64) error
	// AddService appends a catalog entry and returns it with its assigned ID.
	AddService(ownerID string, input ServiceInput) (*models.ServiceEntry, error)
	// UpdateService edits the entry with the given ID in place.
	UpdateService(ownerID, serviceID string, input ServiceInput) error
	// RemoveService deletes the entry with the given ID; remaining entries
	// keep their order.
	RemoveService(ownerID, serviceID string) error
}
