package models

import "time"

// ShopStatus is the coarse self-reported occupancy signal a shop broadcasts.
type ShopStatus string

const (
	StatusOpen   ShopStatus = "open"
	StatusMild   ShopStatus = "mild"
	StatusBusy   ShopStatus = "busy"
	StatusClosed ShopStatus = "closed"
)

// Valid reports whether s is one of the known shop statuses.
func (s ShopStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusMild, StatusBusy, StatusClosed:
		return true
	}
	return false
}

// ServiceEntry is one service a shop offers. Entries carry a stable ID so
// catalog mutations can address them without relying on array position.
// Insertion order is display order; duplicate names are permitted.
type ServiceEntry struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// Shop is a single shop profile. At most one shop exists per owner.
// Latitude and Longitude are either both set or both nil.
type Shop struct {
	ID          string         `bson:"id" json:"id"`
	OwnerID     string         `bson:"owner_id" json:"owner_id"`
	Name        string         `bson:"name" json:"name"`
	Address     string         `bson:"address" json:"address"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Status      ShopStatus     `bson:"status" json:"status"`
	Services    []ServiceEntry `bson:"services" json:"services"`
	Phone       string         `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL    string         `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Latitude    *float64       `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64       `bson:"longitude,omitempty" json:"longitude,omitempty"`

	// Version guards catalog writes: every services replacement is conditional
	// on the version read, and bumps it.
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasCoordinates reports whether the shop carries a usable coordinate pair.
func (s *Shop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// ServiceByName returns the first catalog entry matching name.
func (s *Shop) ServiceByName(name string) (ServiceEntry, bool) {
	for _, svc := range s.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceEntry{}, false
}
