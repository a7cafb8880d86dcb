package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	shopRepo "shopspotlight/database/repository/shop"
	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultShopService implements Service.
type DefaultShopService struct {
	Repo shopRepo.ShopRepository
	Hub  realtime.Hub
}

// Create registers a new shop for the owner. The unique owner index backs
// this check against concurrent creates.
func (s *DefaultShopService) Create(ownerID string, req CreateRequest) (*models.Shop, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Name) == "" {
		return nil, newValidationError("shop name is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, newValidationError("shop address is required")
	}
	if err := validateCoordinatePair(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByOwner(ownerID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing shop: %w", err)
	}
	if existing != nil {
		return nil, newValidationError("owner already has a shop")
	}

	now := time.Now()
	shop := &models.Shop{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Status:      models.StatusClosed,
		Services:    []models.ServiceEntry{},
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(shop); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, newValidationError("owner already has a shop")
		}
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	s.publish(realtime.ActionInsert, shop.ID, now)
	logger.Info("Shop created", zap.String("shopID", shop.ID), zap.String("ownerID", ownerID))
	return shop, nil
}

// GetByID returns one shop.
func (s *DefaultShopService) GetByID(id string) (*models.Shop, error) {
	return s.Repo.GetByID(id)
}

// GetByOwner returns the owner's shop, or nil when none exists.
func (s *DefaultShopService) GetByOwner(ownerID string) (*models.Shop, error) {
	shop, err := s.Repo.GetByOwner(ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load owner's shop: %w", err)
	}
	return shop, nil
}

// UpdateStatus flips the shop's occupancy status and broadcasts the change so
// every open directory converges on it.
func (s *DefaultShopService) UpdateStatus(ownerID string, status models.ShopStatus) error {
	if !status.Valid() {
		return newValidationError("unknown shop status %q", status)
	}
	shop, err := s.requireShop(ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	fields := bson.M{"status": status, "updated_at": now}
	if err := s.Repo.UpdateFields(shop.ID, fields); err != nil {
		return fmt.Errorf("failed to update shop status: %w", err)
	}

	s.publish(realtime.ActionUpdate, shop.ID, now)
	utils.GetLogger().Info("Shop status updated",
		zap.String("shopID", shop.ID), zap.String("status", string(status)))
	return nil
}

// UpdateProfile patches the shop's descriptive fields.
func (s *DefaultShopService) UpdateProfile(ownerID string, update ProfileUpdate) error {
	shop, err := s.requireShop(ownerID)
	if err != nil {
		return err
	}

	fields := bson.M{}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return newValidationError("shop name cannot be empty")
		}
		fields["name"] = *update.Name
	}
	if update.Address != nil {
		if strings.TrimSpace(*update.Address) == "" {
			return newValidationError("shop address cannot be empty")
		}
		fields["address"] = *update.Address
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.PhotoURL != nil {
		fields["photo_url"] = *update.PhotoURL
	}
	if len(fields) == 0 {
		return nil
	}

	now := time.Now()
	fields["updated_at"] = now
	if err := s.Repo.UpdateFields(shop.ID, fields); err != nil {
		return fmt.Errorf("failed to update shop profile: %w", err)
	}
	s.publish(realtime.ActionUpdate, shop.ID, now)
	return nil
}

// UpdateLocation sets or clears the shop's coordinate pair.
func (s *DefaultShopService) UpdateLocation(ownerID string, lat, lng *float64) error {
	if err := validateCoordinatePair(lat, lng); err != nil {
		return err
	}
	shop, err := s.requireShop(ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	fields := bson.M{"latitude": lat, "longitude": lng, "updated_at": now}
	if err := s.Repo.UpdateFields(shop.ID, fields); err != nil {
		return fmt.Errorf("failed to update shop location: %w", err)
	}
	s.publish(realtime.ActionUpdate, shop.ID, now)
	return nil
}

// requireShop loads the acting owner's shop, turning absence into a
// validation error.
func (s *DefaultShopService) requireShop(ownerID string) (*models.Shop, error) {
	shop, err := s.Repo.GetByOwner(ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newValidationError("owner has no shop")
		}
		return nil, fmt.Errorf("failed to load owner's shop: %w", err)
	}
	return shop, nil
}

func validateCoordinatePair(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return newValidationError("latitude and longitude must be set together")
	}
	if lat != nil {
		if *lat < -90 || *lat > 90 {
			return newValidationError("latitude out of range")
		}
		if *lng < -180 || *lng > 180 {
			return newValidationError("longitude out of range")
		}
	}
	return nil
}

func (s *DefaultShopService) publish(action realtime.Action, rowID string, at time.Time) {
	if s.Hub == nil {
		return
	}
	ev := realtime.Event{
		Collection: realtime.CollectionShops,
		Action:     action,
		RowID:      rowID,
		OccurredAt: at,
	}
	if err := s.Hub.Publish(context.Background(), ev); err != nil {
		utils.GetLogger().Warn("Failed to publish shop change", zap.Error(err))
	}
}
