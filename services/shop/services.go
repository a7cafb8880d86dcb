package shop

import (
	"errors"
	"fmt"
	"strings"
	"time"

	shopRepo "shopspotlight/database/repository/shop"
	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// catalogRetries bounds how often a catalog mutation is replayed after losing
// a version race to a concurrent editor.
const catalogRetries = 3

// AddService appends a new catalog entry, preserving the order of existing
// entries. Duplicate names are allowed; the entry's ID is what mutations
// address.
func (s *DefaultShopService) AddService(ownerID string, input ServiceInput) (*models.ServiceEntry, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	entry := models.ServiceEntry{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
	}
	err := s.mutateCatalog(ownerID, func(services []models.ServiceEntry) ([]models.ServiceEntry, error) {
		return append(services, entry), nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateService edits the entry with the given ID in place.
func (s *DefaultShopService) UpdateService(ownerID, serviceID string, input ServiceInput) error {
	if err := validateServiceInput(input); err != nil {
		return err
	}
	return s.mutateCatalog(ownerID, func(services []models.ServiceEntry) ([]models.ServiceEntry, error) {
		for i := range services {
			if services[i].ID == serviceID {
				services[i].Name = input.Name
				services[i].Price = input.Price
				services[i].Description = input.Description
				return services, nil
			}
		}
		return nil, newValidationError("service %s not found", serviceID)
	})
}

// RemoveService deletes the entry with the given ID. Remaining entries keep
// their relative order.
func (s *DefaultShopService) RemoveService(ownerID, serviceID string) error {
	return s.mutateCatalog(ownerID, func(services []models.ServiceEntry) ([]models.ServiceEntry, error) {
		for i := range services {
			if services[i].ID == serviceID {
				return append(services[:i], services[i+1:]...), nil
			}
		}
		return nil, newValidationError("service %s not found", serviceID)
	})
}

// mutateCatalog applies fn to a fresh read of the catalog and writes it back
// conditional on the version read, retrying the whole read-modify-write on a
// version conflict.
func (s *DefaultShopService) mutateCatalog(ownerID string, fn func([]models.ServiceEntry) ([]models.ServiceEntry, error)) error {
	var lastErr error
	for attempt := 0; attempt < catalogRetries; attempt++ {
		shop, err := s.requireShop(ownerID)
		if err != nil {
			return err
		}

		services := make([]models.ServiceEntry, len(shop.Services))
		copy(services, shop.Services)
		next, err := fn(services)
		if err != nil {
			return err
		}

		err = s.Repo.ReplaceServices(shop.ID, next, shop.Version)
		if err == nil {
			now := time.Now()
			s.publish(realtime.ActionUpdate, shop.ID, now)
			utils.GetLogger().Info("Shop catalog updated",
				zap.String("shopID", shop.ID), zap.Int("services", len(next)))
			return nil
		}
		if !errors.Is(err, shopRepo.ErrVersionConflict) {
			return fmt.Errorf("failed to write shop catalog: %w", err)
		}
		lastErr = err
	}
	return fmt.Errorf("shop catalog kept changing underneath the edit: %w", lastErr)
}

func validateServiceInput(input ServiceInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return newValidationError("service name is required")
	}
	if input.Price < 0 {
		return newValidationError("service price cannot be negative")
	}
	return nil
}
