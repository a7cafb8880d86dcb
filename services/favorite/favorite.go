package favorite

import (
	"context"
	"fmt"
	"time"

	favoriteRepo "shopspotlight/database/repository/favorite"
	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"go.uber.org/zap"
)

// Service manages a customer's saved shops.
type Service interface {
	// Add saves the shop; adding an already saved shop returns
	// favoriteRepo.ErrDuplicate.
	Add(customerID, shopID string) error
	// Remove unsaves the shop. Removing an unsaved shop is a no-op.
	Remove(customerID, shopID string) error
	// List returns the customer's favorites with shop documents joined in,
	// newest first.
	List(customerID string) ([]models.FavoriteView, error)
}

// DefaultFavoriteService implements Service.
type DefaultFavoriteService struct {
	Repo favoriteRepo.FavoriteRepository
	Hub  realtime.Hub
}

func (s *DefaultFavoriteService) Add(customerID, shopID string) error {
	fav := &models.Favorite{
		CustomerID: customerID,
		ShopID:     shopID,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Add(fav); err != nil {
		return err
	}
	s.publish(realtime.ActionInsert, shopID)
	utils.GetLogger().Info("Favorite added",
		zap.String("customerID", customerID), zap.String("shopID", shopID))
	return nil
}

func (s *DefaultFavoriteService) Remove(customerID, shopID string) error {
	if err := s.Repo.Remove(customerID, shopID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	s.publish(realtime.ActionDelete, shopID)
	return nil
}

func (s *DefaultFavoriteService) List(customerID string) ([]models.FavoriteView, error) {
	return s.Repo.ListForCustomer(customerID)
}

func (s *DefaultFavoriteService) publish(action realtime.Action, rowID string) {
	if s.Hub == nil {
		return
	}
	ev := realtime.Event{
		Collection: realtime.CollectionFavorites,
		Action:     action,
		RowID:      rowID,
		OccurredAt: time.Now(),
	}
	if err := s.Hub.Publish(context.Background(), ev); err != nil {
		utils.GetLogger().Warn("Failed to publish favorite change", zap.Error(err))
	}
}
