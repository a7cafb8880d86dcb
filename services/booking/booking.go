package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "shopspotlight/database/repository/booking"
	shopRepo "shopspotlight/database/repository/shop"
	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	ShopRepo shopRepo.ShopRepository
	Hub      realtime.Hub
}

// Create validates the request against the target shop's current catalog and
// the date lower bound, then inserts a pending booking. No partial state is
// left behind on failure.
func (s *DefaultBookingService) Create(customerID string, req CreateRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, newValidationError("a service must be selected")
	}
	if req.PreferredTime.IsZero() {
		return nil, newValidationError("a preferred date and time must be selected")
	}
	// The lower bound is the start of the current day; time of day is
	// unconstrained.
	today := time.Now().Truncate(24 * time.Hour)
	if req.PreferredTime.Before(today) {
		return nil, newValidationError("preferred time cannot be in the past")
	}

	shop, err := s.ShopRepo.GetByID(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop for booking: %w", err)
	}
	if _, ok := shop.ServiceByName(req.ServiceName); !ok {
		return nil, newValidationError("shop does not offer service %q", req.ServiceName)
	}

	now := time.Now()
	b := &models.Booking{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		ShopID:        req.ShopID,
		ServiceName:   req.ServiceName,
		PreferredTime: req.PreferredTime,
		Status:        models.BookingPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(realtime.ActionInsert, b.ID, now)
	logger.Info("Booking request created",
		zap.String("bookingID", b.ID), zap.String("shopID", b.ShopID))
	return b, nil
}

// Transition applies a role-gated status change. Only the owning shop's owner
// may confirm or cancel a pending booking, or complete a confirmed one.
func (s *DefaultBookingService) Transition(bookingID string, next models.BookingStatus, actor Actor) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if b.Status.Terminal() {
		return nil, newTransitionError("booking is already %s", b.Status)
	}
	if !CanTransition(b.Status, next) {
		return nil, newTransitionError("cannot move booking from %s to %s", b.Status, next)
	}

	if actor.Role != models.RoleShopOwner {
		return nil, newTransitionError("only the shop owner may update a booking")
	}
	shop, err := s.ShopRepo.GetByID(b.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop for booking: %w", err)
	}
	if shop.OwnerID != actor.UserID {
		return nil, newTransitionError("booking belongs to another shop")
	}

	if err := s.Repo.UpdateStatus(bookingID, next); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	now := time.Now()
	b.Status = next
	b.UpdatedAt = now
	s.publish(realtime.ActionUpdate, b.ID, now)
	logger.Info("Booking status updated",
		zap.String("bookingID", b.ID), zap.String("status", string(next)))
	return b, nil
}

// ListFor returns the bookings visible to the actor, newest first, with the
// shop and customer contact cards joined in at read time.
func (s *DefaultBookingService) ListFor(actor Actor) ([]models.BookingView, error) {
	if actor.Role == models.RoleShopOwner {
		shop, err := s.ShopRepo.GetByOwner(actor.UserID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// An owner without a shop simply has no bookings yet.
				return []models.BookingView{}, nil
			}
			return nil, fmt.Errorf("failed to resolve owner's shop: %w", err)
		}
		return s.Repo.ListForShops([]string{shop.ID})
	}
	return s.Repo.ListForCustomer(actor.UserID)
}

func (s *DefaultBookingService) publish(action realtime.Action, rowID string, at time.Time) {
	if s.Hub == nil {
		return
	}
	ev := realtime.Event{
		Collection: realtime.CollectionBookings,
		Action:     action,
		RowID:      rowID,
		OccurredAt: at,
	}
	if err := s.Hub.Publish(context.Background(), ev); err != nil {
		utils.GetLogger().Warn("Failed to publish booking change", zap.Error(err))
	}
}
