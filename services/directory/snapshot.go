package directory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	shopRepo "shopspotlight/database/repository/shop"
	"shopspotlight/models"
	"shopspotlight/realtime"
	"shopspotlight/utils"

	"go.uber.org/zap"
)

// Snapshot mirrors the shops collection in memory, ordered by creation time
// descending as the store returns it. It refetches the whole collection
// whenever any shop changes; a generation counter discards stale in-flight
// refetches superseded by a newer one.
type Snapshot struct {
	repo shopRepo.ShopRepository
	hub  realtime.Hub

	mu    sync.RWMutex
	shops []models.Shop

	// generation is bumped at the start of every refetch; a finished refetch
	// only applies if no newer one has started since.
	generation uint64
	cancel     func()
}

// NewSnapshot performs the initial fetch and subscribes to shop changes.
func NewSnapshot(ctx context.Context, repo shopRepo.ShopRepository, hub realtime.Hub) (*Snapshot, error) {
	s := &Snapshot{repo: repo, hub: hub}
	if err := s.Refresh(); err != nil {
		return nil, err
	}

	events, cancel, err := hub.Subscribe(ctx, realtime.CollectionShops)
	if err != nil {
		return nil, fmt.Errorf("failed to watch shop changes: %w", err)
	}
	s.cancel = cancel

	go func() {
		logger := utils.GetLogger()
		for range events {
			// Any row change triggers a full refetch, regardless of which
			// shop changed.
			if err := s.Refresh(); err != nil {
				logger.Warn("Directory refetch after change event failed", zap.Error(err))
			}
		}
	}()

	return s, nil
}

// Refresh refetches the full shop collection. A failed refetch keeps the
// previous snapshot; a refetch superseded by a newer one is discarded.
func (s *Snapshot) Refresh() error {
	gen := atomic.AddUint64(&s.generation, 1)

	shops, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to refresh shop directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadUint64(&s.generation) != gen {
		// A newer refetch started while this one was in flight.
		return nil
	}
	s.shops = shops
	return nil
}

// Shops returns the current snapshot. The slice must not be mutated.
func (s *Snapshot) Shops() []models.Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shops
}

// Close tears down the change subscription.
func (s *Snapshot) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
