package services

import (
	"context"
	"fmt"

	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/repository"
)

// WatchlistStore is the persistence surface for per-user watchlists.
type WatchlistStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error)
	Add(ctx context.Context, userID, stockID int64) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID, stockID int64) error
}

// WatchlistService enforces per-user ownership of watchlist rows. Every
// operation takes the authenticated caller's user id; there is no cross-user
// capability.
type WatchlistService struct {
	store WatchlistStore
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(store WatchlistStore) *WatchlistService {
	return &WatchlistService{store: store}
}

// List returns the caller's watchlist entries joined with their stocks,
// oldest first.
func (s *WatchlistService) List(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	items, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return items, nil
}

// Add puts stockID on the caller's watchlist. Idempotent: adding a pair that
// is already present returns the existing entry. Referencing a stock that
// does not exist fails with repository.ErrStockNotFound.
func (s *WatchlistService) Add(ctx context.Context, userID, stockID int64) (*models.WatchlistEntry, error) {
	entry, err := s.store.Add(ctx, userID, stockID)
	if err != nil {
		if err == repository.ErrStockNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	return entry, nil
}

// Remove drops (userID, stockID) from the watchlist. Removing an absent pair
// is a no-op; other users' entries for the same stock are never affected.
func (s *WatchlistService) Remove(ctx context.Context, userID, stockID int64) error {
	if err := s.store.Remove(ctx, userID, stockID); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}
