package services

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stockdash/stockdash/internal/fmp"
	"github.com/stockdash/stockdash/internal/models"
)

// MoverSource supplies the live candidate set the ad-hoc screener filters:
// the day's top gainers and losers.
type MoverSource interface {
	GetTopGainers(ctx context.Context) []fmp.Quote
	GetTopLosers(ctx context.Context) []fmp.Quote
}

// ScreenerStore is the persistence surface for saved screeners.
type ScreenerStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Screener, error)
	Create(ctx context.Context, userID int64, name string, description *string, filters string, isPublic bool) (*models.Screener, error)
	Delete(ctx context.Context, userID, screenerID int64) error
}

// ScreenerService runs ad-hoc screens over live mover quotes and manages
// saved screeners.
type ScreenerService struct {
	source    MoverSource
	screeners ScreenerStore
}

// NewScreenerService creates a new ScreenerService
func NewScreenerService(source MoverSource, screeners ScreenerStore) *ScreenerService {
	return &ScreenerService{
		source:    source,
		screeners: screeners,
	}
}

// Run fetches the candidate set (top gainers and losers, deduplicated by
// symbol with the first occurrence winning) and applies filters. An empty
// result is valid: a degraded provider simply yields no candidates.
func (s *ScreenerService) Run(ctx context.Context, filters models.ScreenerFilters) ([]fmp.Quote, error) {
	var gainers, losers []fmp.Quote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gainers = s.source.GetTopGainers(gctx)
		return nil
	})
	g.Go(func() error {
		losers = s.source.GetTopLosers(gctx)
		return nil
	})
	// The adapter never fails, it degrades; Wait only orders the writes.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := DedupeQuotes(append(gainers, losers...))
	return FilterQuotes(candidates, filters), nil
}

// DedupeQuotes removes duplicate symbols, keeping the first occurrence.
func DedupeQuotes(quotes []fmp.Quote) []fmp.Quote {
	seen := make(map[string]bool, len(quotes))
	result := make([]fmp.Quote, 0, len(quotes))
	for _, q := range quotes {
		if seen[q.Symbol] {
			continue
		}
		seen[q.Symbol] = true
		result = append(result, q)
	}
	return result
}

// FilterQuotes applies the optional closed-interval bounds in filters to the
// candidate set. A nil bound is unbounded; boundary values are inclusive.
// With no bounds set, the candidate set passes through unchanged.
func FilterQuotes(candidates []fmp.Quote, filters models.ScreenerFilters) []fmp.Quote {
	result := make([]fmp.Quote, 0, len(candidates))
	for _, q := range candidates {
		if filters.MinPrice != nil && q.Price.LessThan(*filters.MinPrice) {
			continue
		}
		if filters.MaxPrice != nil && q.Price.GreaterThan(*filters.MaxPrice) {
			continue
		}
		if filters.MinChangePercent != nil && q.ChangesPercentage.LessThan(*filters.MinChangePercent) {
			continue
		}
		if filters.MaxChangePercent != nil && q.ChangesPercentage.GreaterThan(*filters.MaxChangePercent) {
			continue
		}
		result = append(result, q)
	}
	return result
}

// ListSaved returns the user's saved screeners.
func (s *ScreenerService) ListSaved(ctx context.Context, userID int64) ([]models.Screener, error) {
	screeners, err := s.screeners.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list screeners: %w", err)
	}
	return screeners, nil
}

// CreateSaved stores a screener for the user, encoding the filter bounds as
// JSON.
func (s *ScreenerService) CreateSaved(ctx context.Context, userID int64, req *models.CreateScreenerRequest) (*models.Screener, error) {
	encoded, err := json.Marshal(req.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}

	screener, err := s.screeners.Create(ctx, userID, req.Name, req.Description, string(encoded), req.IsPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to create screener: %w", err)
	}
	return screener, nil
}

// DeleteSaved removes the user's screener by id; foreign or absent screeners
// are untouched.
func (s *ScreenerService) DeleteSaved(ctx context.Context, userID, screenerID int64) error {
	if err := s.screeners.Delete(ctx, userID, screenerID); err != nil {
		return fmt.Errorf("failed to delete screener: %w", err)
	}
	return nil
}
