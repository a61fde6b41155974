package services

import (
	"context"
	"fmt"

	"github.com/stockdash/stockdash/internal/models"
)

// Default limits applied when a caller does not supply one, matching the API
// contract: movers and IPOs default to 10, search and news to 20.
const (
	DefaultMoversLimit = 10
	DefaultSearchLimit = 20
	DefaultNewsLimit   = 20
	DefaultIPOLimit    = 10
)

// StockStore is the read surface MarketService needs over cached stocks.
type StockStore interface {
	TopGainers(ctx context.Context, limit int) ([]models.Stock, error)
	TopLosers(ctx context.Context, limit int) ([]models.Stock, error)
	Search(ctx context.Context, query string, limit int) ([]models.Stock, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
}

// IndexStore is the read surface MarketService needs over market indices.
type IndexStore interface {
	GetAll(ctx context.Context) ([]models.Index, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Index, error)
}

// NewsStore is the read surface MarketService needs over cached news.
type NewsStore interface {
	Latest(ctx context.Context, limit int) ([]models.News, error)
}

// IPOStore is the read surface MarketService needs over tracked IPOs.
type IPOStore interface {
	ByStatus(ctx context.Context, status string, limit int) ([]models.IPO, error)
}

// MarketService shapes store output into the ranked and filtered views the
// API serves: movers, search, indices, news and IPO listings.
type MarketService struct {
	stocks  StockStore
	indices IndexStore
	news    NewsStore
	ipos    IPOStore
}

// NewMarketService creates a new MarketService
func NewMarketService(stocks StockStore, indices IndexStore, news NewsStore, ipos IPOStore) *MarketService {
	return &MarketService{
		stocks:  stocks,
		indices: indices,
		news:    news,
		ipos:    ipos,
	}
}

// TopGainers returns at most limit stocks ordered by percent change
// descending, stable on ties. A negative limit selects the default.
func (s *MarketService) TopGainers(ctx context.Context, limit int) ([]models.Stock, error) {
	if limit < 0 {
		limit = DefaultMoversLimit
	}
	stocks, err := s.stocks.TopGainers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top gainers: %w", err)
	}
	return stocks, nil
}

// TopLosers returns at most limit stocks ordered by percent change ascending.
func (s *MarketService) TopLosers(ctx context.Context, limit int) ([]models.Stock, error) {
	if limit < 0 {
		limit = DefaultMoversLimit
	}
	stocks, err := s.stocks.TopLosers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top losers: %w", err)
	}
	return stocks, nil
}

// Search returns at most limit stocks whose symbol or name contains query,
// case-insensitively.
func (s *MarketService) Search(ctx context.Context, query string, limit int) ([]models.Stock, error) {
	if limit < 0 {
		limit = DefaultSearchLimit
	}
	stocks, err := s.stocks.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search stocks: %w", err)
	}
	return stocks, nil
}

// GetStockBySymbol returns the cached stock for symbol, or nil when unknown.
func (s *MarketService) GetStockBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	stock, err := s.stocks.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	return stock, nil
}

// Indices returns every tracked market index.
func (s *MarketService) Indices(ctx context.Context) ([]models.Index, error) {
	indices, err := s.indices.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load indices: %w", err)
	}
	return indices, nil
}

// GetIndexBySymbol returns one tracked index, or nil when unknown.
func (s *MarketService) GetIndexBySymbol(ctx context.Context, symbol string) (*models.Index, error) {
	index, err := s.indices.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return index, nil
}

// LatestNews returns at most limit articles, newest first.
func (s *MarketService) LatestNews(ctx context.Context, limit int) ([]models.News, error) {
	if limit < 0 {
		limit = DefaultNewsLimit
	}
	news, err := s.news.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load news: %w", err)
	}
	return news, nil
}

// UpcomingIPOs returns at most limit upcoming offerings.
func (s *MarketService) UpcomingIPOs(ctx context.Context, limit int) ([]models.IPO, error) {
	return s.iposByStatus(ctx, models.IPOStatusUpcoming, limit)
}

// RecentIPOs returns at most limit recently completed offerings.
func (s *MarketService) RecentIPOs(ctx context.Context, limit int) ([]models.IPO, error) {
	return s.iposByStatus(ctx, models.IPOStatusRecent, limit)
}

func (s *MarketService) iposByStatus(ctx context.Context, status string, limit int) ([]models.IPO, error) {
	if limit < 0 {
		limit = DefaultIPOLimit
	}
	ipos, err := s.ipos.ByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s ipos: %w", status, err)
	}
	return ipos, nil
}
