package services

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stockdash/stockdash/internal/fmp"
	"github.com/stockdash/stockdash/internal/models"
)

// MarketData is the slice of the quote adapter the refresh job consumes.
type MarketData interface {
	GetTopGainers(ctx context.Context) []fmp.Quote
	GetTopLosers(ctx context.Context) []fmp.Quote
	GetMarketIndices(ctx context.Context) []fmp.IndexQuote
}

// StockWriter is the write surface for cached stocks.
type StockWriter interface {
	Upsert(ctx context.Context, s *models.Stock) error
}

// IndexWriter is the write surface for market indices.
type IndexWriter interface {
	Upsert(ctx context.Context, idx *models.Index) error
}

// RefreshService pulls live movers and index quotes from the provider and
// upserts them into the cached tables the read API serves from. A degraded
// provider refreshes nothing; a degraded store drops the writes with a
// warning. Neither is an error.
type RefreshService struct {
	provider MarketData
	stocks   StockWriter
	indices  IndexWriter
}

// NewRefreshService creates a new RefreshService
func NewRefreshService(provider MarketData, stocks StockWriter, indices IndexWriter) *RefreshService {
	return &RefreshService{
		provider: provider,
		stocks:   stocks,
		indices:  indices,
	}
}

// RefreshMarketData fetches gainers, losers and indices concurrently, then
// upserts each row. Per-row write failures are logged and skipped so one bad
// row cannot abort the batch.
func (s *RefreshService) RefreshMarketData(ctx context.Context) (*models.RefreshSummary, error) {
	var gainers, losers []fmp.Quote
	var indices []fmp.IndexQuote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		gainers = s.provider.GetTopGainers(gctx)
		return nil
	})
	g.Go(func() error {
		losers = s.provider.GetTopLosers(gctx)
		return nil
	})
	g.Go(func() error {
		indices = s.provider.GetMarketIndices(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.RefreshSummary{}

	for _, q := range DedupeQuotes(append(gainers, losers...)) {
		stock := quoteToStock(q)
		if err := s.stocks.Upsert(ctx, stock); err != nil {
			log.Errorf("refresh: failed to upsert stock %s: %v", q.Symbol, err)
			continue
		}
		summary.StocksUpserted++
	}

	for _, iq := range indices {
		index := &models.Index{
			Symbol:        iq.Symbol,
			Name:          iq.Name,
			Value:         models.NewMoney(iq.Value),
			Change:        models.NewMoney(iq.Change),
			ChangePercent: models.NewMoney(iq.ChangePercent),
		}
		if err := s.indices.Upsert(ctx, index); err != nil {
			log.Errorf("refresh: failed to upsert index %s: %v", iq.Symbol, err)
			continue
		}
		summary.IndicesUpserted++
	}

	log.Infof("refresh: upserted %d stocks, %d indices", summary.StocksUpserted, summary.IndicesUpserted)
	return summary, nil
}

// quoteToStock maps a provider quote onto the cached stock row shape. The
// mapping is exhaustive over the columns we store; numeric fields the
// provider omits decode as decimal zero.
func quoteToStock(q fmp.Quote) *models.Stock {
	volume := strconv.FormatInt(q.Volume, 10)
	marketCap := strconv.FormatInt(q.MarketCap, 10)

	return &models.Stock{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         models.NewMoney(q.Price),
		Change:        models.NewMoney(q.Change),
		ChangePercent: models.NewMoney(q.ChangesPercentage),
		Volume:        &volume,
		MarketCap:     &marketCap,
		PERatio:       models.NullMoney{NullDecimal: decimal.NullDecimal{Decimal: q.PE, Valid: true}},
	}
}
