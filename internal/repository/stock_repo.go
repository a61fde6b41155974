package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

// ErrStockNotFound is returned when an operation references a stock id that
// does not exist.
var ErrStockNotFound = errors.New("stock not found")

const stockColumns = `id, symbol, name, price, change, change_percent, volume, market_cap, pe_ratio, dividend_yield, last_updated, created_at`

// StockRepository handles database operations for cached stocks
type StockRepository struct {
	db *database.DB
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *database.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetBySymbol retrieves a stock by symbol. Absence is nil, not an error.
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + stockColumns + ` FROM stocks WHERE symbol = $1 LIMIT 1`
	s := &models.Stock{}
	err := pool.QueryRow(ctx, query, symbol).Scan(
		&s.ID, &s.Symbol, &s.Name, &s.Price, &s.Change, &s.ChangePercent,
		&s.Volume, &s.MarketCap, &s.PERatio, &s.DividendYield, &s.LastUpdated, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return s, nil
}

// GetByID retrieves a stock by its surrogate id. Absence is nil, not an error.
func (r *StockRepository) GetByID(ctx context.Context, id int64) (*models.Stock, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	s := &models.Stock{}
	err := pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Symbol, &s.Name, &s.Price, &s.Change, &s.ChangePercent,
		&s.Volume, &s.MarketCap, &s.PERatio, &s.DividendYield, &s.LastUpdated, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return s, nil
}

// TopGainers retrieves up to limit stocks ordered by percent change
// descending. Ties keep insertion order.
func (r *StockRepository) TopGainers(ctx context.Context, limit int) ([]models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		ORDER BY change_percent DESC, id ASC
		LIMIT $1
	`
	return r.queryStocks(ctx, query, limit)
}

// TopLosers retrieves up to limit stocks ordered by percent change ascending.
func (r *StockRepository) TopLosers(ctx context.Context, limit int) ([]models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		ORDER BY change_percent ASC, id ASC
		LIMIT $1
	`
	return r.queryStocks(ctx, query, limit)
}

// Search retrieves up to limit stocks whose symbol or name contains query,
// case-insensitively.
func (r *StockRepository) Search(ctx context.Context, search string, limit int) ([]models.Stock, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE symbol ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY id ASC
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search stocks: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// Upsert inserts or refreshes a cached stock row keyed by symbol. With the
// store unavailable this is a logged no-op.
func (r *StockRepository) Upsert(ctx context.Context, s *models.Stock) error {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("stocks: cannot upsert, store unavailable")
		return nil
	}

	query := `
		INSERT INTO stocks (symbol, name, price, change, change_percent, volume, market_cap, pe_ratio, dividend_yield, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (symbol) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    change = EXCLUDED.change,
		    change_percent = EXCLUDED.change_percent,
		    volume = EXCLUDED.volume,
		    market_cap = EXCLUDED.market_cap,
		    pe_ratio = EXCLUDED.pe_ratio,
		    dividend_yield = EXCLUDED.dividend_yield,
		    last_updated = now()
	`
	_, err := pool.Exec(ctx, query,
		s.Symbol, s.Name, s.Price, s.Change, s.ChangePercent,
		s.Volume, s.MarketCap, s.PERatio, s.DividendYield,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stock %s: %w", s.Symbol, err)
	}
	return nil
}

func (r *StockRepository) queryStocks(ctx context.Context, query string, args ...any) ([]models.Stock, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]models.Stock, error) {
	var result []models.Stock
	for rows.Next() {
		var s models.Stock
		if err := rows.Scan(
			&s.ID, &s.Symbol, &s.Name, &s.Price, &s.Change, &s.ChangePercent,
			&s.Volume, &s.MarketCap, &s.PERatio, &s.DividendYield, &s.LastUpdated, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
