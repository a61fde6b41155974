package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

// foreignKeyViolation is the Postgres error code raised when watchlist.stock_id
// references a missing stock.
const foreignKeyViolation = "23503"

const watchlistColumns = `id, user_id, stock_id, added_at, created_at`

// WatchlistRepository handles database operations for per-user watchlists.
// Every operation is keyed by the owning user: no statement here can touch
// another user's rows.
type WatchlistRepository struct {
	db *database.DB
}

// NewWatchlistRepository creates a new WatchlistRepository
func NewWatchlistRepository(db *database.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// ListByUser retrieves the user's watchlist entries joined with their stocks,
// oldest first.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `
		SELECT w.id, w.user_id, w.stock_id, w.added_at, w.created_at,
		       s.id, s.symbol, s.name, s.price, s.change, s.change_percent,
		       s.volume, s.market_cap, s.pe_ratio, s.dividend_yield, s.last_updated, s.created_at
		FROM watchlist w
		JOIN stocks s ON s.id = w.stock_id
		WHERE w.user_id = $1
		ORDER BY w.added_at ASC, w.id ASC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var result []models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(
			&item.Entry.ID, &item.Entry.UserID, &item.Entry.StockID, &item.Entry.AddedAt, &item.Entry.CreatedAt,
			&item.Stock.ID, &item.Stock.Symbol, &item.Stock.Name, &item.Stock.Price, &item.Stock.Change,
			&item.Stock.ChangePercent, &item.Stock.Volume, &item.Stock.MarketCap, &item.Stock.PERatio,
			&item.Stock.DividendYield, &item.Stock.LastUpdated, &item.Stock.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// Add inserts a watchlist entry for (userID, stockID). Adding a pair that is
// already present returns the existing entry unchanged; the unique constraint
// on (user_id, stock_id) makes the operation idempotent even under concurrent
// adds. Referencing a missing stock fails with ErrStockNotFound.
func (r *WatchlistRepository) Add(ctx context.Context, userID, stockID int64) (*models.WatchlistEntry, error) {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("watchlist: cannot add, store unavailable")
		return nil, nil
	}

	insert := `
		INSERT INTO watchlist (user_id, stock_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, stock_id) DO NOTHING
		RETURNING ` + watchlistColumns + `
	`
	entry := &models.WatchlistEntry{}
	err := pool.QueryRow(ctx, insert, userID, stockID).Scan(
		&entry.ID, &entry.UserID, &entry.StockID, &entry.AddedAt, &entry.CreatedAt,
	)
	if err == nil {
		return entry, nil
	}
	if isForeignKeyViolation(err) {
		return nil, ErrStockNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	// Conflict path: the pair already exists, return the visible row.
	query := `SELECT ` + watchlistColumns + ` FROM watchlist WHERE user_id = $1 AND stock_id = $2`
	err = pool.QueryRow(ctx, query, userID, stockID).Scan(
		&entry.ID, &entry.UserID, &entry.StockID, &entry.AddedAt, &entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing watchlist entry: %w", err)
	}
	return entry, nil
}

// Remove deletes the entry matching exactly (userID, stockID). Removing an
// absent pair is a no-op, not an error.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, stockID int64) error {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("watchlist: cannot remove, store unavailable")
		return nil
	}

	query := `DELETE FROM watchlist WHERE user_id = $1 AND stock_id = $2`
	if _, err := pool.Exec(ctx, query, userID, stockID); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
