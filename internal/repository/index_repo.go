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

const indexColumns = `id, symbol, name, value, change, change_percent, last_updated, created_at`

// IndexRepository handles database operations for market indices
type IndexRepository struct {
	db *database.DB
}

// NewIndexRepository creates a new IndexRepository
func NewIndexRepository(db *database.DB) *IndexRepository {
	return &IndexRepository{db: db}
}

// GetAll retrieves every tracked index.
func (r *IndexRepository) GetAll(ctx context.Context) ([]models.Index, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + indexColumns + ` FROM indices ORDER BY id ASC`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query indices: %w", err)
	}
	defer rows.Close()

	var result []models.Index
	for rows.Next() {
		var idx models.Index
		if err := rows.Scan(
			&idx.ID, &idx.Symbol, &idx.Name, &idx.Value, &idx.Change,
			&idx.ChangePercent, &idx.LastUpdated, &idx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		result = append(result, idx)
	}
	return result, rows.Err()
}

// GetBySymbol retrieves one index by symbol. Absence is nil, not an error.
func (r *IndexRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Index, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + indexColumns + ` FROM indices WHERE symbol = $1 LIMIT 1`
	idx := &models.Index{}
	err := pool.QueryRow(ctx, query, symbol).Scan(
		&idx.ID, &idx.Symbol, &idx.Name, &idx.Value, &idx.Change,
		&idx.ChangePercent, &idx.LastUpdated, &idx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get index: %w", err)
	}
	return idx, nil
}

// Upsert inserts or refreshes an index row keyed by symbol. With the store
// unavailable this is a logged no-op.
func (r *IndexRepository) Upsert(ctx context.Context, idx *models.Index) error {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("indices: cannot upsert, store unavailable")
		return nil
	}

	query := `
		INSERT INTO indices (symbol, name, value, change, change_percent, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (symbol) DO UPDATE
		SET name = EXCLUDED.name,
		    value = EXCLUDED.value,
		    change = EXCLUDED.change,
		    change_percent = EXCLUDED.change_percent,
		    last_updated = now()
	`
	_, err := pool.Exec(ctx, query, idx.Symbol, idx.Name, idx.Value, idx.Change, idx.ChangePercent)
	if err != nil {
		return fmt.Errorf("failed to upsert index %s: %w", idx.Symbol, err)
	}
	return nil
}
