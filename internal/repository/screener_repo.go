package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

const screenerColumns = `id, user_id, name, description, filters, is_public, created_at, updated_at`

// ScreenerRepository handles database operations for saved screeners
type ScreenerRepository struct {
	db *database.DB
}

// NewScreenerRepository creates a new ScreenerRepository
func NewScreenerRepository(db *database.DB) *ScreenerRepository {
	return &ScreenerRepository{db: db}
}

// ListByUser retrieves the user's saved screeners, oldest first.
func (r *ScreenerRepository) ListByUser(ctx context.Context, userID int64) ([]models.Screener, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + screenerColumns + ` FROM screeners WHERE user_id = $1 ORDER BY id ASC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query screeners: %w", err)
	}
	defer rows.Close()

	var result []models.Screener
	for rows.Next() {
		var s models.Screener
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Description, &s.Filters,
			&s.IsPublic, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan screener: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Create stores a saved screener for the user. With the store unavailable
// this is a logged no-op.
func (r *ScreenerRepository) Create(ctx context.Context, userID int64, name string, description *string, filters string, isPublic bool) (*models.Screener, error) {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("screeners: cannot create, store unavailable")
		return nil, nil
	}

	query := `
		INSERT INTO screeners (user_id, name, description, filters, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + screenerColumns + `
	`
	s := &models.Screener{}
	err := pool.QueryRow(ctx, query, userID, name, description, filters, isPublic).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Description, &s.Filters,
		&s.IsPublic, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create screener: %w", err)
	}
	return s, nil
}

// Delete removes the user's screener by id. Deleting an absent or foreign
// screener is a no-op.
func (r *ScreenerRepository) Delete(ctx context.Context, userID, screenerID int64) error {
	pool := r.db.Pool()
	if pool == nil {
		log.Warn("screeners: cannot delete, store unavailable")
		return nil
	}

	query := `DELETE FROM screeners WHERE id = $1 AND user_id = $2`
	if _, err := pool.Exec(ctx, query, screenerID, userID); err != nil {
		return fmt.Errorf("failed to delete screener: %w", err)
	}
	return nil
}
