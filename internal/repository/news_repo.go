package repository

import (
	"context"
	"fmt"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

// NewsRepository handles database operations for cached news articles
type NewsRepository struct {
	db *database.DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *database.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// Latest retrieves up to limit articles, newest first.
func (r *NewsRepository) Latest(ctx context.Context, limit int) ([]models.News, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `
		SELECT id, title, description, url, source, image_url, published_at, sentiment, created_at
		FROM news
		ORDER BY published_at DESC
		LIMIT $1
	`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var result []models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Description, &n.URL, &n.Source,
			&n.ImageURL, &n.PublishedAt, &n.Sentiment, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
