package repository

import (
	"context"
	"fmt"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

// IPORepository handles database operations for tracked IPOs
type IPORepository struct {
	db *database.DB
}

// NewIPORepository creates a new IPORepository
func NewIPORepository(db *database.DB) *IPORepository {
	return &IPORepository{db: db}
}

// ByStatus retrieves up to limit IPOs with the given status, most recent
// offering date first.
func (r *IPORepository) ByStatus(ctx context.Context, status string, limit int) ([]models.IPO, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `
		SELECT id, symbol, company_name, ipo_date, status, pricing_date,
		       offering_price, shares, proceeds, underwriters, created_at, updated_at
		FROM ipos
		WHERE status = $1
		ORDER BY ipo_date DESC NULLS LAST
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ipos: %w", err)
	}
	defer rows.Close()

	var result []models.IPO
	for rows.Next() {
		var ipo models.IPO
		if err := rows.Scan(
			&ipo.ID, &ipo.Symbol, &ipo.CompanyName, &ipo.IPODate, &ipo.Status, &ipo.PricingDate,
			&ipo.OfferingPrice, &ipo.Shares, &ipo.Proceeds, &ipo.Underwriters, &ipo.CreatedAt, &ipo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ipo: %w", err)
		}
		result = append(result, ipo)
	}
	return result, rows.Err()
}
