package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScreenerFilters is a set of optional closed-interval bounds over stock
// attributes. A nil bound means that side is unbounded; a candidate passes
// when price and percent change fall within every supplied interval,
// boundaries included.
type ScreenerFilters struct {
	MinPrice         *decimal.Decimal `json:"minPrice"`
	MaxPrice         *decimal.Decimal `json:"maxPrice"`
	MinChangePercent *decimal.Decimal `json:"minChangePercent"`
	MaxChangePercent *decimal.Decimal `json:"maxChangePercent"`
}

// Screener is a saved filter expression. Filters holds the JSON encoding of a
// ScreenerFilters value.
type Screener struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Filters     string    `json:"filters"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
