package models

// ErrorResponse is the uniform error body returned by every handler
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AddWatchlistRequest is the request body for adding a stock to the caller's
// watchlist
type AddWatchlistRequest struct {
	StockID int64 `json:"stockId" binding:"required"`
}

// CreateScreenerRequest is the request body for saving a screener
type CreateScreenerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Filters     ScreenerFilters `json:"filters"`
	IsPublic    bool            `json:"isPublic"`
}

// LogoutResponse acknowledges a cleared session
type LogoutResponse struct {
	Success bool `json:"success"`
}

// RefreshSummary reports how many rows a market-data refresh touched
type RefreshSummary struct {
	StocksUpserted  int `json:"stocksUpserted"`
	IndicesUpserted int `json:"indicesUpserted"`
}
