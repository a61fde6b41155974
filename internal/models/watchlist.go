package models

import "time"

// WatchlistEntry links a user to a stock. The (UserID, StockID) pair is
// unique in the watchlist table; entries are only ever visible to and
// removable by their owning user.
type WatchlistEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	StockID   int64     `json:"stockId"`
	AddedAt   time.Time `json:"addedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// WatchlistItem is the joined view returned by the list operation: the entry
// together with the stock it references.
type WatchlistItem struct {
	Entry WatchlistEntry `json:"entry"`
	Stock Stock          `json:"stock"`
}
