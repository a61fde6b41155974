package models

import "time"

// Stock is a cached row of the stocks table. Monetary and percentage columns
// are decimal-typed end to end; they marshal as fixed-point strings so the
// stored scale survives the trip to the client.
type Stock struct {
	ID            int64     `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         Money     `json:"price"`
	Change        Money     `json:"change"`
	ChangePercent Money     `json:"changePercent"`
	Volume        *string   `json:"volume"`
	MarketCap     *string   `json:"marketCap"`
	PERatio       NullMoney `json:"peRatio"`
	DividendYield NullMoney `json:"dividendYield"`
	LastUpdated   time.Time `json:"lastUpdated"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Index is one tracked market index (S&P 500, Nasdaq Composite, Dow Jones,
// Russell 2000).
type Index struct {
	ID            int64     `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Value         Money     `json:"value"`
	Change        Money     `json:"change"`
	ChangePercent Money     `json:"changePercent"`
	LastUpdated   time.Time `json:"lastUpdated"`
	CreatedAt     time.Time `json:"createdAt"`
}
