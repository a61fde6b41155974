package fmp

import "github.com/shopspring/decimal"

// Quote represents the FMP /quote response shape for a single instrument.
// Monetary fields decode into decimals straight from the JSON text, so the
// provider's precision is preserved exactly.
type Quote struct {
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	ChangesPercentage decimal.Decimal `json:"changesPercentage"`
	Change            decimal.Decimal `json:"change"`
	DayLow            decimal.Decimal `json:"dayLow"`
	DayHigh           decimal.Decimal `json:"dayHigh"`
	YearHigh          decimal.Decimal `json:"yearHigh"`
	YearLow           decimal.Decimal `json:"yearLow"`
	MarketCap         int64           `json:"marketCap"`
	PriceAvg50        decimal.Decimal `json:"priceAvg50"`
	PriceAvg200       decimal.Decimal `json:"priceAvg200"`
	Volume            int64           `json:"volume"`
	AvgVolume         int64           `json:"avgVolume"`
	Open              decimal.Decimal `json:"open"`
	PreviousClose     decimal.Decimal `json:"previousClose"`
	EPS               decimal.Decimal `json:"eps"`
	PE                decimal.Decimal `json:"pe"`
	SharesOutstanding int64           `json:"sharesOutstanding"`
	Timestamp         int64           `json:"timestamp"`
}

// IndexQuote is a normalized market-index quote with a human-readable name.
type IndexQuote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// searchMatch is the lightweight record the FMP /search endpoint returns.
// It carries no live quote; Search follows up with a batched quote fetch.
type searchMatch struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Currency          string `json:"currency"`
	StockExchange     string `json:"stockExchange"`
	ExchangeShortName string `json:"exchangeShortName"`
}

// Profile represents the FMP /profile response for a company.
type Profile struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
	Beta        decimal.Decimal `json:"beta"`
	MarketCap   int64           `json:"mktCap"`
	Currency    string          `json:"currency"`
	Exchange    string          `json:"exchangeShortName"`
	Industry    string          `json:"industry"`
	Sector      string          `json:"sector"`
	Website     string          `json:"website"`
	Description string          `json:"description"`
	CEO         string          `json:"ceo"`
	Image       string          `json:"image"`
	IPODate     string          `json:"ipoDate"`
}

// PricePoint is one day of historical prices.
type PricePoint struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// historicalResponse wraps the FMP /historical-price-full payload.
type historicalResponse struct {
	Symbol     string       `json:"symbol"`
	Historical []PricePoint `json:"historical"`
}
