package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Financial Modeling Prep is a market-data API serving real-time quotes,
// movers, company profiles and historical prices.
// https://site.financialmodelingprep.com/developer/docs
const defaultBaseURL = "https://financialmodelingprep.com/api/v3"

// moversCap bounds the gainers/losers lists at the adapter regardless of what
// callers ask for; callers truncate further.
const moversCap = 20

// searchQuoteCap bounds the batched quote fetch that backs Search.
const searchQuoteCap = 10

// indexSymbols is the fixed set of tracked market indices.
var indexSymbols = []string{"^GSPC", "^IXIC", "^DJI", "^RUT"}

// indexNames maps index symbols to display names. Symbols absent from the
// table pass through with the raw symbol as the name.
var indexNames = map[string]string{
	"^GSPC": "S&P 500",
	"^IXIC": "Nasdaq Composite",
	"^DJI":  "Dow Jones",
	"^RUT":  "Russell 2000",
}

// Client is an HTTP client for the FMP API.
//
// Every exported method degrades instead of failing: a missing API key, a
// non-success response, a malformed payload or a transport error yields a
// nil/empty result and a log line, so callers can render an empty state
// rather than fail the request.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new FMP client. An empty apiKey is allowed; the client
// then answers every call with an empty result.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a new FMP client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetQuote fetches a real-time quote for one symbol. Returns nil when the
// symbol is unknown or the provider is unavailable.
func (c *Client) GetQuote(ctx context.Context, symbol string) *Quote {
	if !c.configured() {
		return nil
	}

	var quotes []Quote
	if err := c.getJSON(ctx, "/quote/"+url.PathEscape(symbol), nil, &quotes); err != nil {
		log.Errorf("fmp: failed to fetch quote for %s: %v", symbol, err)
		return nil
	}
	if len(quotes) == 0 {
		return nil
	}
	return &quotes[0]
}

// GetQuotes fetches quotes for a batch of symbols in one call. A provider
// error yields an empty list, never a partial failure.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) []Quote {
	if !c.configured() || len(symbols) == 0 {
		return nil
	}

	var quotes []Quote
	path := "/quote/" + url.PathEscape(strings.Join(symbols, ","))
	if err := c.getJSON(ctx, path, nil, &quotes); err != nil {
		log.Errorf("fmp: failed to fetch quotes: %v", err)
		return nil
	}
	return quotes
}

// GetTopGainers fetches the day's top gainers, capped at 20 entries.
func (c *Client) GetTopGainers(ctx context.Context) []Quote {
	return c.getMovers(ctx, "/gainers")
}

// GetTopLosers fetches the day's top losers, capped at 20 entries.
func (c *Client) GetTopLosers(ctx context.Context) []Quote {
	return c.getMovers(ctx, "/losers")
}

func (c *Client) getMovers(ctx context.Context, path string) []Quote {
	if !c.configured() {
		return nil
	}

	var quotes []Quote
	if err := c.getJSON(ctx, path, nil, &quotes); err != nil {
		log.Errorf("fmp: failed to fetch %s: %v", strings.TrimPrefix(path, "/"), err)
		return nil
	}
	if len(quotes) > moversCap {
		quotes = quotes[:moversCap]
	}
	return quotes
}

// GetMarketIndices fetches quotes for the fixed index set and re-maps each to
// its display name. Unknown symbols keep the raw symbol as the name.
func (c *Client) GetMarketIndices(ctx context.Context) []IndexQuote {
	quotes := c.GetQuotes(ctx, indexSymbols)

	indices := make([]IndexQuote, 0, len(quotes))
	for _, q := range quotes {
		indices = append(indices, IndexQuote{
			Symbol:        q.Symbol,
			Name:          indexName(q.Symbol),
			Value:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangesPercentage,
		})
	}
	return indices
}

func indexName(symbol string) string {
	if name, ok := indexNames[symbol]; ok {
		return name
	}
	return symbol
}

// Search finds instruments matching query. The upstream search endpoint only
// returns symbol matches, so a second batched quote fetch covers the top ten
// matched symbols; the relevance order of the first call is preserved.
func (c *Client) Search(ctx context.Context, query string) []Quote {
	if !c.configured() {
		return nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "20")

	var matches []searchMatch
	if err := c.getJSON(ctx, "/search", params, &matches); err != nil {
		log.Errorf("fmp: failed to search for %q: %v", query, err)
		return nil
	}
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > searchQuoteCap {
		matches = matches[:searchQuoteCap]
	}

	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, m.Symbol)
	}

	// The batch quote endpoint does not guarantee order; put the quotes back
	// in relevance order.
	bySymbol := make(map[string]Quote, len(symbols))
	for _, q := range c.GetQuotes(ctx, symbols) {
		bySymbol[q.Symbol] = q
	}

	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		if q, ok := bySymbol[symbol]; ok {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// GetCompanyProfile fetches the company profile for a symbol, or nil.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) *Profile {
	if !c.configured() {
		return nil
	}

	var profiles []Profile
	if err := c.getJSON(ctx, "/profile/"+url.PathEscape(symbol), nil, &profiles); err != nil {
		log.Errorf("fmp: failed to fetch profile for %s: %v", symbol, err)
		return nil
	}
	if len(profiles) == 0 {
		return nil
	}
	return &profiles[0]
}

// GetHistoricalPrices fetches up to limit days of daily prices for a symbol.
func (c *Client) GetHistoricalPrices(ctx context.Context, symbol string, limit int) []PricePoint {
	if !c.configured() {
		return nil
	}
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp historicalResponse
	path := "/historical-price-full/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		log.Errorf("fmp: failed to fetch historical prices for %s: %v", symbol, err)
		return nil
	}
	if len(resp.Historical) > limit {
		resp.Historical = resp.Historical[:limit]
	}
	return resp.Historical
}

// configured reports whether an API key is present, logging once per call
// when it is not.
func (c *Client) configured() bool {
	if c.apiKey == "" {
		log.Warn("fmp: API key not configured")
		return false
	}
	return true
}

// getJSON performs a GET against the FMP API and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
