package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnconfiguredClientDegrades(t *testing.T) {
	// No API key: every operation answers empty without touching the network.
	client := NewClientWithBaseURL("", "http://127.0.0.1:1")
	ctx := context.Background()

	require.Nil(t, client.GetQuote(ctx, "AAPL"))
	require.Empty(t, client.GetQuotes(ctx, []string{"AAPL", "MSFT"}))
	require.Empty(t, client.GetTopGainers(ctx))
	require.Empty(t, client.GetTopLosers(ctx))
	require.Empty(t, client.GetMarketIndices(ctx))
	require.Empty(t, client.Search(ctx, "apple"))
	require.Nil(t, client.GetCompanyProfile(ctx, "AAPL"))
	require.Empty(t, client.GetHistoricalPrices(ctx, "AAPL", 10))
}

func TestGetQuoteParsesDecimalsExactly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote/AAPL", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, `[{"symbol":"AAPL","name":"Apple Inc.","price":150.00,"change":2.50,"changesPercentage":1.69,"volume":52000000,"marketCap":2400000000000}]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	quote := client.GetQuote(context.Background(), "AAPL")

	require.NotNil(t, quote)
	require.Equal(t, "AAPL", quote.Symbol)
	require.Equal(t, "150", quote.Price.String())
	require.Equal(t, "2.5", quote.Change.String())
	require.Equal(t, "1.69", quote.ChangesPercentage.String())
	require.Equal(t, int64(52000000), quote.Volume)
}

func TestGetQuoteEmptyPayloadIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	require.Nil(t, client.GetQuote(context.Background(), "NOPE"))
}

func TestGetQuotesDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	require.Empty(t, client.GetQuotes(context.Background(), []string{"AAPL"}))
}

func TestGetQuotesDegradesOnMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	require.Empty(t, client.GetQuotes(context.Background(), []string{"AAPL"}))
}

func TestMoversCappedAtTwenty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		quotes := make([]map[string]any, 0, 25)
		for i := 0; i < 25; i++ {
			quotes = append(quotes, map[string]any{
				"symbol": fmt.Sprintf("SYM%d", i),
				"price":  float64(i),
			})
		}
		require.NoError(t, json.NewEncoder(w).Encode(quotes))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)

	gainers := client.GetTopGainers(context.Background())
	require.Len(t, gainers, 20)
	require.Equal(t, "SYM0", gainers[0].Symbol)

	losers := client.GetTopLosers(context.Background())
	require.Len(t, losers, 20)
}

func TestGetMarketIndicesMapsDisplayNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote/^GSPC,^IXIC,^DJI,^RUT", r.URL.Path)
		fmt.Fprint(w, `[
			{"symbol":"^GSPC","price":5000.25,"change":10.50,"changesPercentage":0.21},
			{"symbol":"^IXIC","price":16000.00,"change":-20.00,"changesPercentage":-0.12},
			{"symbol":"^MYSTERY","price":1.00,"change":0,"changesPercentage":0}
		]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	indices := client.GetMarketIndices(context.Background())

	require.Len(t, indices, 3)
	require.Equal(t, "S&P 500", indices[0].Name)
	require.Equal(t, "5000.25", indices[0].Value.String())
	require.Equal(t, "Nasdaq Composite", indices[1].Name)
	// Symbols absent from the name table pass through unchanged.
	require.Equal(t, "^MYSTERY", indices[2].Name)
}

func TestSearchPreservesRelevanceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			require.Equal(t, "apple", r.URL.Query().Get("query"))
			// Twelve matches: only the top ten get quoted.
			matches := make([]map[string]string, 0, 12)
			for i := 0; i < 12; i++ {
				matches = append(matches, map[string]string{"symbol": fmt.Sprintf("M%d", i)})
			}
			require.NoError(t, json.NewEncoder(w).Encode(matches))
		case "/quote/M0,M1,M2,M3,M4,M5,M6,M7,M8,M9":
			// Quotes come back out of order and with one symbol missing.
			fmt.Fprint(w, `[
				{"symbol":"M9","price":9},
				{"symbol":"M0","price":0},
				{"symbol":"M5","price":5}
			]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	quotes := client.Search(context.Background(), "apple")

	require.Len(t, quotes, 3)
	require.Equal(t, "M0", quotes[0].Symbol)
	require.Equal(t, "M5", quotes[1].Symbol)
	require.Equal(t, "M9", quotes[2].Symbol)
}

func TestSearchNoMatchesIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	require.Empty(t, client.Search(context.Background(), "zzz"))
}

func TestGetCompanyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/profile/AAPL", r.URL.Path)
		fmt.Fprint(w, `[{"symbol":"AAPL","companyName":"Apple Inc.","sector":"Technology","mktCap":2400000000000}]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	profile := client.GetCompanyProfile(context.Background(), "AAPL")

	require.NotNil(t, profile)
	require.Equal(t, "Apple Inc.", profile.CompanyName)
	require.Equal(t, int64(2400000000000), profile.MarketCap)
}

func TestGetHistoricalPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/historical-price-full/AAPL", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"symbol":"AAPL","historical":[
			{"date":"2026-08-28","open":149.00,"high":151.00,"low":148.50,"close":150.00,"volume":52000000},
			{"date":"2026-08-27","open":147.00,"high":149.50,"low":146.00,"close":149.00,"volume":48000000}
		]}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	points := client.GetHistoricalPrices(context.Background(), "AAPL", 5)

	require.Len(t, points, 2)
	require.Equal(t, "2026-08-28", points[0].Date)
	require.Equal(t, "150", points[0].Close.String())
}
