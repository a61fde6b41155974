package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/fmp"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// ProfileSource is the slice of the quote adapter the live pass-through
// endpoints use.
type ProfileSource interface {
	GetCompanyProfile(ctx context.Context, symbol string) *fmp.Profile
	GetHistoricalPrices(ctx context.Context, symbol string, limit int) []fmp.PricePoint
}

// StockHandler handles stock read endpoints
type StockHandler struct {
	marketSvc *services.MarketService
	profiles  ProfileSource
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(marketSvc *services.MarketService, profiles ProfileSource) *StockHandler {
	return &StockHandler{
		marketSvc: marketSvc,
		profiles:  profiles,
	}
}

// TopGainers handles GET /api/stocks/gainers
// @Summary List top gaining stocks
// @Description Cached stocks ordered by percent change descending
// @Tags stocks
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} models.Stock
// @Failure 400 {object} models.ErrorResponse
// @Router /api/stocks/gainers [get]
func (h *StockHandler) TopGainers(c *gin.Context) {
	limit, ok := parseLimit(c, services.DefaultMoversLimit)
	if !ok {
		return
	}

	stocks, err := h.marketSvc.TopGainers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(stocks))
}

// TopLosers handles GET /api/stocks/losers
// @Summary List top losing stocks
// @Description Cached stocks ordered by percent change ascending
// @Tags stocks
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} models.Stock
// @Failure 400 {object} models.ErrorResponse
// @Router /api/stocks/losers [get]
func (h *StockHandler) TopLosers(c *gin.Context) {
	limit, ok := parseLimit(c, services.DefaultMoversLimit)
	if !ok {
		return
	}

	stocks, err := h.marketSvc.TopLosers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(stocks))
}

// Search handles GET /api/stocks/search
// @Summary Search cached stocks
// @Description Case-insensitive substring match over symbol or name
// @Tags stocks
// @Produce json
// @Param query query string true "Search text"
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {array} models.Stock
// @Failure 400 {object} models.ErrorResponse
// @Router /api/stocks/search [get]
func (h *StockHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "query is required",
		})
		return
	}
	limit, ok := parseLimit(c, services.DefaultSearchLimit)
	if !ok {
		return
	}

	stocks, err := h.marketSvc.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(stocks))
}

// GetBySymbol handles GET /api/stocks/:symbol
// @Summary Get one cached stock
// @Description Returns the stock, or null when the symbol is unknown
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} models.Stock
// @Router /api/stocks/{symbol} [get]
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	stock, err := h.marketSvc.GetStockBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Profile handles GET /api/stocks/:symbol/profile
// @Summary Get a live company profile
// @Description Live pass-through to the market-data provider; null when unavailable
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} fmp.Profile
// @Router /api/stocks/{symbol}/profile [get]
func (h *StockHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profiles.GetCompanyProfile(c.Request.Context(), c.Param("symbol")))
}

// History handles GET /api/stocks/:symbol/history
// @Summary Get live historical prices
// @Description Live pass-through to the market-data provider; empty when unavailable
// @Tags stocks
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param limit query int false "Maximum days" default(100)
// @Success 200 {array} fmp.PricePoint
// @Failure 400 {object} models.ErrorResponse
// @Router /api/stocks/{symbol}/history [get]
func (h *StockHandler) History(c *gin.Context) {
	limit, ok := parseLimit(c, 100)
	if !ok {
		return
	}

	points := h.profiles.GetHistoricalPrices(c.Request.Context(), c.Param("symbol"), limit)
	if points == nil {
		points = []fmp.PricePoint{}
	}
	c.JSON(http.StatusOK, points)
}

// emptyToSlice keeps degraded/empty list responses rendering as [] rather
// than null.
func emptyToSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
