package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/repository"
	"github.com/stockdash/stockdash/internal/services"
)

// WatchlistHandler handles the authenticated watchlist endpoints. Routes are
// mounted behind RequireAuth, so CurrentUser is always present here.
type WatchlistHandler struct {
	watchlistSvc *services.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistSvc *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistSvc: watchlistSvc}
}

// List handles GET /api/watchlist
// @Summary List the caller's watchlist
// @Description Watchlist entries joined with their stocks, oldest first
// @Tags watchlist
// @Produce json
// @Success 200 {array} models.WatchlistItem
// @Failure 401 {object} models.ErrorResponse
// @Router /api/watchlist [get]
func (h *WatchlistHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	items, err := h.watchlistSvc.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(items))
}

// Add handles POST /api/watchlist
// @Summary Add a stock to the caller's watchlist
// @Description Idempotent; adding an already-present stock returns the existing entry
// @Tags watchlist
// @Accept json
// @Produce json
// @Param request body models.AddWatchlistRequest true "Stock to add"
// @Success 200 {object} models.WatchlistEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/watchlist [post]
func (h *WatchlistHandler) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	entry, err := h.watchlistSvc.Add(c.Request.Context(), user.ID, req.StockID)
	if err != nil {
		if errors.Is(err, repository.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "stock does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Remove handles DELETE /api/watchlist/:stock_id
// @Summary Remove a stock from the caller's watchlist
// @Description Removing an absent entry is a no-op
// @Tags watchlist
// @Produce json
// @Param stock_id path int true "Stock id"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/watchlist/{stock_id} [delete]
func (h *WatchlistHandler) Remove(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	stockID, err := strconv.ParseInt(c.Param("stock_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid stock id",
		})
		return
	}

	if err := h.watchlistSvc.Remove(c.Request.Context(), user.ID, stockID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}
