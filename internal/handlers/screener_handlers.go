package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stockdash/stockdash/internal/fmp"
	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// ScreenerHandler handles the ad-hoc screener and saved screener endpoints
type ScreenerHandler struct {
	screenerSvc *services.ScreenerService
}

// NewScreenerHandler creates a new ScreenerHandler
func NewScreenerHandler(screenerSvc *services.ScreenerService) *ScreenerHandler {
	return &ScreenerHandler{screenerSvc: screenerSvc}
}

// Run handles GET /api/screener
// @Summary Run an ad-hoc screen over today's movers
// @Description Filters the union of top gainers and losers by optional price and percent-change bounds
// @Tags screener
// @Produce json
// @Param min_price query number false "Minimum price, inclusive"
// @Param max_price query number false "Maximum price, inclusive"
// @Param min_change_percent query number false "Minimum percent change, inclusive"
// @Param max_change_percent query number false "Maximum percent change, inclusive"
// @Success 200 {array} fmp.Quote
// @Failure 400 {object} models.ErrorResponse
// @Router /api/screener [get]
func (h *ScreenerHandler) Run(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	quotes, err := h.screenerSvc.Run(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	if quotes == nil {
		quotes = []fmp.Quote{}
	}
	c.JSON(http.StatusOK, quotes)
}

// parseFilters reads the optional decimal bound query parameters. Returns
// false when the request has been answered with a validation failure.
func parseFilters(c *gin.Context) (models.ScreenerFilters, bool) {
	var filters models.ScreenerFilters

	bounds := []struct {
		param string
		dest  **decimal.Decimal
	}{
		{"min_price", &filters.MinPrice},
		{"max_price", &filters.MaxPrice},
		{"min_change_percent", &filters.MinChangePercent},
		{"max_change_percent", &filters.MaxChangePercent},
	}
	for _, b := range bounds {
		raw := c.Query(b.param)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: b.param + " must be a decimal number",
			})
			return filters, false
		}
		*b.dest = &value
	}
	return filters, true
}

// ListSaved handles GET /api/screeners
// @Summary List the caller's saved screeners
// @Tags screener
// @Produce json
// @Success 200 {array} models.Screener
// @Failure 401 {object} models.ErrorResponse
// @Router /api/screeners [get]
func (h *ScreenerHandler) ListSaved(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	screeners, err := h.screenerSvc.ListSaved(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(screeners))
}

// CreateSaved handles POST /api/screeners
// @Summary Save a screener
// @Tags screener
// @Accept json
// @Produce json
// @Param request body models.CreateScreenerRequest true "Screener to save"
// @Success 201 {object} models.Screener
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/screeners [post]
func (h *ScreenerHandler) CreateSaved(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CreateScreenerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	screener, err := h.screenerSvc.CreateSaved(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, screener)
}

// DeleteSaved handles DELETE /api/screeners/:id
// @Summary Delete one of the caller's saved screeners
// @Tags screener
// @Produce json
// @Param id path int true "Screener id"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/screeners/{id} [delete]
func (h *ScreenerHandler) DeleteSaved(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	screenerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid screener id",
		})
		return
	}

	if err := h.screenerSvc.DeleteSaved(c.Request.Context(), user.ID, screenerID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}
