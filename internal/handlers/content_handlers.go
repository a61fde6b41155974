package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// ContentHandler handles news and IPO read endpoints
type ContentHandler struct {
	marketSvc *services.MarketService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(marketSvc *services.MarketService) *ContentHandler {
	return &ContentHandler{marketSvc: marketSvc}
}

// LatestNews handles GET /api/news
// @Summary List the latest financial news
// @Tags news
// @Produce json
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {array} models.News
// @Failure 400 {object} models.ErrorResponse
// @Router /api/news [get]
func (h *ContentHandler) LatestNews(c *gin.Context) {
	limit, ok := parseLimit(c, services.DefaultNewsLimit)
	if !ok {
		return
	}

	news, err := h.marketSvc.LatestNews(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(news))
}

// UpcomingIPOs handles GET /api/ipos/upcoming
// @Summary List upcoming IPOs
// @Tags ipos
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} models.IPO
// @Failure 400 {object} models.ErrorResponse
// @Router /api/ipos/upcoming [get]
func (h *ContentHandler) UpcomingIPOs(c *gin.Context) {
	limit, ok := parseLimit(c, services.DefaultIPOLimit)
	if !ok {
		return
	}

	ipos, err := h.marketSvc.UpcomingIPOs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(ipos))
}

// RecentIPOs handles GET /api/ipos/recent
// @Summary List recent IPOs
// @Tags ipos
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} models.IPO
// @Failure 400 {object} models.ErrorResponse
// @Router /api/ipos/recent [get]
func (h *ContentHandler) RecentIPOs(c *gin.Context) {
	limit, ok := parseLimit(c, services.DefaultIPOLimit)
	if !ok {
		return
	}

	ipos, err := h.marketSvc.RecentIPOs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(ipos))
}
