package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// IndexHandler handles market index read endpoints
type IndexHandler struct {
	marketSvc *services.MarketService
}

// NewIndexHandler creates a new IndexHandler
func NewIndexHandler(marketSvc *services.MarketService) *IndexHandler {
	return &IndexHandler{marketSvc: marketSvc}
}

// GetAll handles GET /api/indices
// @Summary List tracked market indices
// @Tags indices
// @Produce json
// @Success 200 {array} models.Index
// @Router /api/indices [get]
func (h *IndexHandler) GetAll(c *gin.Context) {
	indices, err := h.marketSvc.Indices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, emptyToSlice(indices))
}

// GetBySymbol handles GET /api/indices/:symbol
// @Summary Get one tracked index
// @Description Returns the index, or null when the symbol is unknown
// @Tags indices
// @Produce json
// @Param symbol path string true "Index symbol"
// @Success 200 {object} models.Index
// @Router /api/indices/{symbol} [get]
func (h *IndexHandler) GetBySymbol(c *gin.Context) {
	index, err := h.marketSvc.GetIndexBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, index)
}
