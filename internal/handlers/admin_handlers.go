package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// AdminHandler handles admin-only maintenance endpoints
type AdminHandler struct {
	refreshSvc *services.RefreshService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(refreshSvc *services.RefreshService) *AdminHandler {
	return &AdminHandler{refreshSvc: refreshSvc}
}

// Refresh handles POST /api/admin/refresh
// @Summary Refresh cached market data from the provider
// @Description Pulls live movers and index quotes and upserts the cached tables
// @Tags admin
// @Produce json
// @Success 200 {object} models.RefreshSummary
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/admin/refresh [post]
func (h *AdminHandler) Refresh(c *gin.Context) {
	summary, err := h.refreshSvc.RefreshMarketData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}
