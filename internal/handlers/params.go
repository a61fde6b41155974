package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/models"
)

// parseLimit reads the optional limit query parameter. Absent falls back to
// def; malformed or negative values are rejected with a 400 before reaching
// the core. Returns false when the request has been answered.
func parseLimit(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "limit must be a non-negative integer",
		})
		return 0, false
	}
	return limit, true
}
