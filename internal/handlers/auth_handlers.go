package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

// AuthHandler handles identity endpoints. The OAuth flow itself lives in an
// external portal; this handler only consumes the verified identity the
// portal hands back and manages the session cookie.
type AuthHandler struct {
	userSvc    *services.UserService
	cookieName string
	cookieTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userSvc *services.UserService, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userSvc:    userSvc,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// Me handles GET /api/auth/me
// @Summary Get the current identity
// @Description Returns the authenticated user, or null for anonymous callers
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Session handles POST /api/auth/session
// @Summary Establish a session from a verified identity
// @Description Upserts the user for the identity the OAuth portal verified and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param identity body models.UserIdentity true "Verified identity"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/session [post]
func (h *AuthHandler) Session(c *gin.Context) {
	var identity models.UserIdentity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	user, err := h.userSvc.UpsertFromLogin(c.Request.Context(), &identity)
	if err != nil {
		// Identity persistence failure is fatal to the login flow; this is
		// the one write that does not degrade silently.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.SetCookie(h.cookieName, identity.OpenID, int(h.cookieTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.LogoutResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, models.LogoutResponse{Success: true})
}
