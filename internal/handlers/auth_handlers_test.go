package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/services"
)

type memoryUserStore struct {
	users map[string]*models.User
	fail  bool
}

func (s *memoryUserStore) Upsert(ctx context.Context, identity *models.UserIdentity, role string) (*models.User, error) {
	if s.fail {
		return nil, errors.New("connection refused")
	}
	if s.users == nil {
		s.users = map[string]*models.User{}
	}
	user, ok := s.users[identity.OpenID]
	if !ok {
		user = &models.User{ID: int64(len(s.users) + 1), OpenID: identity.OpenID, Role: role}
		s.users[identity.OpenID] = user
	}
	user.Name = identity.Name
	return user, nil
}

func (s *memoryUserStore) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	if s.fail {
		return nil, errors.New("connection refused")
	}
	return s.users[openID], nil
}

func newAuthRouter(store *memoryUserStore) *gin.Engine {
	userSvc := services.NewUserService(store, "")
	h := NewAuthHandler(userSvc, "session", 30*24*time.Hour)

	r := gin.New()
	r.Use(middleware.Identify(userSvc, "session"))
	r.GET("/api/auth/me", h.Me)
	r.POST("/api/auth/session", h.Session)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func doRequestWithCookie(t *testing.T, r *gin.Engine, method, path, name, value string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	r.ServeHTTP(w, req)
	return w
}

func TestSessionPersistsIdentityAndSetsCookie(t *testing.T) {
	store := &memoryUserStore{}
	r := newAuthRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/auth/session", `{"openId":"abc123","name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"openId":"abc123"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "session", cookies[0].Name)
	require.Equal(t, "abc123", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestSessionRejectsMissingOpenID(t *testing.T) {
	r := newAuthRouter(&memoryUserStore{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/session", `{"name":"Ada"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionStoreFailureIsVisible(t *testing.T) {
	r := newAuthRouter(&memoryUserStore{fail: true})

	w := doJSON(t, r, http.MethodPost, "/api/auth/session", `{"openId":"abc123"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal_error")
}

func TestMeAnonymousIsNull(t *testing.T) {
	r := newAuthRouter(&memoryUserStore{})

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "null", w.Body.String())
}

func TestMeResolvesSessionCookie(t *testing.T) {
	store := &memoryUserStore{}
	r := newAuthRouter(store)

	doJSON(t, r, http.MethodPost, "/api/auth/session", `{"openId":"abc123"}`)

	w := doRequestWithCookie(t, r, http.MethodGet, "/api/auth/me", "session", "abc123")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"openId":"abc123"`)
}

func TestMeIgnoresStaleCookie(t *testing.T) {
	r := newAuthRouter(&memoryUserStore{})

	w := doRequestWithCookie(t, r, http.MethodGet, "/api/auth/me", "session", "never-seen")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "null", w.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newAuthRouter(&memoryUserStore{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "session", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Less(t, cookies[0].MaxAge, 0)
}
