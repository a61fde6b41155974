package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stockdash/stockdash/internal/middleware"
	"github.com/stockdash/stockdash/internal/models"
	"github.com/stockdash/stockdash/internal/repository"
	"github.com/stockdash/stockdash/internal/services"
)

type memoryWatchlistStore struct {
	nextID  int64
	entries []models.WatchlistEntry
	stocks  map[int64]models.Stock
}

func newMemoryWatchlistStore(stockIDs ...int64) *memoryWatchlistStore {
	stocks := make(map[int64]models.Stock, len(stockIDs))
	for _, id := range stockIDs {
		stocks[id] = models.Stock{ID: id}
	}
	return &memoryWatchlistStore{nextID: 1, stocks: stocks}
}

func (s *memoryWatchlistStore) ListByUser(ctx context.Context, userID int64) ([]models.WatchlistItem, error) {
	items := []models.WatchlistItem{}
	for _, e := range s.entries {
		if e.UserID == userID {
			items = append(items, models.WatchlistItem{Entry: e, Stock: s.stocks[e.StockID]})
		}
	}
	return items, nil
}

func (s *memoryWatchlistStore) Add(ctx context.Context, userID, stockID int64) (*models.WatchlistEntry, error) {
	if _, ok := s.stocks[stockID]; !ok {
		return nil, repository.ErrStockNotFound
	}
	for _, e := range s.entries {
		if e.UserID == userID && e.StockID == stockID {
			existing := e
			return &existing, nil
		}
	}
	entry := models.WatchlistEntry{ID: s.nextID, UserID: userID, StockID: stockID, AddedAt: time.Now()}
	s.nextID++
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *memoryWatchlistStore) Remove(ctx context.Context, userID, stockID int64) error {
	for i, e := range s.entries {
		if e.UserID == userID && e.StockID == stockID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// asUser injects an authenticated user the way Identify would after resolving
// a valid session cookie.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_user", user)
		c.Next()
	}
}

func newWatchlistRouter(store *memoryWatchlistStore, user *models.User) *gin.Engine {
	h := NewWatchlistHandler(services.NewWatchlistService(store))

	r := gin.New()
	if user != nil {
		r.Use(asUser(user))
	}
	authed := r.Group("/api", middleware.RequireAuth())
	authed.GET("/watchlist", h.List)
	authed.POST("/watchlist", h.Add)
	authed.DELETE("/watchlist/:stock_id", h.Remove)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWatchlistRequiresAuth(t *testing.T) {
	r := newWatchlistRouter(newMemoryWatchlistStore(), nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/watchlist"},
		{http.MethodPost, "/api/watchlist"},
		{http.MethodDelete, "/api/watchlist/1"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
		require.Contains(t, w.Body.String(), "unauthorized")
	}
}

func TestWatchlistAddAndList(t *testing.T) {
	user := &models.User{ID: 1, OpenID: "u1", Role: models.RoleUser}
	r := newWatchlistRouter(newMemoryWatchlistStore(7), user)

	w := doJSON(t, r, http.MethodPost, "/api/watchlist", `{"stockId":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"stockId":7`)

	// Repeating the add returns the same entry rather than failing.
	w = doJSON(t, r, http.MethodPost, "/api/watchlist", `{"stockId":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/watchlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, strings.Count(w.Body.String(), `"stockId":7`))
}

func TestWatchlistAddUnknownStockIs404(t *testing.T) {
	user := &models.User{ID: 1, OpenID: "u1", Role: models.RoleUser}
	r := newWatchlistRouter(newMemoryWatchlistStore(), user)

	w := doJSON(t, r, http.MethodPost, "/api/watchlist", `{"stockId":99}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "not_found")
}

func TestWatchlistAddRejectsBadBody(t *testing.T) {
	user := &models.User{ID: 1, OpenID: "u1", Role: models.RoleUser}
	r := newWatchlistRouter(newMemoryWatchlistStore(7), user)

	w := doJSON(t, r, http.MethodPost, "/api/watchlist", `{"stockId":"seven"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchlistRemove(t *testing.T) {
	user := &models.User{ID: 1, OpenID: "u1", Role: models.RoleUser}
	store := newMemoryWatchlistStore(7)
	r := newWatchlistRouter(store, user)

	doJSON(t, r, http.MethodPost, "/api/watchlist", `{"stockId":7}`)

	w := doJSON(t, r, http.MethodDelete, "/api/watchlist/7", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	// Removing the absent pair again still succeeds.
	w = doJSON(t, r, http.MethodDelete, "/api/watchlist/7", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/watchlist/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
