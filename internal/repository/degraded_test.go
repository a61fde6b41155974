package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

// Without a reachable database every read degrades to empty and every cache
// write becomes a logged no-op. The user upsert is the deliberate exception
// on the write side; it still returns nothing here because there is no row
// to return, but it must not invent one.
func TestDegradedStoreReadsAreEmpty(t *testing.T) {
	db := database.NewFromPool(nil)
	ctx := context.Background()

	stocks := NewStockRepository(db)

	stock, err := stocks.GetBySymbol(ctx, "AAPL")
	require.NoError(t, err)
	require.Nil(t, stock)

	gainers, err := stocks.TopGainers(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, gainers)

	losers, err := stocks.TopLosers(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, losers)

	found, err := stocks.Search(ctx, "app", 10)
	require.NoError(t, err)
	require.Empty(t, found)

	indices, err := NewIndexRepository(db).GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, indices)

	news, err := NewNewsRepository(db).Latest(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, news)

	ipos, err := NewIPORepository(db).ByStatus(ctx, models.IPOStatusUpcoming, 10)
	require.NoError(t, err)
	require.Empty(t, ipos)

	items, err := NewWatchlistRepository(db).ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDegradedStoreCacheWritesAreNoOps(t *testing.T) {
	db := database.NewFromPool(nil)
	ctx := context.Background()

	err := NewStockRepository(db).Upsert(ctx, &models.Stock{Symbol: "AAPL"})
	require.NoError(t, err)

	err = NewIndexRepository(db).Upsert(ctx, &models.Index{Symbol: "^GSPC"})
	require.NoError(t, err)
}

func TestUserUpsertRequiresOpenID(t *testing.T) {
	users := NewUserRepository(database.NewFromPool(nil))

	_, err := users.Upsert(context.Background(), &models.UserIdentity{}, models.RoleUser)
	require.Error(t, err)
}
