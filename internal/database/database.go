// Package database owns the connection handle to the relational store. The
// handle is acquired once at process start and injected into every repository
// that needs it; when no connection string is configured (or the connect
// fails) the handle stays usable in a degraded mode where Pool() returns nil
// and store-backed reads render empty results.
package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DB wraps a pgx connection pool that may be absent.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to the store at url. An empty url or a failed connect is not
// an error: the returned handle is degraded and every dependent read yields
// empty results, so tooling can run without a live store.
func New(ctx context.Context, url string) *DB {
	if url == "" {
		log.Warn("database: DATABASE_URL not configured, store-backed reads will be empty")
		return &DB{}
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Warnf("database: failed to connect: %v", err)
		return &DB{}
	}

	if err := pool.Ping(ctx); err != nil {
		log.Warnf("database: ping failed: %v", err)
		pool.Close()
		return &DB{}
	}

	log.Info("database: connected")
	return &DB{pool: pool}
}

// NewFromPool wraps an existing pool (for tests).
func NewFromPool(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Pool returns the underlying pool, or nil when the store is unavailable.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Available reports whether a live store is attached.
func (db *DB) Available() bool {
	return db.pool != nil
}

// Close releases the pool if one was acquired.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
