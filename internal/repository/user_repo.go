package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/stockdash/stockdash/internal/database"
	"github.com/stockdash/stockdash/internal/models"
)

const userColumns = `id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in`

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates or refreshes a user row keyed by open id. Optional identity
// fields only overwrite when present; role never downgrades an existing
// admin. A query failure propagates: losing the login identity is fatal to
// the login flow, unlike every other store write.
func (r *UserRepository) Upsert(ctx context.Context, identity *models.UserIdentity, role string) (*models.User, error) {
	if identity.OpenID == "" {
		return nil, errors.New("user open id is required for upsert")
	}

	pool := r.db.Pool()
	if pool == nil {
		log.Warn("users: cannot upsert, store unavailable")
		return nil, nil
	}

	query := `
		INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (open_id) DO UPDATE
		SET name = COALESCE(EXCLUDED.name, users.name),
		    email = COALESCE(EXCLUDED.email, users.email),
		    login_method = COALESCE(EXCLUDED.login_method, users.login_method),
		    role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
		    last_signed_in = now(),
		    updated_at = now()
		RETURNING ` + userColumns + `
	`
	u := &models.User{}
	err := pool.QueryRow(ctx, query,
		identity.OpenID, identity.Name, identity.Email, identity.LoginMethod, role,
	).Scan(
		&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return u, nil
}

// GetByOpenID retrieves a user by open id. Absence is nil, not an error.
func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	pool := r.db.Pool()
	if pool == nil {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE open_id = $1 LIMIT 1`
	u := &models.User{}
	err := pool.QueryRow(ctx, query, openID).Scan(
		&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role,
		&u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
