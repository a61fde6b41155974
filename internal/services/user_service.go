package services

import (
	"context"
	"fmt"

	"github.com/stockdash/stockdash/internal/models"
)

// UserStore is the persistence surface for user accounts.
type UserStore interface {
	Upsert(ctx context.Context, identity *models.UserIdentity, role string) (*models.User, error)
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
}

// UserService handles the upsert-on-login path and identity lookups. The one
// configured owner identity is promoted to admin on upsert; every other
// account keeps the user role.
type UserService struct {
	store       UserStore
	ownerOpenID string
}

// NewUserService creates a new UserService
func NewUserService(store UserStore, ownerOpenID string) *UserService {
	return &UserService{
		store:       store,
		ownerOpenID: ownerOpenID,
	}
}

// UpsertFromLogin persists the verified identity the OAuth portal returned.
// Unlike other store writes, failure here propagates: a login whose identity
// cannot be persisted must visibly fail.
func (s *UserService) UpsertFromLogin(ctx context.Context, identity *models.UserIdentity) (*models.User, error) {
	role := models.RoleUser
	if s.ownerOpenID != "" && identity.OpenID == s.ownerOpenID {
		role = models.RoleAdmin
	}

	user, err := s.store.Upsert(ctx, identity, role)
	if err != nil {
		return nil, fmt.Errorf("failed to persist login identity: %w", err)
	}
	return user, nil
}

// GetByOpenID returns the account for an open id, or nil when unknown.
func (s *UserService) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	user, err := s.store.GetByOpenID(ctx, openID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
