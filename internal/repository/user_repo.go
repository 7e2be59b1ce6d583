// internal/repository/user_repo.go
package repository

import (
	"context"

	"mindmash-api/internal/domain"
)

// UserRepository is the identity store. Implementations must enforce uniqueness of
// ExternalID server-side so concurrent first logins surface as util.ErrDuplicateKey.
type UserRepository interface {
	// FindByExternalID returns the user with the given external id, or nil, nil when absent.
	FindByExternalID(ctx context.Context, q DBExecutor, externalID string) (*domain.User, error)
	// Insert persists a new user and fills in its ID. Fails with util.ErrDuplicateKey
	// when the external id already exists.
	Insert(ctx context.Context, q DBExecutor, user *domain.User) error
	// Update applies a repeat-login update. Fails with util.ErrNotFound when no user matches.
	Update(ctx context.Context, q DBExecutor, externalID string, upd domain.UserUpdate) (*domain.User, error)
	// ListRecent returns at most limit users, newest first.
	ListRecent(ctx context.Context, q DBExecutor, limit int) ([]domain.User, error)
}
