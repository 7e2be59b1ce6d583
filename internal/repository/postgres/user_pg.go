// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/repository"
	"mindmash-api/internal/util"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint failure.
const uniqueViolation = "23505"

const userColumns = `id, user_id, wallet_address, display_name, created_at, last_login`

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
// Methods receive the DBExecutor to run against, so the repository holds no connection.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// FindByExternalID retrieves a user by external id. Absence is not an error.
func (r *UserRepository) FindByExternalID(ctx context.Context, q repository.DBExecutor, externalID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	err := q.GetContext(ctx, &user, query, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(fmt.Sprintf("failed to find user '%s'", externalID), err)
	}
	return &user, nil
}

// Insert adds a new user and scans the store-assigned id back into it.
func (r *UserRepository) Insert(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (user_id, wallet_address, display_name, created_at, last_login)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowxContext(ctx, query,
		user.ExternalID,
		user.WalletAddress,
		user.DisplayName,
		user.CreatedAt,
		user.LastLoginAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to insert user '%s': %w", user.ExternalID, util.ErrDuplicateKey)
		}
		return storeError(fmt.Sprintf("failed to insert user '%s'", user.ExternalID), err)
	}
	return nil
}

// Update overwrites the wallet address and last login of an existing user.
// last_login never moves before created_at, even with skewed clocks across instances.
func (r *UserRepository) Update(ctx context.Context, q repository.DBExecutor, externalID string, upd domain.UserUpdate) (*domain.User, error) {
	var user domain.User
	query := `UPDATE users
              SET wallet_address = $1, last_login = GREATEST($2, created_at)
              WHERE user_id = $3
              RETURNING ` + userColumns
	err := q.GetContext(ctx, &user, query, upd.WalletAddress, upd.LastLoginAt.UTC(), externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to update user '%s': %w", externalID, util.ErrNotFound)
		}
		return nil, storeError(fmt.Sprintf("failed to update user '%s'", externalID), err)
	}
	return &user, nil
}

// ListRecent retrieves the newest users first.
func (r *UserRepository) ListRecent(ctx context.Context, q repository.DBExecutor, limit int) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`
	if err := q.SelectContext(ctx, &users, query, limit); err != nil {
		return nil, storeError("failed to list recent users", err)
	}
	return users, nil
}

func storeError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, util.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
