// internal/service/login_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/repository"
	"mindmash-api/internal/util"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// LoginService defines the interface for login reconciliation against the identity store.
type LoginService interface {
	ResolveLogin(ctx context.Context, event domain.LoginEvent) (*domain.User, error)
	ListRecent(ctx context.Context, limit int) ([]domain.User, error)
}

// Clock returns the current time.
type Clock func() time.Time

// HandleGenerator produces a display handle for users that sign in without an email.
type HandleGenerator func() (string, error)

// loginService implements the LoginService interface.
type loginService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	now        Clock
	newHandle  HandleGenerator
	logger     *slog.Logger
}

// NewLoginService creates a new instance of LoginService.
// A nil clock, handle generator or logger falls back to time.Now, util.RandomHandle and slog.Default.
func NewLoginService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	now Clock,
	newHandle HandleGenerator,
	logger *slog.Logger,
) LoginService {
	if now == nil {
		now = time.Now
	}
	if newHandle == nil {
		newHandle = util.RandomHandle
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &loginService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		now:        now,
		newHandle:  newHandle,
		logger:     logger,
	}
}

// ResolveLogin creates the user on first login and otherwise records the new wallet and login time.
func (s *loginService) ResolveLogin(ctx context.Context, event domain.LoginEvent) (*domain.User, error) {
	if event.WalletAddress == "" || event.EmailOrID == "" {
		return nil, util.ErrInvalidInput
	}
	externalID := event.EmailOrID

	existing, err := s.userRepo.FindByExternalID(ctx, s.dbExecutor, externalID)
	if err != nil {
		return nil, fmt.Errorf("resolve login: failed to look up user '%s': %w", externalID, err)
	}
	if existing != nil {
		return s.update(ctx, externalID, event.WalletAddress)
	}

	displayName, ok := domain.EmailLocalPart(externalID)
	if !ok {
		displayName, err = s.newHandle()
		if err != nil {
			return nil, fmt.Errorf("resolve login: %w: %w", util.ErrUserCreateFailed, err)
		}
	}

	user := domain.NewUser(externalID, event.WalletAddress, displayName, s.now())
	err = s.userRepo.Insert(ctx, s.dbExecutor, user)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "user created", "user_id", externalID, "id", user.ID)
		return user, nil
	case util.IsError(err, util.ErrDuplicateKey):
		// A concurrent first login inserted the row between our find and insert.
		s.logger.DebugContext(ctx, "insert lost race, retrying as update", "user_id", externalID)
		return s.update(ctx, externalID, event.WalletAddress)
	default:
		return nil, fmt.Errorf("resolve login: %w: %w", util.ErrUserCreateFailed, err)
	}
}

func (s *loginService) update(ctx context.Context, externalID, walletAddress string) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, s.dbExecutor, externalID, domain.UserUpdate{
		WalletAddress: walletAddress,
		LastLoginAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve login: %w: %w", util.ErrUserUpdateFailed, err)
	}
	return user, nil
}

// ClampRecentLimit maps a requested page size into [1, MaxRecentLimit]. Zero or less means DefaultRecentLimit.
func ClampRecentLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	}
	return limit
}

// ListRecent returns the newest users, at most ClampRecentLimit(limit) of them.
func (s *loginService) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	users, err := s.userRepo.ListRecent(ctx, s.dbExecutor, ClampRecentLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}
	return users, nil
}
