// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input provided")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrDuplicateKey     = errors.New("duplicate key") // unique constraint on users.user_id
	ErrStoreUnavailable = errors.New("identity store unavailable")

	// Phase markers joined with the underlying cause by the login service.
	ErrUserCreateFailed = errors.New("failed to create user")
	ErrUserUpdateFailed = errors.New("failed to update user")

	ErrMintFailed        = errors.New("mint request failed")
	ErrMintNotConfigured = errors.New("minting is not configured")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
