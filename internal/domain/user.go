// internal/domain/user.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the persisted identity record reconciled on every wallet login.
type User struct {
	ID            uuid.UUID `db:"id" json:"id"`                         // Store-assigned, immutable
	ExternalID    string    `db:"user_id" json:"user_id"`               // Unique lookup key (email or opaque id)
	WalletAddress string    `db:"wallet_address" json:"wallet_address"` // Public key of the most recent login
	DisplayName   string    `db:"display_name" json:"display_name"`     // Derived once at creation
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	LastLoginAt   time.Time `db:"last_login" json:"last_login"`
}

// UserUpdate holds the only fields a repeat login may change.
type UserUpdate struct {
	WalletAddress string
	LastLoginAt   time.Time
}

// LoginEvent is the normalized input of a wallet login.
type LoginEvent struct {
	WalletAddress string
	EmailOrID     string
}

// NewUser creates a User for a first login. CreatedAt and LastLoginAt are equal and
// truncated to the microsecond precision of timestamptz.
func NewUser(externalID, walletAddress, displayName string, now time.Time) *User {
	now = now.UTC().Truncate(time.Microsecond)
	return &User{
		ExternalID:    externalID,
		WalletAddress: walletAddress,
		DisplayName:   displayName,
		CreatedAt:     now,
		LastLoginAt:   now,
	}
}

// EmailLocalPart returns the part of s before the first "@".
// ok is false when s has no "@" or the local part is empty.
func EmailLocalPart(s string) (local string, ok bool) {
	i := strings.Index(s, "@")
	if i <= 0 {
		return "", false
	}
	return s[:i], true
}
