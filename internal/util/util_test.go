package util

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomHandle(t *testing.T) {
	pattern := regexp.MustCompile(`^user_[a-z0-9]{5}$`)
	for i := 0; i < 50; i++ {
		h, err := RandomHandle()
		require.NoError(t, err)
		assert.Regexp(t, pattern, h)
	}
}

func TestIsError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", errors.Join(ErrUserCreateFailed, ErrStoreUnavailable))

	assert.True(t, IsError(wrapped, ErrUserCreateFailed))
	assert.True(t, IsError(wrapped, ErrStoreUnavailable))
	assert.False(t, IsError(wrapped, ErrUserUpdateFailed))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}
