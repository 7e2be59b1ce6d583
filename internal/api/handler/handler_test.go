// internal/api/handler/handler_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/util"
)

// MockLoginService is a mock implementation of service.LoginService.
type MockLoginService struct {
	mock.Mock
}

func (m *MockLoginService) ResolveLogin(ctx context.Context, event domain.LoginEvent) (*domain.User, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockLoginService) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockMintService is a mock implementation of service.MintService.
type MockMintService struct {
	mock.Mock
}

func (m *MockMintService) Mint(ctx context.Context, req domain.MintRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Reply(ctx context.Context, message string) (*domain.ChatReply, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatReply), args.Error(1)
}

func serve(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCallback(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, time.Second, nil)
		user := &domain.User{ID: uuid.New(), ExternalID: "demo@mindmash.ai", WalletAddress: "8ZaD...Kq9V", DisplayName: "demo", CreatedAt: created, LastLoginAt: created}

		svc.On("ResolveLogin", mock.Anything, domain.LoginEvent{WalletAddress: "8ZaD...Kq9V", EmailOrID: "demo@mindmash.ai"}).
			Return(user, nil).Once()

		rec := serve(h.Callback, http.MethodPost, "/auth/callback",
			`{"user":{"email":"demo@mindmash.ai","id":"did:privy:1","wallet":{"publicKey":"8ZaD...Kq9V"}}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		got := decodeBody(t, rec)["user"].(map[string]interface{})
		assert.Equal(t, user.ID.String(), got["id"])
		assert.Equal(t, "demo@mindmash.ai", got["user_id"])
		assert.Equal(t, "8ZaD...Kq9V", got["wallet_address"])
		assert.Equal(t, "demo", got["display_name"])
		assert.Equal(t, "2026-03-01T10:00:00Z", got["created_at"])
		assert.Equal(t, "2026-03-01T10:00:00Z", got["last_login"])
		svc.AssertExpectations(t)
	})

	t.Run("FallsBackToID", func(t *testing.T) {
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, time.Second, nil)

		svc.On("ResolveLogin", mock.Anything, domain.LoginEvent{WalletAddress: "K1", EmailOrID: "did:privy:1"}).
			Return(&domain.User{ExternalID: "did:privy:1"}, nil).Once()

		rec := serve(h.Callback, http.MethodPost, "/auth/callback", `{"user":{"id":"did:privy:1","wallet":{"publicKey":"K1"}}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("StoreWorkIsBounded", func(t *testing.T) {
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, 50*time.Millisecond, nil)

		svc.On("ResolveLogin", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				deadline, ok := ctx.Deadline()
				assert.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			}).
			Return(&domain.User{}, nil).Once()

		rec := serve(h.Callback, http.MethodPost, "/auth/callback", `{"user":{"id":"x","wallet":{"publicKey":"K1"}}}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	invalid := map[string]string{
		"EmptyBody":       ``,
		"Malformed":       `{"user":`,
		"MissingUser":     `{}`,
		"MissingWallet":   `{"user":{"email":"demo@mindmash.ai"}}`,
		"EmptyPublicKey":  `{"user":{"email":"demo@mindmash.ai","wallet":{"publicKey":""}}}`,
		"NoEmailNorID":    `{"user":{"wallet":{"publicKey":"K1"}}}`,
		"WrongFieldTypes": `{"user":{"email":42,"wallet":{"publicKey":"K1"}}}`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			svc := new(MockLoginService)
			h := NewAuthHandler(svc, time.Second, nil)

			rec := serve(h.Callback, http.MethodPost, "/auth/callback", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid user data", decodeBody(t, rec)["error"])
			svc.AssertNotCalled(t, "ResolveLogin", mock.Anything, mock.Anything)
		})
	}

	failures := []struct {
		name    string
		err     error
		message string
	}{
		{"CreateFailed", fmt.Errorf("resolve login: %w: %w", util.ErrUserCreateFailed, util.ErrStoreUnavailable), "Failed to create user"},
		{"UpdateFailed", fmt.Errorf("resolve login: %w: %w", util.ErrUserUpdateFailed, util.ErrNotFound), "Failed to update user"},
		{"LookupFailed", fmt.Errorf("resolve login: %w", util.ErrStoreUnavailable), "Internal server error"},
		{"Unknown", errors.New("boom"), "Internal server error"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockLoginService)
			h := NewAuthHandler(svc, time.Second, nil)
			svc.On("ResolveLogin", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := serve(h.Callback, http.MethodPost, "/auth/callback", `{"user":{"email":"a@b.c","wallet":{"publicKey":"K1"}}}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.message, body["error"])
			assert.NotContains(t, rec.Body.String(), "identity store")
		})
	}
}

func TestListRecentHandler(t *testing.T) {
	t.Run("DefaultLimit", func(t *testing.T) {
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, time.Second, nil)
		svc.On("ListRecent", mock.Anything, 10).Return([]domain.User{{ExternalID: "a"}, {ExternalID: "b"}}, nil).Once()

		rec := serve(h.ListRecent, http.MethodGet, "/users/recent", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(10), body["limit"])
		assert.Len(t, body["data"], 2)
	})

	t.Run("ClampedLimit", func(t *testing.T) {
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, time.Second, nil)
		svc.On("ListRecent", mock.Anything, 100).Return([]domain.User{}, nil).Once()

		rec := serve(h.ListRecent, http.MethodGet, "/users/recent?limit=5000", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(100), decodeBody(t, rec)["limit"])
		svc.AssertExpectations(t)
	})

	t.Run("StoreError", func(t *testing.T) {
		var logs bytes.Buffer
		svc := new(MockLoginService)
		h := NewAuthHandler(svc, time.Second, slog.New(slog.NewJSONHandler(&logs, nil)))
		svc.On("ListRecent", mock.Anything, 3).Return(nil, util.ErrStoreUnavailable).Once()

		rec := serve(h.ListRecent, http.MethodGet, "/users/recent?limit=3", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
		assert.Contains(t, logs.String(), `"msg":"List recent users failed"`)
		assert.NotContains(t, logs.String(), "Login failed")
	})
}

func TestMintHandler(t *testing.T) {
	body := `{"wallet":"8ZaD...Kq9V","name":"Node","image":"https://x/y.png","royalty":"5.5"}`

	t.Run("Success", func(t *testing.T) {
		svc := new(MockMintService)
		h := NewMintHandler(svc, nil)
		svc.On("Mint", mock.Anything, mock.MatchedBy(func(req domain.MintRequest) bool {
			return req.Wallet == "8ZaD...Kq9V" && req.SellerFeeBasisPoints() == 550
		})).Return(json.RawMessage(`{"id":"m1"}`), nil).Once()

		rec := serve(h.Mint, http.MethodPost, "/nft/mint", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"mint":{"id":"m1"}}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	cases := []struct {
		name    string
		body    string
		err     error
		code    int
		message string
	}{
		{"Malformed", `{`, nil, http.StatusBadRequest, "Invalid mint request"},
		{"Invalid", body, util.ErrInvalidInput, http.StatusBadRequest, "Invalid mint request"},
		{"NotConfigured", body, util.ErrMintNotConfigured, http.StatusServiceUnavailable, "Minting is not configured"},
		{"Upstream", body, fmt.Errorf("mint: %w: %w", util.ErrMintFailed, errors.New("status 500")), http.StatusBadGateway, "Failed to mint NFT"},
		{"Unknown", body, errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockMintService)
			h := NewMintHandler(svc, nil)
			if tc.err != nil {
				svc.On("Mint", mock.Anything, mock.Anything).Return(nil, tc.err).Once()
			}

			rec := serve(h.Mint, http.MethodPost, "/nft/mint", tc.body)

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.message, decodeBody(t, rec)["error"])
		})
	}
}

func TestChatHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockChatService)
		h := NewChatHandler(svc, nil)
		svc.On("Reply", mock.Anything, "hello").Return(&domain.ChatReply{Reply: "hi", Fallback: true}, nil).Once()

		rec := serve(h.Chat, http.MethodPost, "/chat", `{"message":"hello"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"reply":"hi","fallback":true}`, rec.Body.String())
	})

	t.Run("Empty", func(t *testing.T) {
		svc := new(MockChatService)
		h := NewChatHandler(svc, nil)
		svc.On("Reply", mock.Anything, "").Return(nil, util.ErrInvalidInput).Once()

		rec := serve(h.Chat, http.MethodPost, "/chat", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Message is required", decodeBody(t, rec)["error"])
	})

	t.Run("Malformed", func(t *testing.T) {
		svc := new(MockChatService)
		h := NewChatHandler(svc, nil)

		rec := serve(h.Chat, http.MethodPost, "/chat", `not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
	})
}
