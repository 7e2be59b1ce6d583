// internal/api/handler/auth.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mindmash-api/internal/api/types"
	"mindmash-api/internal/domain"
	"mindmash-api/internal/service"
	"mindmash-api/internal/util"
)

const (
	opLogin      = "Login"
	opListRecent = "List recent users"
)

// DefaultStoreTimeout bounds the identity store work of a single login.
const DefaultStoreTimeout = 5 * time.Second

// AuthHandler handles wallet login callbacks and user listings.
type AuthHandler struct {
	responder
	service      service.LoginService
	storeTimeout time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc service.LoginService, storeTimeout time.Duration, logger *slog.Logger) *AuthHandler {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &AuthHandler{
		responder:    newResponder(logger),
		service:      svc,
		storeTimeout: storeTimeout,
	}
}

// respondWithError maps login errors to responses without leaking internals.
// op names the failed operation in the log.
func (h *AuthHandler) respondWithError(w http.ResponseWriter, op string, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrInvalidPayload):
		statusCode = http.StatusBadRequest
		message = "Invalid user data"
	case util.IsError(err, util.ErrUserCreateFailed):
		message = "Failed to create user"
	case util.IsError(err, util.ErrUserUpdateFailed):
		message = "Failed to update user"
	}
	if statusCode == http.StatusInternalServerError {
		h.logger.Error(op+" failed", "error", err)
	}

	h.respondWithMessage(w, statusCode, message)
}

// CallbackWallet is the wallet object delivered by the wallet-auth provider.
type CallbackWallet struct {
	PublicKey string `json:"publicKey"`
}

// CallbackUser is the authenticated user delivered by the wallet-auth provider.
type CallbackUser struct {
	Email  string          `json:"email,omitempty"`
	ID     string          `json:"id,omitempty"`
	Wallet *CallbackWallet `json:"wallet"`
}

// CallbackRequest represents the request body for the login callback.
type CallbackRequest struct {
	User *CallbackUser `json:"user"`
}

// LoginEvent validates the request and normalizes it. The email wins over the id.
func (req CallbackRequest) LoginEvent() (domain.LoginEvent, error) {
	if req.User == nil || req.User.Wallet == nil || req.User.Wallet.PublicKey == "" {
		return domain.LoginEvent{}, util.ErrInvalidPayload
	}
	externalID := req.User.Email
	if externalID == "" {
		externalID = req.User.ID
	}
	if externalID == "" {
		return domain.LoginEvent{}, util.ErrInvalidPayload
	}
	return domain.LoginEvent{
		WalletAddress: req.User.Wallet.PublicKey,
		EmailOrID:     externalID,
	}, nil
}

// Callback handles the wallet login callback.
// POST /auth/callback
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req CallbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, opLogin, util.ErrInvalidPayload)
		return
	}

	event, err := req.LoginEvent()
	if err != nil {
		h.respondWithError(w, opLogin, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.storeTimeout)
	defer cancel()

	user, err := h.service.ResolveLogin(ctx, event)
	if err != nil {
		h.respondWithError(w, opLogin, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// ListRecent handles the recent users request.
// GET /users/recent?limit=N
func (h *AuthHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0 // Default limit
	}
	limit = service.ClampRecentLimit(limit)

	ctx, cancel := context.WithTimeout(r.Context(), h.storeTimeout)
	defer cancel()

	users, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		h.respondWithError(w, opListRecent, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ListResponse[domain.User]{
		Data:  users,
		Limit: limit,
	})
}
