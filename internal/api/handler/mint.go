// internal/api/handler/mint.go
package handler

import (
	"log/slog"
	"net/http"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/service"
	"mindmash-api/internal/util"
)

// MintHandler proxies NFT mint requests to the minting API.
type MintHandler struct {
	responder
	service service.MintService
}

// NewMintHandler creates a new MintHandler.
func NewMintHandler(svc service.MintService, logger *slog.Logger) *MintHandler {
	return &MintHandler{
		responder: newResponder(logger),
		service:   svc,
	}
}

func (h *MintHandler) respondWithError(w http.ResponseWriter, err error) {
	switch {
	case util.IsError(err, util.ErrInvalidInput):
		h.respondWithMessage(w, http.StatusBadRequest, "Invalid mint request")
	case util.IsError(err, util.ErrMintNotConfigured):
		h.respondWithMessage(w, http.StatusServiceUnavailable, "Minting is not configured")
	case util.IsError(err, util.ErrMintFailed):
		h.logger.Error("Mint failed", "error", err)
		h.respondWithMessage(w, http.StatusBadGateway, "Failed to mint NFT")
	default:
		h.logger.Error("Unhandled service error", "error", err)
		h.respondWithMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Mint handles the mint request.
// POST /nft/mint
func (h *MintHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req domain.MintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	resp, err := h.service.Mint(r.Context(), req)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"mint": resp,
	})
}
