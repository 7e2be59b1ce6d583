// internal/service/mint_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/util"
)

// Minter sends a mint request to the minting API.
type Minter interface {
	Mint(ctx context.Context, req domain.MintRequest) (json.RawMessage, error)
}

// MintService defines the interface for NFT minting.
type MintService interface {
	Mint(ctx context.Context, req domain.MintRequest) (json.RawMessage, error)
}

// mintService implements the MintService interface.
type mintService struct {
	minter Minter // nil when minting is not configured
}

// NewMintService creates a new instance of MintService. A nil minter disables minting.
func NewMintService(minter Minter) MintService {
	return &mintService{minter: minter}
}

// Mint validates req and relays it to the minting API.
func (s *mintService) Mint(ctx context.Context, req domain.MintRequest) (json.RawMessage, error) {
	if s.minter == nil {
		return nil, util.ErrMintNotConfigured
	}
	if !req.Valid() {
		return nil, util.ErrInvalidInput
	}
	resp, err := s.minter.Mint(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mint for wallet '%s': %w: %w", req.Wallet, util.ErrMintFailed, err)
	}
	return resp, nil
}
