// internal/domain/mint.go
package domain

import (
	"github.com/shopspring/decimal"
)

// MaxRoyalty is the upper bound of a royalty percentage.
var MaxRoyalty = decimal.NewFromInt(100)

// MintRequest is a request to mint a single NFT to a wallet through the minting API.
type MintRequest struct {
	Wallet      string          `json:"wallet"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image"`
	Royalty     decimal.Decimal `json:"royalty"` // Percentage, e.g. "5.5"
}

// Valid reports whether the request has everything the minting API needs.
func (r MintRequest) Valid() bool {
	if r.Wallet == "" || r.Name == "" || r.Image == "" {
		return false
	}
	return !r.Royalty.IsNegative() && r.Royalty.LessThanOrEqual(MaxRoyalty)
}

// SellerFeeBasisPoints converts the royalty percentage to basis points, rounding half up.
func (r MintRequest) SellerFeeBasisPoints() int64 {
	return r.Royalty.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
