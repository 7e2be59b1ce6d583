// internal/util/random.go
package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const handleAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// HandleLength is the number of random characters after the "user_" prefix.
const HandleLength = 5

// RandomHandle returns an anonymous display handle such as "user_k3x9a".
// Handles are not checked for uniqueness.
func RandomHandle() (string, error) {
	b := make([]byte, HandleLength)
	max := big.NewInt(int64(len(handleAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate handle: %w", err)
		}
		b[i] = handleAlphabet[n.Int64()]
	}
	return "user_" + string(b), nil
}
