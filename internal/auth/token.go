package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenEntropyBytes is the raw entropy of every opaque token issued by
// this package, for both sessions and password resets.
const tokenEntropyBytes = 32

// NewToken returns a cryptographically random, URL-safe opaque token.
func NewToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
