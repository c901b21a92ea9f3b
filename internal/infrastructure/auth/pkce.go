package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// pkceVerifierBytes yields a 43 character verifier, the RFC 7636 minimum.
const pkceVerifierBytes = 32

// generatePKCEParams returns an S256 verifier/challenge pair.
func generatePKCEParams() (codeVerifier, codeChallenge string, err error) {
	buf := make([]byte, pkceVerifierBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	codeVerifier = base64.RawURLEncoding.EncodeToString(buf)
	sum := sha256.Sum256([]byte(codeVerifier))
	codeChallenge = base64.RawURLEncoding.EncodeToString(sum[:])

	return codeVerifier, codeChallenge, nil
}
