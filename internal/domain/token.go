package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewVerificationToken generates a verification token and its storable hash.
// The raw token goes into the email link only; the store keeps the hash, so a
// database leak does not expose usable links.
func NewVerificationToken() (token, hash string, err error) {
	buf := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

// HashToken returns the hex SHA-256 of a raw verification token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
