// Package password covers the two credential digests the API stores:
// bcrypt for account passwords, sha256 for refresh tokens looked up by
// digest.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Cost is the bcrypt cost for account passwords. Renter accounts
	// provisioned by owners get a random uuid password at the same cost.
	Cost = 12

	// MinLength is the shortest password accepted at registration
	MinLength = 8
)

// Hash hashes an account password with bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a plaintext password with a bcrypt hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken digests a refresh token for at-rest storage. Tokens are
// located by digest, never stored raw.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// MeetsPolicy reports whether a new password satisfies the registration
// policy.
func MeetsPolicy(password string) bool {
	return len(password) >= MinLength
}
