package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from the given plaintext
// password using the provided cost factor.
//
// The cost is an adaptive work factor: raising it makes offline brute-force
// attacks proportionally more expensive. Values outside the range supported
// by bcrypt fall back to bcrypt.DefaultCost.
//
// The plaintext never appears in any error returned from this function.
//
// Parameters:
//
//	password - plaintext password to hash
//	cost     - bcrypt cost factor (bcrypt.MinCost..bcrypt.MaxCost)
//
// Returns:
//
//	string - the bcrypt digest, including algorithm, cost, and salt
//	error  - non-nil only on resource exhaustion or an oversized password
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPasswordHash reports whether the plaintext password matches the given
// bcrypt digest.
//
// The comparison is performed by bcrypt in constant time. Any failure —
// mismatch, malformed or corrupted digest, empty digest — is reported as
// false, never as an error or a panic, so a broken stored hash behaves
// exactly like a wrong password.
func CheckPasswordHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
