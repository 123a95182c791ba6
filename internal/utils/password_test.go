package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, CheckPasswordHash("password1", digest))
	assert.False(t, CheckPasswordHash("password2", digest))
}

func TestHashPassword_DigestIsSalted(t *testing.T) {
	first, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)

	second, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)

	// per-hash salt: same plaintext must never yield the same digest
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("password1", first))
	assert.True(t, CheckPasswordHash("password1", second))
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	digest, err := HashPassword("password1", 99)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password1", digest))
}

func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty digest", digest: ""},
		{name: "garbage digest", digest: "not-a-bcrypt-hash"},
		{name: "truncated digest", digest: "$2a$10$abc"},
		{name: "plaintext stored as digest", digest: "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, CheckPasswordHash("password1", tt.digest))
			})
		})
	}
}
