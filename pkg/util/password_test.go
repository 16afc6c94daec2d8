package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password", hash)

	// Hashing twice yields different hashes (random salt)
	hash2, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("long-enough"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct-horse"))
	assert.False(t, VerifyPassword(hash, "wrong-horse"))
	assert.False(t, VerifyPassword("not-a-hash", "correct-horse"))
}
