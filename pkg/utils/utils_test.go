package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-Pass", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, CheckPasswordHash("s3cret-Pass", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", hash))
}

func TestIsEmail(t *testing.T) {
	for email, want := range map[string]bool{
		"jose.lema@example.com":       true,
		"marianela@sub.domain.com.ec": true,
		"not-an-email":                false,
		"Jose <jose@example.com>":     false,
		"@example.com":                false,
		"":                            false,
	} {
		assert.Equal(t, want, IsEmail(email), email)
	}
}
