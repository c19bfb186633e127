// Lamont.ai | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordUsesFixedCost(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, BcryptCost, cost)
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	second, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword("correct horse battery", first))
	require.True(t, VerifyPassword("correct horse battery", second))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	require.True(t, VerifyPassword("correct horse battery", hash))
	require.False(t, VerifyPassword("wrong password", hash))
	require.False(t, VerifyPassword("correct horse battery", "not-a-hash"))
	require.False(t, VerifyPassword("correct horse battery", ""))
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	require.True(t, VerifyPasswordTimingSafe("correct horse battery", &hash))
	require.False(t, VerifyPasswordTimingSafe("wrong password", &hash))

	// no stored hash never verifies, whatever the password
	require.False(t, VerifyPasswordTimingSafe("anything", nil))
	empty := ""
	require.False(t, VerifyPasswordTimingSafe("anything", &empty))
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(32)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := GenerateSecureToken(32)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
