package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	t.Run("hash verifies and is not the raw password", func(t *testing.T) {
		hash, err := hasher.Hash("longenough1")
		require.NoError(t, err)
		assert.NotEqual(t, "longenough1", hash)
		assert.True(t, hasher.Verify("longenough1", hash))
	})

	t.Run("uses work factor 10", func(t *testing.T) {
		hash, err := hasher.Hash("longenough1")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, PasswordCost, cost)
	})

	t.Run("same password is salted differently", func(t *testing.T) {
		h1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		h2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("single character mutations fail", func(t *testing.T) {
		password := "longenough1"
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		for i := range password {
			mutated := []byte(password)
			mutated[i]++
			assert.False(t, hasher.Verify(string(mutated), hash), "mutation at %d", i)
		}
		assert.False(t, hasher.Verify(password[:len(password)-1], hash))
		assert.False(t, hasher.Verify(password+"x", hash))
	})

	t.Run("malformed hash is a mismatch", func(t *testing.T) {
		assert.False(t, hasher.Verify("password", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("password", ""))
	})

	t.Run("passwords over 72 bytes hash and keep every byte", func(t *testing.T) {
		long := strings.Repeat("p", 80)
		hash, err := hasher.Hash(long)
		require.NoError(t, err)
		assert.True(t, hasher.Verify(long, hash))
		assert.False(t, hasher.Verify(strings.Repeat("p", 79)+"q", hash), "bytes past 72 are significant")
		assert.False(t, hasher.Verify(strings.Repeat("p", 72), hash))
	})

	t.Run("72-byte passwords go to bcrypt unchanged", func(t *testing.T) {
		exact := strings.Repeat("p", 72)
		hash, err := bcrypt.GenerateFromPassword([]byte(exact), bcrypt.MinCost)
		require.NoError(t, err)
		assert.True(t, hasher.Verify(exact, string(hash)))
	})
}
