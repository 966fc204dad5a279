package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("round trip", func(t *testing.T) {
		hashed, err := hasher.Hash("password123")
		require.NoError(t, err)

		assert.True(t, hasher.Compare(hashed, "password123"))
		assert.False(t, hasher.Compare(hashed, "password124"))
	})

	t.Run("same input hashes differently", func(t *testing.T) {
		a, err := hasher.Hash("482913")
		require.NoError(t, err)
		b, err := hasher.Hash("482913")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
		assert.True(t, hasher.Compare(a, "482913"))
		assert.True(t, hasher.Compare(b, "482913"))
	})

	t.Run("garbage hash never matches", func(t *testing.T) {
		assert.False(t, hasher.Compare("not-a-bcrypt-hash", "password123"))
	})
}
