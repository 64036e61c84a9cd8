package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Verify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	for _, plain := range []string{"", "a", "correct horse battery staple", "pässwörd", strings.Repeat("x", MaxPasswordBytes)} {
		digest, err := h.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, digest)
		assert.True(t, h.Verify(plain, digest), "plain %q", plain)
	}
}

func TestBcryptHasher_VerifyOther(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	digest, err := h.Hash("secret-one")
	require.NoError(t, err)

	assert.False(t, h.Verify("secret-two", digest))
	assert.False(t, h.Verify("Secret-one", digest))
	assert.False(t, h.Verify("secret-one", "not-a-bcrypt-digest"))
}

func TestBcryptHasher_Salted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, err := h.Hash("same input")
	require.NoError(t, err)
	second, err := h.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same input", first))
	assert.True(t, h.Verify("same input", second))
}

func TestBcryptHasher_TooLong(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", MaxPasswordBytes+1))
	assert.Error(t, err)
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
