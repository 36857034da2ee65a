package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, verifier.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hashed, "wrong password"))
}

func TestNewBcryptHasherCostFallback(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	hasher = NewBcryptHasher(bcrypt.MinCost)
	assert.Equal(t, bcrypt.MinCost, hasher.cost)
}

func TestCompareRejectsGarbageHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "anything"))
}
