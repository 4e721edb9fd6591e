package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	encoded, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, verifyPassword("correct horse battery staple", encoded))
	assert.False(t, verifyPassword("wrong password", encoded))
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	t.Parallel()

	a, err := hashPassword("same password")
	require.NoError(t, err)
	b, err := hashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "a fresh salt per hash")
	assert.True(t, verifyPassword("same password", a))
	assert.True(t, verifyPassword("same password", b))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, verifyPassword("anything", ""))
	assert.False(t, verifyPassword("anything", "plaintext"))
	assert.False(t, verifyPassword("anything", "$bcrypt$something$else$entirely$x"))
}
