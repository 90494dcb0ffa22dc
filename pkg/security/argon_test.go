package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))

	ok, err := h.Verify("correct horse battery staple", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("same input")
	require.NoError(t, err)

	second, err := h.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher()

	for _, digest := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=2$short",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
	} {
		ok, err := h.Verify("anything", digest)
		assert.False(t, ok, "digest %q", digest)
		assert.ErrorIs(t, err, ErrMalformedDigest, "digest %q", digest)
	}
}

func TestVerifyHonorsEmbeddedParams(t *testing.T) {
	weak := &Hasher{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	digest, err := weak.Hash("password123")
	require.NoError(t, err)

	// A hasher with different costs must still verify the old digest
	ok, err := NewHasher().Verify("password123", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}
