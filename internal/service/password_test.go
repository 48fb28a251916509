package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("pw123")
	require.NoError(t, err)
	assert.NotContains(t, digest, "pw123")

	ok, err := hasher.Verify("pw123", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("pw124", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltsEachDigest(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("pw123")
	require.NoError(t, err)
	second, err := hasher.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	ok, err := NewPasswordHasher().Verify("pw123", "not-a-bcrypt-digest")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrHashing)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := NewPasswordHasher().Hash(string(long))
	assert.ErrorIs(t, err, ErrHashing)
}
