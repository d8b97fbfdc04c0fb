package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSealer_EmptyKey(t *testing.T) {
	_, err := NewSealer(nil)
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer([]byte("master-key"))
	require.NoError(t, err)

	sealed, err := s.Seal("owner-1", "s3cr3t")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "v1:"))
	assert.NotContains(t, sealed, "s3cr3t")

	plain, err := s.Open("owner-1", sealed)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", plain)
}

func TestSealer_FreshNonce(t *testing.T) {
	s, err := NewSealer([]byte("master-key"))
	require.NoError(t, err)

	a, err := s.Seal("owner-1", "same")
	require.NoError(t, err)
	b, err := s.Seal("owner-1", "same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_BoundToOwner(t *testing.T) {
	s, err := NewSealer([]byte("master-key"))
	require.NoError(t, err)

	sealed, err := s.Seal("owner-1", "s3cr3t")
	require.NoError(t, err)

	_, err = s.Open("owner-2", sealed)
	require.Error(t, err)
}

func TestSealer_WrongMasterKey(t *testing.T) {
	a, _ := NewSealer([]byte("key-a"))
	b, _ := NewSealer([]byte("key-b"))

	sealed, err := a.Seal("owner-1", "s3cr3t")
	require.NoError(t, err)

	_, err = b.Open("owner-1", sealed)
	require.Error(t, err)
}

func TestSealer_OpenMalformed(t *testing.T) {
	s, _ := NewSealer([]byte("master-key"))

	for _, in := range []string{"", "plain", "v2:AAAA:BBBB", "v1:***:BBBB", "v1:AAAA:***", "v1:AAAA:BBBB"} {
		_, err := s.Open("owner-1", in)
		assert.ErrorIs(t, err, ErrMalformedSeal, in)
	}
}
