package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasherSchemes(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	require.IsType(t, PlainHasher{}, h)

	h, err = NewHasher(" BCRYPT ")
	require.NoError(t, err)
	require.IsType(t, BcryptHasher{}, h)

	_, err = NewHasher("md5")
	require.Error(t, err)
}

func TestPlainHasherKeepsCleartext(t *testing.T) {
	h := PlainHasher{}
	stored, err := h.Hash("pw1")
	require.NoError(t, err)
	require.Equal(t, "pw1", stored)
	require.True(t, h.Matches(stored, "pw1"))
	require.False(t, h.Matches(stored, "wrong"))
}

func TestBcryptHasherSaltsAndMatches(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	first, err := h.Hash("pw1")
	require.NoError(t, err)
	second, err := h.Hash("pw1")
	require.NoError(t, err)

	require.NotEqual(t, "pw1", first)
	require.NotEqual(t, first, second)
	require.True(t, h.Matches(first, "pw1"))
	require.False(t, h.Matches(first, "wrong"))
	require.False(t, h.Matches("pw1", "pw1"))
}
