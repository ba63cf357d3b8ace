package password_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/password"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := password.NewBcrypt(bcrypt.MinCost, 2)

	digest, err := h.Hash(ctx, "correct horse")
	require.NoError(t, err)
	require.NotEqual(t, []byte("correct horse"), digest)

	cost, err := bcrypt.Cost(digest)
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)

	ok, err := h.Verify(ctx, "correct horse", digest)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify(ctx, "battery staple", digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBcryptMalformedDigest(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost, 1)
	ok, err := h.Verify(context.Background(), "x", []byte("not-a-hash"))
	require.Error(t, err)
	require.False(t, ok)
}

func TestDefaultCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, password.NewBcrypt(0, 0).Cost())
}

func TestBcryptRejectsOverlongPassword(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost, 1)
	_, err := h.Hash(context.Background(), strings.Repeat("x", password.MaxLength+1))
	require.ErrorIs(t, err, password.ErrTooLong)
}
