package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/internal/session"
)

func newIssuer(t *testing.T, opts ...session.IssuerOption) (*session.Issuer, *session.MemoryBackend) {
	t.Helper()
	b := session.NewMemoryBackend(time.Hour)
	t.Cleanup(b.Close)
	return session.NewIssuer(b, opts...), b
}

func TestIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t)
	require.Equal(t, session.DefaultTTL, iss.TTL())

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)
	require.NotEmpty(t, h.ID)
	require.EqualValues(t, 7, h.UserID)
	require.WithinDuration(t, time.Now().Add(session.DefaultTTL), h.ExpiresAt, time.Minute)

	got, err := iss.Resolve(ctx, h.ID)
	require.NoError(t, err)
	require.EqualValues(t, 7, got.UserID)

	_, err = iss.Resolve(ctx, "forged")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestIssueSameUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t)

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)

	again, err := iss.Issue(ctx, h.ID, 7)
	require.NoError(t, err)
	require.Equal(t, h.ID, again.ID)
}

func TestIssueRotatesOnBindingChange(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t)

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)

	other, err := iss.Issue(ctx, h.ID, 8)
	require.NoError(t, err)
	require.NotEqual(t, h.ID, other.ID)

	_, err = iss.Resolve(ctx, h.ID)
	require.ErrorIs(t, err, session.ErrNotFound)

	// An unknown id from the browser is never adopted.
	fresh, err := iss.Issue(ctx, "attacker-chosen", 7)
	require.NoError(t, err)
	require.NotEqual(t, "attacker-chosen", fresh.ID)
}

func TestDestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t)

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)

	require.NoError(t, iss.Destroy(ctx, h.ID))
	require.NoError(t, iss.Destroy(ctx, h.ID))
	require.NoError(t, iss.Destroy(ctx, ""))

	_, err = iss.Resolve(ctx, h.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestExpiredSessionIsGone(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t, session.WithTTL(20*time.Millisecond))

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	_, err = iss.Resolve(ctx, h.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestResolveRenewsLifetime(t *testing.T) {
	ctx := context.Background()
	iss, _ := newIssuer(t, session.WithTTL(200*time.Millisecond))

	h, err := iss.Issue(ctx, "", 7)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		time.Sleep(80 * time.Millisecond)
		_, err = iss.Resolve(ctx, h.ID)
		require.NoError(t, err)
	}
}

type brokenBackend struct{ session.Backend }

var errDown = errors.New("redis: connection refused")

func (brokenBackend) Put(context.Context, string, uint, time.Duration) error { return errDown }
func (brokenBackend) Get(context.Context, string) (uint, error)              { return 0, errDown }
func (brokenBackend) Delete(context.Context, string) error                   { return errDown }

func TestBackendFailuresAreStoreErrors(t *testing.T) {
	ctx := context.Background()
	iss := session.NewIssuer(brokenBackend{})

	_, err := iss.Issue(ctx, "", 7)
	var storeErr *session.StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "put", storeErr.Op)
	require.ErrorIs(t, err, errDown)

	_, err = iss.Resolve(ctx, "x")
	require.ErrorIs(t, err, errDown)
	require.NotErrorIs(t, err, session.ErrNotFound)

	require.ErrorIs(t, iss.Destroy(ctx, "x"), errDown)
}
