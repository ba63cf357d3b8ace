package synccache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/utils/synccache"
)

func TestStoreOverwritesAndExpires(t *testing.T) {
	sc := synccache.NewSyncCache[string, int](time.Hour)
	defer sc.Releases()

	sc.Store("a", 1, time.Minute)
	sc.Store("a", 2, time.Minute)
	e, ok := sc.Load("a")
	require.True(t, ok)
	require.Equal(t, 2, e.Value())

	sc.Store("b", 3, -time.Second)
	_, ok = sc.Load("b")
	require.False(t, ok)
	require.False(t, sc.Touch("b", time.Minute))
}

func TestTouchExtends(t *testing.T) {
	sc := synccache.NewSyncCache[string, int](time.Hour)
	defer sc.Releases()

	sc.Store("a", 1, time.Second)
	require.True(t, sc.Touch("a", time.Hour))
	e, ok := sc.Load("a")
	require.True(t, ok)
	require.True(t, e.ExpiresAt().After(time.Now().Add(59*time.Minute)))
}

func TestTrimCallsDeletedCallback(t *testing.T) {
	deleted := make(chan string, 1)
	sc := synccache.NewSyncCache(10*time.Millisecond, synccache.WithDeletedCallback(func(key string, _ int) {
		deleted <- key
	}))
	defer sc.Releases()

	sc.Store("gone", 1, time.Millisecond)
	select {
	case key := <-deleted:
		require.Equal(t, "gone", key)
	case <-time.After(time.Second):
		t.Fatal("expired entry was not trimmed")
	}
}
