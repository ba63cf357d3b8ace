package session

import (
	"context"
	"time"

	"github.com/synctv-org/authd/utils/synccache"
)

// MemoryBackend keeps sessions in process. Sessions do not survive a
// restart and are not shared between replicas.
type MemoryBackend struct {
	cache *synccache.SyncCache[string, uint]
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend(trim time.Duration) *MemoryBackend {
	if trim <= 0 {
		trim = time.Minute
	}
	return &MemoryBackend{cache: synccache.NewSyncCache[string, uint](trim)}
}

func (m *MemoryBackend) Put(_ context.Context, id string, userID uint, ttl time.Duration) error {
	m.cache.Store(id, userID, ttl)
	return nil
}

func (m *MemoryBackend) Get(_ context.Context, id string) (uint, error) {
	e, ok := m.cache.Load(id)
	if !ok {
		return 0, ErrNotFound
	}
	return e.Value(), nil
}

func (m *MemoryBackend) Touch(_ context.Context, id string, ttl time.Duration) error {
	if !m.cache.Touch(id, ttl) {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemoryBackend) Close() {
	m.cache.Releases()
}
