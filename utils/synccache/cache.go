package synccache

import (
	"time"

	"github.com/zijiren233/gencontainer/rwmap"
)

// SyncCache is a concurrent map whose entries expire. Expired entries are
// invisible to readers and are swept on every trim tick.
type SyncCache[K comparable, V any] struct {
	cache           rwmap.RWMap[K, *Entry[V]]
	deletedCallback func(key K, v V)
	ticker          *time.Ticker
	done            chan struct{}
}

type SyncCacheConfig[K comparable, V any] func(sc *SyncCache[K, V])

func WithDeletedCallback[K comparable, V any](callback func(key K, v V)) SyncCacheConfig[K, V] {
	return func(sc *SyncCache[K, V]) {
		sc.deletedCallback = callback
	}
}

func NewSyncCache[K comparable, V any](trimTime time.Duration, conf ...SyncCacheConfig[K, V]) *SyncCache[K, V] {
	sc := &SyncCache[K, V]{
		ticker: time.NewTicker(trimTime),
		done:   make(chan struct{}),
	}
	for _, c := range conf {
		c(sc)
	}
	go func() {
		for {
			select {
			case <-sc.ticker.C:
				sc.trim()
			case <-sc.done:
				return
			}
		}
	}()
	return sc
}

func (sc *SyncCache[K, V]) Releases() {
	sc.ticker.Stop()
	close(sc.done)
	sc.cache.Clear()
}

func (sc *SyncCache[K, V]) trim() {
	sc.cache.Range(func(key K, value *Entry[V]) bool {
		if value.IsExpired() {
			e, loaded := sc.cache.LoadAndDelete(key)
			if loaded && sc.deletedCallback != nil {
				sc.deletedCallback(key, e.value)
			}
		}
		return true
	})
}

// Store sets key to value, replacing any previous entry.
func (sc *SyncCache[K, V]) Store(key K, value V, expire time.Duration) {
	sc.cache.Store(key, NewEntry(value, expire))
}

func (sc *SyncCache[K, V]) Load(key K) (value *Entry[V], loaded bool) {
	e, ok := sc.cache.Load(key)
	if ok && !e.IsExpired() {
		return e, true
	}
	return nil, false
}

// Touch moves the expiry of a live entry to now+expire.
func (sc *SyncCache[K, V]) Touch(key K, expire time.Duration) bool {
	e, ok := sc.Load(key)
	if !ok {
		return false
	}
	e.SetExpiration(time.Now().Add(expire))
	return true
}

func (sc *SyncCache[K, V]) Delete(key K) {
	sc.LoadAndDelete(key)
}

func (sc *SyncCache[K, V]) LoadAndDelete(key K) (value *Entry[V], loaded bool) {
	e, loaded := sc.cache.LoadAndDelete(key)
	if loaded && !e.IsExpired() {
		return e, true
	}
	return nil, false
}
