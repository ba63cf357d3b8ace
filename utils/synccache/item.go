package synccache

import (
	"sync/atomic"
	"time"
)

type Entry[V any] struct {
	expiration atomic.Int64
	value      V
}

func NewEntry[V any](value V, expire time.Duration) *Entry[V] {
	e := &Entry[V]{value: value}
	e.expiration.Store(time.Now().Add(expire).UnixNano())
	return e
}

func (e *Entry[V]) Value() V {
	return e.value
}

func (e *Entry[V]) ExpiresAt() time.Time {
	return time.Unix(0, e.expiration.Load())
}

func (e *Entry[V]) IsExpired() bool {
	return time.Now().After(e.ExpiresAt())
}

func (e *Entry[V]) SetExpiration(t time.Time) {
	e.expiration.Store(t.UnixNano())
}
