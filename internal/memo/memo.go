// Package memo provides a concurrent read-through cache. Factories run
// outside the lock and racing callers may compute the same key twice; the
// write lock is held only to recheck and insert, so the first value stored
// for a key is the value every later reader observes.
package memo

import "sync"

type Memo[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	keyFunc func(K) K
}

type Option[K comparable, V any] func(*Memo[K, V])

// WithKeyFunc normalizes keys before every lookup and store.
func WithKeyFunc[K comparable, V any](fn func(K) K) Option[K, V] {
	return func(m *Memo[K, V]) {
		m.keyFunc = fn
	}
}

func New[K comparable, V any](opts ...Option[K, V]) *Memo[K, V] {
	m := &Memo[K, V]{entries: map[K]V{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memo[K, V]) key(key K) K {
	if m.keyFunc == nil {
		return key
	}
	return m.keyFunc(key)
}

func (m *Memo[K, V]) Get(key K) (V, bool) {
	k := m.key(key)
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[k]
	return value, ok
}

// GetOrCompute returns the stored value for key, calling factory when no
// value exists yet.
func (m *Memo[K, V]) GetOrCompute(key K, factory func() V) V {
	value, _ := m.GetOrTryCompute(key, func() (V, error) {
		return factory(), nil
	})
	return value
}

// GetOrTryCompute is GetOrCompute for fallible factories. A failed factory
// stores nothing, so the next caller retries.
func (m *Memo[K, V]) GetOrTryCompute(key K, factory func() (V, error)) (V, error) {
	k := m.key(key)
	m.mu.RLock()
	if value, ok := m.entries[k]; ok {
		m.mu.RUnlock()
		return value, nil
	}
	m.mu.RUnlock()

	value, err := factory()
	if err != nil {
		var zero V
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[k]; ok {
		return existing, nil
	}
	m.entries[k] = value
	return value, nil
}

// Put stores value when key is absent, or when replace approves swapping out
// the existing entry. It returns the value held after the call. A nil replace
// never overwrites.
func (m *Memo[K, V]) Put(key K, value V, replace func(existing V) bool) V {
	k := m.key(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[k]; ok {
		if replace == nil || !replace(existing) {
			return existing
		}
	}
	m.entries[k] = value
	return value
}

func (m *Memo[K, V]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
