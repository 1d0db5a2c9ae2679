package cache

import (
	"sync"
	"time"
)

// ttlMap is a mutex-guarded map whose entries expire. A janitor goroutine
// sweeps expired entries until Close is called.
type ttlMap[V any] struct {
	mu        sync.RWMutex
	entries   map[string]ttlEntry[V]
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time // zero never expires
}

func (e ttlEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func newTTLMap[V any](sweepEvery time.Duration) *ttlMap[V] {
	m := &ttlMap[V]{
		entries:  make(map[string]ttlEntry[V]),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	m.wg.Add(1)
	go m.sweepLoop(sweepEvery)
	return m
}

func (m *ttlMap[V]) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *ttlMap[V]) get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || e.expired(m.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *ttlMap[V]) set(key string, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: m.expiry(ttl)}
}

// setIfAbsent stores value unless a live entry exists. Returns true when stored.
func (m *ttlMap[V]) setIfAbsent(key string, value V, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok && !e.expired(m.now()) {
		return false
	}
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: m.expiry(ttl)}
	return true
}

func (m *ttlMap[V]) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *ttlMap[V]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *ttlMap[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
}

func (m *ttlMap[V]) sweepLoop(every time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// Close stops the janitor. Safe to call multiple times.
func (m *ttlMap[V]) Close() error {
	m.closeOnce.Do(func() {
		close(m.stopChan)
		m.wg.Wait()
	})
	return nil
}
