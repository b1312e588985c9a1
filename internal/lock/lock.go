// Package lock provides per-key mutual exclusion for in-process writers.
package lock

import (
	"context"
	"sync"
)

// MutexMap hands out one lock per key. Waiting for a lock respects context
// cancellation; once held, the lock is released only by calling the returned
// unlock func.
type MutexMap struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMutexMap() *MutexMap {
	return &MutexMap{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done.
func (m *MutexMap) Lock(ctx context.Context, key string) (unlock func(), err error) {
	s := m.acquire(key)
	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			m.release(key)
		})
	}, nil
}

// Held reports how many callers currently hold or wait on key.
func (m *MutexMap) Held(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.slots[key]; ok {
		return s.refs
	}
	return 0
}

func (m *MutexMap) acquire(key string) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	return s
}

// release drops idle slots so the map does not grow with every key ever seen.
func (m *MutexMap) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}
