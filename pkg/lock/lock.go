// Package lock serialises inventory store operations.
//
// The store itself gives no isolation across statements, so every mutating or
// reading service call holds a lock for its duration. Memory covers a single
// process; Redis covers several processes sharing one store.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when the lock could not be taken before ctx ended.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker acquires a named lock and returns the function that releases it.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Memory is an in-process Locker with one mutex per key.
type Memory struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewMemory() *Memory {
	return &Memory{locks: make(map[string]chan struct{})}
}

// Acquire blocks until key is free or ctx is done.
func (m *Memory) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	ch, ok := m.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		m.locks[key] = ch
	}
	m.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
