package locker

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// writerWeight is the semaphore weight of an exclusive lock; readers take 1.
const writerWeight = 1 << 20

type localEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// LocalLocker is an in-process keyed RW lock. Entries are dropped once no
// goroutine holds or waits for them. Waiters are served in FIFO order, so a
// writer is not starved by a stream of readers.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	return l.acquire(ctx, key, writerWeight)
}

func (l *LocalLocker) RLock(ctx context.Context, key string) (Unlock, error) {
	return l.acquire(ctx, key, 1)
}

func (l *LocalLocker) acquire(ctx context.Context, key string, weight int64) (Unlock, error) {
	e := l.ref(key)
	if err := e.sem.Acquire(ctx, weight); err != nil {
		l.unref(key)
		return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(weight)
			l.unref(key)
		})
	}, nil
}

func (l *LocalLocker) ref(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{sem: semaphore.NewWeighted(writerWeight)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
