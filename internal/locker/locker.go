// Package locker provides per-key reader/writer locks used to serialize
// operations on one printer slot without blocking other printers.
package locker

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// context was done.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Unlock releases a lock. Calling it more than once is a no-op.
type Unlock func()

// Locker hands out exclusive and shared locks keyed by an arbitrary string.
//
//go:generate mockgen -source=locker.go -destination=../mock/locker.go -package=mock
type Locker interface {
	// Lock acquires the exclusive lock for key.
	Lock(ctx context.Context, key string) (Unlock, error)

	// RLock acquires a shared lock for key. Implementations without shared
	// locks may return an exclusive one.
	RLock(ctx context.Context, key string) (Unlock, error)
}
