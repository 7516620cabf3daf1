package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when another process holds the data lock for
// longer than the configured timeout.
var ErrLockTimeout = errors.New("timed out waiting for data lock")

// Locker serialises read-modify-write cycles across processes.
type Locker interface {
	Lock() (unlock func(), err error)
}

const (
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// FileLock is a Locker backed by an flock(2) on a sidecar file. The mutex
// serialises goroutines sharing one FileLock, since flock only excludes
// other open file descriptions.
type FileLock struct {
	mu      sync.Mutex
	lock    *flock.Flock
	timeout time.Duration
}

// NewFileLock creates a lock on path. The file is created on first use.
func NewFileLock(path string, timeout time.Duration) *FileLock {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &FileLock{lock: flock.New(path), timeout: timeout}
}

// LockPath returns the sidecar lock file used for a database path.
func LockPath(dbPath string) string {
	return dbPath + ".lock"
}

// Lock acquires the lock, retrying until the timeout elapses.
func (l *FileLock) Lock() (func(), error) {
	l.mu.Lock()
	unlock, err := l.acquire()
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}
	return func() {
		unlock()
		l.mu.Unlock()
	}, nil
}

func (l *FileLock) acquire() (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	for i := 0; i < lockMaxRetries; i++ {
		locked, err := l.lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return func() { _ = l.lock.Unlock() }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(lockRetryDelay):
		}
	}
	return nil, ErrLockTimeout
}

// NopLock is a Locker for single-process use and tests.
type NopLock struct{}

func (NopLock) Lock() (func(), error) { return func() {}, nil }
