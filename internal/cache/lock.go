package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/google/uuid"
)

// Locker is a best-effort mutual exclusion primitive keyed by string.
// RedisClient implements it across processes, LocalLocker within one.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLease
	nowFn func() time.Time
}

type localLease struct {
	value   string
	expires time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localLease), nowFn: time.Now}
}

func (l *LocalLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if lease, ok := l.held[key]; ok && now.Before(lease.expires) {
		return false, nil
	}
	l.held[key] = localLease{value: value, expires: now.Add(ttl)}
	return true, nil
}

func (l *LocalLocker) ReleaseLock(ctx context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lease, ok := l.held[key]; ok && lease.value == value {
		delete(l.held, key)
	}
	return nil
}

const (
	lockAttempts   = 3
	lockRetryDelay = 100 * time.Millisecond
)

// WithLock runs fn while holding key, retrying acquisition a few times before
// giving up with apperror.ErrLockBusy.
func WithLock(ctx context.Context, locker Locker, key string, ttl time.Duration, fn func() error) error {
	value := uuid.New().String()

	acquired := false
	var lastErr error
	for i := 0; i < lockAttempts; i++ {
		ok, err := locker.AcquireLock(ctx, key, value, ttl)
		if err != nil {
			lastErr = err
		}
		if ok {
			acquired = true
			break
		}
		if i < lockAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(lockRetryDelay):
			}
		}
	}
	if !acquired {
		if lastErr != nil {
			return &apperror.Error{Op: "acquireLock", Kind: apperror.ErrLockBusy, Entity: "lock", ID: key, Err: lastErr}
		}
		return &apperror.Error{Op: "acquireLock", Kind: apperror.ErrLockBusy, Entity: "lock", ID: key}
	}
	defer locker.ReleaseLock(context.WithoutCancel(ctx), key, value)

	return fn()
}
