package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrNotAcquired = errors.New("booking lock not acquired")

// Locker serializes the booking check-then-act sequence for one
// (lawyer, date) calendar key.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// BookingKey names the critical section for one lawyer's calendar day.
func BookingKey(lawyerID uint, date time.Time) string {
	return fmt.Sprintf("lock:booking:%d:%s", lawyerID, date.Format("2006-01-02"))
}

// KeyedMutex is the in-process Locker, used by single-node deployments
// and tests. Unlike the redis locker it blocks instead of failing when
// the key is held.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *KeyedMutex) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m := k.get(key)
	m.Lock()
	defer m.Unlock()

	return fn(ctx)
}
