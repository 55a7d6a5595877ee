package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Sessions hands out carts by key and allows one writer per key at a time.
type Sessions struct {
	store Store
	log   *zap.Logger

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessions(store Store, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{store: store, log: log, locks: map[string]*keyLock{}}
}

// With loads the cart for key and runs fn while holding the key's lock.
func (s *Sessions) With(ctx context.Context, key string, fn func(c *Cart) error) error {
	l := s.acquire(key)
	defer s.release(key, l)

	return fn(Load(ctx, s.store, key, s.log))
}

func (s *Sessions) acquire(key string) *keyLock {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *Sessions) release(key string, l *keyLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
	s.mu.Unlock()
}
