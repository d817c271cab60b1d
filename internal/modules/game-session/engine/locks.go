package engine

import (
	"context"
	"sync"
	"time"

	"github.com/entanglion/server/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

// sessionLocks hands out one binary semaphore per session ID. Acquisition is
// bounded - a caller that cannot get the lock in time fails with ErrBusy
// instead of queueing indefinitely.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]chan struct{}
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[uuid.UUID]chan struct{})}
}

func (l *sessionLocks) acquire(
	ctx context.Context,
	sessionID uuid.UUID,
	timeout time.Duration,
) (release func(), err error) {
	l.mu.Lock()
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = make(chan struct{}, 1)
		l.locks[sessionID] = lock
	}
	l.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-timer.C:
		return nil, domain.ErrBusy
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
