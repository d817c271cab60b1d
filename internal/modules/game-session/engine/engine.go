package engine

import (
	"context"
	"time"

	"github.com/entanglion/server/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store is the persistence contract the engine requires. Update must fail
// with domain.ErrConflict when the persisted version no longer matches the
// one the state was loaded at.
type Store interface {
	Load(ctx context.Context, sessionID uuid.UUID) (domain.Session, int64, error)
	Insert(ctx context.Context, session domain.Session) error
	Update(ctx context.Context, session domain.Session, expectedVersion int64) error
}

const (
	DefaultLockTimeout     = 3 * time.Second
	DefaultConflictRetries = 3
)

// Engine owns the session lifecycle. All mutating operations against a
// session run the same cycle - acquire the session's lock, load the current
// state, apply a pure transition, store with a version check - so concurrent
// requests against the same session can never clobber each other's writes.
type Engine struct {
	store  Store
	logger *zap.Logger
	locks  *sessionLocks

	lockTimeout     time.Duration
	conflictRetries int
	now             func() time.Time
}

type Option func(*Engine)

func WithLockTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.lockTimeout = timeout
	}
}

func WithConflictRetries(retries int) Option {
	return func(e *Engine) {
		e.conflictRetries = retries
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(store Store, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		logger:          logger,
		locks:           newSessionLocks(),
		lockTimeout:     DefaultLockTimeout,
		conflictRetries: DefaultConflictRetries,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Create initializes a new Waiting session with the creator as its first
// player. No lock is needed - the session ID does not exist yet.
func (e *Engine) Create(
	ctx context.Context,
	creatorID uuid.UUID,
	creatorName string,
	name string,
	maxPlayers int,
) (domain.Session, error) {
	session, err := domain.NewSession(uuid.New(), creatorID, creatorName, name, maxPlayers, e.now())
	if err != nil {
		return domain.Session{}, err
	}

	if err := e.store.Insert(ctx, session); err != nil {
		return domain.Session{}, errors.Wrap(err, "insert session")
	}

	return session, nil
}

// Join adds the user to the session and returns the assigned role.
func (e *Engine) Join(
	ctx context.Context,
	sessionID uuid.UUID,
	userID uuid.UUID,
	displayName string,
) (domain.Role, domain.Session, error) {
	var role domain.Role

	session, err := e.update(ctx, sessionID, func(s *domain.Session) error {
		var err error
		role, err = s.Join(userID, displayName, e.now())
		return err
	})
	if err != nil {
		return "", domain.Session{}, err
	}

	return role, session, nil
}

// Start moves the session into InProgress on behalf of its creator.
func (e *Engine) Start(
	ctx context.Context,
	sessionID uuid.UUID,
	requesterID uuid.UUID,
) (domain.Session, error) {
	return e.update(ctx, sessionID, func(s *domain.Session) error {
		return s.Start(requesterID, e.now())
	})
}

// ApplyMove processes a single move and persists the outcome whether or not
// the game completed.
func (e *Engine) ApplyMove(
	ctx context.Context,
	sessionID uuid.UUID,
	userID uuid.UUID,
	move domain.Move,
) (domain.Session, error) {
	return e.update(ctx, sessionID, func(s *domain.Session) error {
		return s.ApplyMove(userID, move, e.now())
	})
}

// update serializes the load-transition-store cycle against the session's
// lock. Once the lock is held the operation runs to completion even if the
// caller goes away - moves are not undoable, so an accepted transition either
// commits fully or not at all, never partially.
func (e *Engine) update(
	ctx context.Context,
	sessionID uuid.UUID,
	transition func(*domain.Session) error,
) (domain.Session, error) {
	release, err := e.locks.acquire(ctx, sessionID, e.lockTimeout)
	if err != nil {
		return domain.Session{}, err
	}
	defer release()

	ctx = context.WithoutCancel(ctx)

	// The version check guards against writers outside this process. Within
	// the process the session lock already serializes updates, so conflicts
	// are rare and a couple of retries are enough.
	for attempt := 0; ; attempt++ {
		session, version, err := e.store.Load(ctx, sessionID)
		if err != nil {
			return domain.Session{}, err
		}

		if err := transition(&session); err != nil {
			return domain.Session{}, err
		}

		session.UpdatedAt = e.now()

		err = e.store.Update(ctx, session, version)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, domain.ErrConflict) || attempt >= e.conflictRetries {
			return domain.Session{}, err
		}

		e.logger.Warn(
			"session version conflict",
			zap.String("session_id", sessionID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
}
