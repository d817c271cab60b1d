package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/entanglion/server/internal/modules/game-session/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionRecord is the game_session row. The full session - players,
// particles, event log - lives in the state blob; the projected columns exist
// for listing and for the optimistic-concurrency version check.
type sessionRecord struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatorID uuid.UUID `db:"creator_id"`
	Version   int64     `db:"version"`
	State     []byte    `db:"state"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db}
}

func (s *SessionStore) Load(ctx context.Context, sessionID uuid.UUID) (domain.Session, int64, error) {
	const query = `
		SELECT
			*
		FROM
			game_session
		WHERE
			id = $1;`

	record, err := tql.QuerySingle[sessionRecord](ctx, s.db, query, sessionID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Session{}, 0, domain.ErrNotFound
	case err != nil:
		return domain.Session{}, 0, errors.Wrap(err, "load session")
	}

	var session domain.Session
	if err := json.Unmarshal(record.State, &session); err != nil {
		return domain.Session{}, 0, errors.Wrap(err, "unmarshal session state")
	}

	return session, record.Version, nil
}

func (s *SessionStore) Insert(ctx context.Context, session domain.Session) error {
	record, err := toRecord(session, 1)
	if err != nil {
		return err
	}

	const stmt = `
		INSERT INTO
			game_session (id, name, status, creator_id, version, state, created_at, updated_at)
		VALUES
			(:id, :name, :status, :creator_id, :version, :state, :created_at, :updated_at);`
	if _, err := tql.Exec(ctx, s.db, stmt, record); err != nil {
		return errors.Wrap(err, "insert session")
	}

	return nil
}

// Update persists the session only if the stored version still matches the
// one the caller loaded. A mismatch means another writer committed in
// between and surfaces as domain.ErrConflict.
func (s *SessionStore) Update(ctx context.Context, session domain.Session, expectedVersion int64) error {
	record, err := toRecord(session, expectedVersion+1)
	if err != nil {
		return err
	}

	const stmt = `
		UPDATE
			game_session
		SET
			name = $2, status = $3, version = $4, state = $5, updated_at = $6
		WHERE
			id = $1 AND version = $7;`
	result, err := tql.Exec(
		ctx,
		s.db,
		stmt,
		record.ID,
		record.Name,
		record.Status,
		record.Version,
		record.State,
		record.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return errors.Wrap(err, "update session")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update session")
	}

	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func toRecord(session domain.Session, version int64) (sessionRecord, error) {
	state, err := json.Marshal(session)
	if err != nil {
		return sessionRecord{}, errors.Wrap(err, "marshal session state")
	}

	return sessionRecord{
		ID:        session.ID,
		Name:      session.Name,
		Status:    string(session.Status),
		CreatorID: session.CreatorID,
		Version:   version,
		State:     state,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}
