package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/entanglion/server/internal/modules/core"
	"github.com/entanglion/server/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type ListSessionsQuery struct{}

// SessionSummary is the lobby view of a session - enough to decide whether
// it is worth joining, without the full board state.
type SessionSummary struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Status      domain.Status `json:"status"`
	CreatorID   uuid.UUID     `json:"creator_id"`
	CreatorName string        `json:"creator_name"`
	PlayerCount int           `json:"player_count"`
	MaxPlayers  int           `json:"max_players"`
	CreatedAt   time.Time     `json:"created_at"`
}

func HandleListSessions(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[ListSessionsQuery, []SessionSummary](r.Context(), ListSessionsQuery{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type sessionStateRecord struct {
	State []byte `db:"state"`
}

type ListSessionsQueryHandler struct {
	db *sql.DB
}

func NewListSessionsQueryHandler(db *sql.DB) *ListSessionsQueryHandler {
	return &ListSessionsQueryHandler{db}
}

// Handle reads persisted snapshots without going through the engine's
// serialization - listings tolerate eventual consistency with a
// concurrently-committing writer.
func (h *ListSessionsQueryHandler) Handle(
	ctx context.Context,
	request ListSessionsQuery,
) ([]SessionSummary, error) {
	const query = `
		SELECT
			state
		FROM
			game_session
		ORDER BY
			created_at DESC;`

	records, err := tql.Query[sessionStateRecord](ctx, h.db, query)
	if err != nil {
		return nil, errors.Wrap(err, "list sessions")
	}

	sessions := make([]domain.Session, 0, len(records))
	for _, record := range records {
		var session domain.Session
		if err := json.Unmarshal(record.State, &session); err != nil {
			return nil, errors.Wrap(err, "unmarshal session state")
		}
		sessions = append(sessions, session)
	}

	return core.Map(sessions, summarize), nil
}

func summarize(session domain.Session) SessionSummary {
	summary := SessionSummary{
		ID:          session.ID,
		Name:        session.Name,
		Status:      session.Status,
		CreatorID:   session.CreatorID,
		PlayerCount: len(session.Players),
		MaxPlayers:  session.MaxPlayers,
		CreatedAt:   session.CreatedAt,
	}

	for _, player := range session.Players {
		if player.UserID == session.CreatorID {
			summary.CreatorName = player.DisplayName
			break
		}
	}

	return summary
}
