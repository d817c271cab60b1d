package queries

import (
	"context"
	"fmt"
	"net/http"

	"github.com/entanglion/server/internal/modules/core"
	"github.com/entanglion/server/internal/modules/game-session/domain"
	"github.com/entanglion/server/internal/modules/game-session/store"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GetSessionQuery struct {
	SessionID uuid.UUID
}

func (q GetSessionQuery) Validate() error {
	if q.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid session id"))
		return
	}

	response, err := mediator.Send[GetSessionQuery, domain.Session](
		r.Context(),
		GetSessionQuery{SessionID: sessionID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	store *store.SessionStore
}

func NewGetSessionQueryHandler(store *store.SessionStore) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{store}
}

func (h *GetSessionQueryHandler) Handle(
	ctx context.Context,
	request GetSessionQuery,
) (domain.Session, error) {
	session, _, err := h.store.Load(ctx, request.SessionID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Session{}, core.NewCommandError(404, err)
	case err != nil:
		return domain.Session{}, err
	}

	return session, nil
}
