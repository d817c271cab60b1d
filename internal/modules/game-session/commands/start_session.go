package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/entanglion/server/internal/modules/core"
	"github.com/entanglion/server/internal/modules/game-session/domain"
	"github.com/entanglion/server/internal/modules/game-session/engine"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type StartSessionCommand struct {
	SessionID   uuid.UUID
	RequesterID uuid.UUID
}

func (c StartSessionCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.RequesterID == uuid.Nil {
		return fmt.Errorf("invalid RequesterID - '%s'", c.RequesterID)
	}

	return nil
}

func HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid session id"))
		return
	}

	command := StartSessionCommand{
		SessionID:   sessionID,
		RequesterID: core.Session(ctx).UserID,
	}

	response, err := mediator.Send[StartSessionCommand, domain.Session](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type StartSessionCommandHandler struct {
	engine *engine.Engine
}

func NewStartSessionCommandHandler(engine *engine.Engine) *StartSessionCommandHandler {
	return &StartSessionCommandHandler{engine}
}

func (h *StartSessionCommandHandler) Handle(
	ctx context.Context,
	request StartSessionCommand,
) (domain.Session, error) {
	session, err := h.engine.Start(ctx, request.SessionID, request.RequesterID)
	if err != nil {
		return domain.Session{}, commandError(err)
	}

	return session, nil
}
