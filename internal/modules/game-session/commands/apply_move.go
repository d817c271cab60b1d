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

type ApplyMoveCommand struct {
	SessionID uuid.UUID     `json:"-"`
	UserID    uuid.UUID     `json:"-"`
	Action    domain.Action `json:"action"`
	Target    string        `json:"target"`
}

func (c ApplyMoveCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if c.Action == "" {
		return fmt.Errorf("missing action")
	}

	return nil
}

func HandleApplyMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command, err := core.RequestBody[ApplyMoveCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid session id"))
		return
	}

	command.SessionID = sessionID
	command.UserID = core.Session(ctx).UserID

	response, err := mediator.Send[ApplyMoveCommand, domain.Session](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ApplyMoveCommandHandler struct {
	engine *engine.Engine
}

func NewApplyMoveCommandHandler(engine *engine.Engine) *ApplyMoveCommandHandler {
	return &ApplyMoveCommandHandler{engine}
}

func (h *ApplyMoveCommandHandler) Handle(
	ctx context.Context,
	request ApplyMoveCommand,
) (domain.Session, error) {
	move := domain.Move{Action: request.Action, Target: request.Target}

	session, err := h.engine.ApplyMove(ctx, request.SessionID, request.UserID, move)
	if err != nil {
		return domain.Session{}, commandError(err)
	}

	return session, nil
}
