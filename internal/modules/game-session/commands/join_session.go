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

type JoinSessionCommand struct {
	SessionID   uuid.UUID
	UserID      uuid.UUID
	DisplayName string
}

func (c JoinSessionCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

type JoinSessionResponse struct {
	Role    domain.Role    `json:"role"`
	Session domain.Session `json:"session"`
}

func HandleJoinSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid session id"))
		return
	}

	// You join someone else's session as the logged-in user.
	session := core.Session(ctx)
	command := JoinSessionCommand{
		SessionID:   sessionID,
		UserID:      session.UserID,
		DisplayName: session.DisplayName,
	}

	response, err := mediator.Send[JoinSessionCommand, JoinSessionResponse](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type JoinSessionCommandHandler struct {
	engine *engine.Engine
}

func NewJoinSessionCommandHandler(engine *engine.Engine) *JoinSessionCommandHandler {
	return &JoinSessionCommandHandler{engine}
}

func (h *JoinSessionCommandHandler) Handle(
	ctx context.Context,
	request JoinSessionCommand,
) (JoinSessionResponse, error) {
	role, session, err := h.engine.Join(ctx, request.SessionID, request.UserID, request.DisplayName)
	if err != nil {
		return JoinSessionResponse{}, commandError(err)
	}

	return JoinSessionResponse{Role: role, Session: session}, nil
}
