package commands

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/entanglion/server/internal/modules/core"
	"github.com/entanglion/server/internal/modules/game-session/domain"
	"github.com/entanglion/server/internal/modules/game-session/engine"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type CreateSessionCommand struct {
	CreatorID   uuid.UUID `json:"-"`
	CreatorName string    `json:"-"`
	Name        string    `json:"name"`
	MaxPlayers  int       `json:"max_players"`
}

func (c CreateSessionCommand) Validate() error {
	if c.CreatorID == uuid.Nil {
		return fmt.Errorf("invalid CreatorID - '%s'", c.CreatorID)
	}

	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	if c.MaxPlayers < 0 {
		return fmt.Errorf("invalid MaxPlayers - %d", c.MaxPlayers)
	}

	return nil
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session := core.Session(ctx)
	command.CreatorID = session.UserID
	command.CreatorName = session.DisplayName

	response, err := mediator.Send[CreateSessionCommand, domain.Session](ctx, command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "game-sessions", response.ID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateSessionCommandHandler struct {
	engine *engine.Engine
}

func NewCreateSessionCommandHandler(engine *engine.Engine) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{engine}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (domain.Session, error) {
	session, err := h.engine.Create(
		ctx,
		request.CreatorID,
		request.CreatorName,
		request.Name,
		request.MaxPlayers,
	)
	if err != nil {
		return domain.Session{}, commandError(err)
	}

	return session, nil
}
