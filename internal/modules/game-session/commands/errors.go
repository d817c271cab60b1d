package commands

import (
	"errors"

	"github.com/entanglion/server/internal/modules/core"
	"github.com/entanglion/server/internal/modules/game-session/domain"
)

// commandError translates engine/domain failures into command errors with the
// right status code. Busy and Conflict are retryable by the caller.
func commandError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return core.NewCommandError(400, err)
	case errors.Is(err, domain.ErrForbidden):
		return core.NewCommandError(403, err)
	case errors.Is(err, domain.ErrNotFound):
		return core.NewCommandError(404, err)
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrSessionFull),
		errors.Is(err, domain.ErrInvalidState):
		return core.NewCommandError(409, err)
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrConflict):
		return core.NewCommandError(503, err, core.WithReason("retry the request"))
	default:
		return core.NewCommandError(500, err)
	}
}
