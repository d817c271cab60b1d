package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/entanglion/server/internal/modules/auth/domain"
	"github.com/entanglion/server/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/pkg/errors"
)

type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c LoginCommand) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("invalid Email - '%s'", c.Email)
	}

	if c.Password == "" {
		return fmt.Errorf("invalid Password")
	}

	return nil
}

func HandleLogin(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[LoginCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[LoginCommand, AuthResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type LoginCommandHandler struct {
	db             *sql.DB
	passwordHasher domain.PasswordHasher
	tokens         *domain.TokenIssuer
}

func NewLoginCommandHandler(
	db *sql.DB,
	passwordHasher domain.PasswordHasher,
	tokens *domain.TokenIssuer,
) *LoginCommandHandler {
	return &LoginCommandHandler{db, passwordHasher, tokens}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, request LoginCommand) (AuthResponse, error) {
	const query = `
		SELECT
			*
		FROM
			users
		WHERE
			email = $1;`

	user, err := tql.QuerySingle[domain.User](ctx, h.db, query, request.Email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return AuthResponse{}, core.NewCommandError(401, fmt.Errorf("invalid credentials"))
	case err != nil:
		return AuthResponse{}, core.NewCommandError(500, err, core.WithReason("failed to reach database"))
	}

	if err := user.Authenticate(request.Password, h.passwordHasher); err != nil {
		return AuthResponse{}, core.NewCommandError(401, fmt.Errorf("invalid credentials"))
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return AuthResponse{}, core.NewCommandError(500, err, core.WithReason("failed to issue token"))
	}

	return AuthResponse{Token: token, User: user}, nil
}
