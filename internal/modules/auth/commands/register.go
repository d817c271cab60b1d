package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/entanglion/server/internal/modules/auth/domain"
	"github.com/entanglion/server/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
)

type RegisterCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c RegisterCommand) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	if c.Email == "" {
		return fmt.Errorf("invalid Email - '%s'", c.Email)
	}

	if c.Password == "" {
		return fmt.Errorf("invalid Password")
	}

	return nil
}

// AuthResponse is returned by both registration and login - a bearer token
// plus the user it authenticates.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func HandleRegistration(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RegisterCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[RegisterCommand, AuthResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "auth", "users", response.User.ID.String())
	core.WriteCreated(w, r, location, response)
}

type RegisterCommandHandler struct {
	db             *sql.DB
	passwordHasher domain.PasswordHasher
	tokens         *domain.TokenIssuer
}

func NewRegisterCommandHandler(
	db *sql.DB,
	passwordHasher domain.PasswordHasher,
	tokens *domain.TokenIssuer,
) *RegisterCommandHandler {
	return &RegisterCommandHandler{db, passwordHasher, tokens}
}

func (h *RegisterCommandHandler) Handle(
	ctx context.Context,
	request RegisterCommand,
) (AuthResponse, error) {
	user, err := domain.RegisterUser(
		request.Name,
		request.Email,
		request.Password,
		h.passwordHasher,
		time.Now().UTC(),
	)
	if err != nil {
		return AuthResponse{}, core.NewCommandError(400, err, core.WithReason("user registration failed"))
	}

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const existingUserQuery = `
			SELECT
				count(id)
			FROM
				users
			WHERE
				email = $1;`

		count, err := tql.QuerySingle[int](ctx, tx, existingUserQuery, request.Email)
		if err != nil {
			return core.NewCommandError(500, err, core.WithReason("failed to reach database"))
		}

		if count > 0 {
			return core.NewCommandError(409, fmt.Errorf("user already exists"))
		}

		const stmt = `
			INSERT INTO
				users (id, name, email, password_hash, created_at)
			VALUES
				(:id, :name, :email, :password_hash, :created_at);`
		if _, err := tql.Exec(ctx, tx, stmt, user); err != nil {
			return core.NewCommandError(500, err, core.WithReason("failed to create new user entry"))
		}

		return nil
	}

	if err := core.Tx(ctx, h.db, txFn); err != nil {
		return AuthResponse{}, err
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return AuthResponse{}, core.NewCommandError(500, err, core.WithReason("failed to issue token"))
	}

	return AuthResponse{Token: token, User: user}, nil
}
