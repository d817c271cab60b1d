package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/entanglion/server/internal/modules/auth/domain"
	"github.com/entanglion/server/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GetCurrentUserQuery struct {
	UserID uuid.UUID
}

func (q GetCurrentUserQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

func HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := GetCurrentUserQuery{UserID: core.Session(ctx).UserID}

	response, err := mediator.Send[GetCurrentUserQuery, domain.User](ctx, query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetCurrentUserQueryHandler struct {
	db *sql.DB
}

func NewGetCurrentUserQueryHandler(db *sql.DB) *GetCurrentUserQueryHandler {
	return &GetCurrentUserQueryHandler{db}
}

func (h *GetCurrentUserQueryHandler) Handle(
	ctx context.Context,
	request GetCurrentUserQuery,
) (domain.User, error) {
	const query = `
		SELECT
			*
		FROM
			users
		WHERE
			id = $1;`

	user, err := tql.QuerySingle[domain.User](ctx, h.db, query, request.UserID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, core.NewCommandError(404, fmt.Errorf("user not found"))
	case err != nil:
		return domain.User{}, err
	}

	return user, nil
}
