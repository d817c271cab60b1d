package auth

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/entanglion/server/internal/modules/auth/domain"
	"github.com/entanglion/server/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/pkg/errors"
)

// AuthenticationMiddleware verifies the bearer token and resolves it to a
// known user. Downstream handlers receive the verified identity through
// core.Session and never touch credentials themselves.
func AuthenticationMiddleware(db *sql.DB, tokens *domain.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				core.WriteUnauthorized(w, r, nil)
				return
			}

			const query = `
				SELECT
					*
				FROM
					users
				WHERE
					id = $1;`

			user, err := tql.QuerySingle[domain.User](r.Context(), db, query, userID)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				core.WriteUnauthorized(w, r, nil)
				return
			case err != nil:
				core.WriteInternalServerError(w, r, nil)
				return
			}

			ctx := core.WithSession(r.Context(), core.ContextSession{
				UserID:      user.ID,
				DisplayName: user.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
