package server

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"net"
	"net/http"
	"strconv"

	"github.com/entanglion/server/internal/config"
	"github.com/entanglion/server/internal/modules/auth"
	authcommands "github.com/entanglion/server/internal/modules/auth/commands"
	authdomain "github.com/entanglion/server/internal/modules/auth/domain"
	authqueries "github.com/entanglion/server/internal/modules/auth/queries"
	"github.com/entanglion/server/internal/modules/core"
	gamesessioncommands "github.com/entanglion/server/internal/modules/game-session/commands"
	gamesessiondomain "github.com/entanglion/server/internal/modules/game-session/domain"
	"github.com/entanglion/server/internal/modules/game-session/engine"
	gamesessionqueries "github.com/entanglion/server/internal/modules/game-session/queries"
	"github.com/entanglion/server/internal/modules/game-session/store"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// game-session

	sessionStore := store.NewSessionStore(db)
	sessionEngine := engine.NewEngine(
		sessionStore,
		config.Logger,
		engine.WithLockTimeout(config.Session.LockTimeout),
		engine.WithConflictRetries(config.Session.ConflictRetries),
	)

	createSessionHandler := gamesessioncommands.NewCreateSessionCommandHandler(sessionEngine)
	err = mediator.RegisterRequestHandler[gamesessioncommands.CreateSessionCommand, gamesessiondomain.Session](
		createSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	joinSessionHandler := gamesessioncommands.NewJoinSessionCommandHandler(sessionEngine)
	err = mediator.RegisterRequestHandler[gamesessioncommands.JoinSessionCommand, gamesessioncommands.JoinSessionResponse](
		joinSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	startSessionHandler := gamesessioncommands.NewStartSessionCommandHandler(sessionEngine)
	err = mediator.RegisterRequestHandler[gamesessioncommands.StartSessionCommand, gamesessiondomain.Session](
		startSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	applyMoveHandler := gamesessioncommands.NewApplyMoveCommandHandler(sessionEngine)
	err = mediator.RegisterRequestHandler[gamesessioncommands.ApplyMoveCommand, gamesessiondomain.Session](
		applyMoveHandler,
	)
	if err != nil {
		return nil, err
	}

	listSessionsHandler := gamesessionqueries.NewListSessionsQueryHandler(db)
	err = mediator.RegisterRequestHandler[gamesessionqueries.ListSessionsQuery, []gamesessionqueries.SessionSummary](
		listSessionsHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionHandler := gamesessionqueries.NewGetSessionQueryHandler(sessionStore)
	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionQuery, gamesessiondomain.Session](
		getSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	// auth

	passwordHasher := authdomain.NewPasswordHasher(sha256.New)
	tokenIssuer := authdomain.NewTokenIssuer([]byte(config.Auth.TokenSecret), config.Auth.TokenTTL)

	registerHandler := authcommands.NewRegisterCommandHandler(db, *passwordHasher, tokenIssuer)
	err = mediator.RegisterRequestHandler[authcommands.RegisterCommand, authcommands.AuthResponse](
		registerHandler,
	)
	if err != nil {
		return nil, err
	}

	loginHandler := authcommands.NewLoginCommandHandler(db, *passwordHasher, tokenIssuer)
	err = mediator.RegisterRequestHandler[authcommands.LoginCommand, authcommands.AuthResponse](
		loginHandler,
	)
	if err != nil {
		return nil, err
	}

	getCurrentUserHandler := authqueries.NewGetCurrentUserQueryHandler(db)
	err = mediator.RegisterRequestHandler[authqueries.GetCurrentUserQuery, authdomain.User](
		getCurrentUserHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	router := chi.NewRouter()
	router.Use(core.CorrelationIDHTTPMiddleware)
	router.Use(core.LoggerHTTPMiddleware(config.Logger))

	router.Post("/auth/registrations", authcommands.HandleRegistration)
	router.Post("/auth/login", authcommands.HandleLogin)

	authenticated := auth.AuthenticationMiddleware(db, tokenIssuer)

	router.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/auth/me", authqueries.HandleGetCurrentUser)

		r.Get("/game-sessions", gamesessionqueries.HandleListSessions)
		r.Post("/game-sessions", gamesessioncommands.HandleCreateSession)
		r.Get("/game-sessions/{id}", gamesessionqueries.HandleGetSession)

		r.Put("/game-sessions/{id}/actions/join", gamesessioncommands.HandleJoinSession)
		r.Put("/game-sessions/{id}/actions/start", gamesessioncommands.HandleStartSession)
		r.Post("/game-sessions/{id}/actions/move", gamesessioncommands.HandleApplyMove)
	})

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: router,
	}

	return &HTTPServer{server: &server}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	return s.server.Close()
}
