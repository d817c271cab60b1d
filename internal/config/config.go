package config

import (
	"path"
	"time"

	"github.com/entanglion/server/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	AuthTokenSecretEnv = "AUTH_TOKEN_SECRET"
	AuthTokenTTLEnv    = "AUTH_TOKEN_TTL"

	SessionLockTimeoutEnv     = "SESSION_LOCK_TIMEOUT"
	SessionConflictRetriesEnv = "SESSION_CONFLICT_RETRIES"
)

type AuthConfiguration struct {
	TokenSecret string
	TokenTTL    time.Duration
}

type SessionConfiguration struct {
	// LockTimeout bounds how long a request waits for a session's lock
	// before failing as busy.
	LockTimeout     time.Duration
	ConflictRetries int
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	Auth    AuthConfiguration
	Session SessionConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)
	rootPath := env.MustGetString(RootPathEnv)

	tokenSecret := env.MustGetString(AuthTokenSecretEnv)
	tokenTTL := env.GetDurationOrDefault(AuthTokenTTLEnv, 24*time.Hour)

	lockTimeout := env.GetDurationOrDefault(SessionLockTimeoutEnv, 3*time.Second)
	conflictRetries := env.GetIntOrDefault(SessionConflictRetriesEnv, 3)

	migrationsPath := path.Join(rootPath, "db", "migrations")

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		Auth: AuthConfiguration{
			TokenSecret: tokenSecret,
			TokenTTL:    tokenTTL,
		},
		Session: SessionConfiguration{
			LockTimeout:     lockTimeout,
			ConflictRetries: conflictRetries,
		},
	}, nil
}
