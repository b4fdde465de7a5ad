// Package testutil builds Server containers backed by an in-memory
// SQLite database for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/database"
	"github.com/deppfellow/starwars-api/internal/logger"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Config returns a valid configuration that needs no environment.
func Config() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			URL:          "sqlite://memory",
			MaxOpenConns: 1,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:        false,
			Capacity:       60,
			RefillTokens:   1,
			RefillInterval: time.Second,
			TTL:            10 * time.Minute,
			Prefix:         "rl",
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// OpenDB opens a private in-memory database with the full schema.
//
// The schema comes from the GORM model tags, which mirror the
// PostgreSQL migration: unique keys, foreign keys with ON DELETE
// CASCADE and the single-target check on favorites.
func OpenDB(t *testing.T, log *zerolog.Logger) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	orm, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         database.NewGormLogger(log, 0),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := orm.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes
	// transactions the way SQLite requires.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, orm.AutoMigrate(
		&model.User{},
		&model.Character{},
		&model.Planet{},
		&model.Vehicle{},
		&model.Favorite{},
	))

	db := database.NewWithORM(orm, log)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewServer returns a Server wired to a fresh in-memory database, with
// logging discarded, New Relic off and no Redis.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	log := zerolog.Nop()
	return &server.Server{
		Config:        Config(),
		Logger:        &log,
		LoggerService: logger.NewLoggerService(config.DefaultObservabilityConfig()),
		DB:            OpenDB(t, &log),
	}
}
