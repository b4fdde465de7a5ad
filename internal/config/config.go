// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Provide defaults for every optional setting.
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read in three passes, later passes win:
	  1. built-in defaults (confmap)
	  2. STARWARS_ prefixed keys, dot notation for nesting
	     e.g. STARWARS_SERVER.PORT -> server.port -> Config.Server.Port
	  3. the bare PORT and DB_CONNECTION_STRING variables most hosting
	     platforms inject
*/

// EnvPrefix is the prefix every application env var carries.
const EnvPrefix = "STARWARS_"

// ServiceName labels logs and traces.
const ServiceName = "starwars-api"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// URL is a complete connection string. When it is set the discrete
// host/port/user/name fields are ignored.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host" validate:"required_without=URL"`
	Port            int    `koanf:"port" validate:"required_without=URL"`
	User            string `koanf:"user" validate:"required_without=URL"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_without=URL"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// DSN returns the connection string for the database.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	// The password may contain URL delimiters.
	encodedPassword := url.QueryEscape(d.Password)

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		encodedPassword,
		hostPort,
		d.Name,
		sslMode,
	)
}

// RedisConfig contains Redis connection details.
// An empty Address disables every Redis-backed feature.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// RateLimitConfig configures the Redis token bucket in front of the API.
type RateLimitConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Capacity       int           `koanf:"capacity" validate:"min=1"`
	RefillTokens   int           `koanf:"refill_tokens" validate:"min=1"`
	RefillInterval time.Duration `koanf:"refill_interval" validate:"min=1ms"`
	TTL            time.Duration `koanf:"ttl" validate:"min=1s"`
	Prefix         string        `koanf:"prefix" validate:"required"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env": "development",

		"server.port":                 "3000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},

		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  1800,
		"database.conn_max_idle_time": 300,
		"database.auto_migrate":       true,

		"rate_limit.enabled":         true,
		"rate_limit.capacity":        60,
		"rate_limit.refill_tokens":   1,
		"rate_limit.refill_interval": "1s",
		"rate_limit.ttl":             "10m",
		"rate_limit.prefix":          "rl",

		"observability.service_name":                          ServiceName,
		"observability.environment":                           "development",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                "30s",
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"database", "redis"},
	}
}

// legacyKeys maps the unprefixed variables of the original deployment
// onto their koanf paths.
var legacyKeys = map[string]string{
	"PORT":                 "server.port",
	"DB_CONNECTION_STRING": "database.url",
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, applies observability defaults and validates
// the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// STARWARS_DATABASE.HOST -> database.host
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Returning "" makes the env provider skip the variable.
	err = k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Tracing and logging always see the same service name and environment.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
