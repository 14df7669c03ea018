// Package config loads process configuration from the environment
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// Store backends for the play command
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is everything the server and play commands read from the environment
type Config struct {
	Server   Server
	Gemini   Gemini
	Limits   Limits
	Log      Log
	Tracing  Tracing
	Store    Store
	Manifest string `env:"ALTER_EGO_MANIFEST" envDefault:"public/avatars/manifest.yaml"`
}

// Server holds listen addresses
type Server struct {
	GRPCPort     int      `env:"ALTER_EGO_GRPC_PORT" envDefault:"50051"`
	HTTPPort     int      `env:"ALTER_EGO_HTTP_PORT" envDefault:"8080"`
	AllowOrigins []string `env:"ALTER_EGO_ALLOW_ORIGINS" envSeparator:","`
}

// Gemini configures the content provider
type Gemini struct {
	APIKey     string `env:"GEMINI_API_KEY"`
	Model      string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	MaxRetries int    `env:"GEMINI_MAX_RETRIES" envDefault:"2"`

	// RequestsPerMinute paces calls to the vendor; 0 is unpaced
	RequestsPerMinute float64 `env:"GEMINI_RPM" envDefault:"0"`

	// Grounding lets persona requests use search
	Grounding bool `env:"GEMINI_GROUNDING" envDefault:"true"`
}

// Limits configures the request gate
type Limits struct {
	Window        time.Duration `env:"ALTER_EGO_RATE_WINDOW" envDefault:"60s"`
	Capacity      int           `env:"ALTER_EGO_RATE_CAPACITY" envDefault:"5"`
	SweepInterval time.Duration `env:"ALTER_EGO_RATE_SWEEP" envDefault:"5m"`

	// RedisAddr shares counters between server replicas when set
	RedisAddr string `env:"ALTER_EGO_RATE_REDIS_ADDR"`
}

// Log configures structured logging
type Log struct {
	Level  string `env:"ALTER_EGO_LOG_LEVEL" envDefault:"info"`
	Format string `env:"ALTER_EGO_LOG_FORMAT" envDefault:"json"`
}

// Tracing configures span export
type Tracing struct {
	Exporter     string `env:"ALTER_EGO_TRACE_EXPORTER" envDefault:"none"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Store selects where the play command keeps game state
type Store struct {
	Backend   string `env:"ALTER_EGO_STORE" envDefault:"sqlite"`
	Path      string `env:"ALTER_EGO_STORE_PATH" envDefault:"alter-ego.db"`
	RedisAddr string `env:"ALTER_EGO_STORE_REDIS_ADDR" envDefault:"localhost:6379"`
	DeviceID  string `env:"ALTER_EGO_DEVICE_ID"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		vb.Field("ALTER_EGO_GRPC_PORT", "must be a valid port")
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		vb.Field("ALTER_EGO_HTTP_PORT", "must be a valid port or 0 to disable")
	}
	if c.Limits.Window <= 0 {
		vb.Field("ALTER_EGO_RATE_WINDOW", "must be positive")
	}
	errors.ValidatePositive("ALTER_EGO_RATE_CAPACITY", c.Limits.Capacity, vb)
	errors.ValidateEnum("ALTER_EGO_LOG_FORMAT", c.Log.Format, []string{"json", "console"}, vb)
	errors.ValidateEnum("ALTER_EGO_TRACE_EXPORTER", c.Tracing.Exporter, []string{"none", "stdout", "otlp"}, vb)
	errors.ValidateEnum("ALTER_EGO_STORE", c.Store.Backend, []string{StoreSQLite, StoreRedis, StoreMemory}, vb)

	return vb.Build()
}
