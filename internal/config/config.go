package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the whole application configuration, populated from
// environment variables (optionally seeded from a .env file).
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	HTTP     HTTPConfig     `envPrefix:"HTTP_"`
}

type AppConfig struct {
	Name        string `env:"NAME" envDefault:"Library API"`
	Environment string `env:"ENV" envDefault:"development"` // development, production, test
	Port        string `env:"PORT" envDefault:"8080"`
	Version     string `env:"VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type DatabaseConfig struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, postgres, memory
	DSN    string `env:"DSN" envDefault:"library.db"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`

	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"5"`
	RetryDelay     time.Duration `env:"RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`

	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`
	Seed        bool `env:"SEED" envDefault:"true"`
}

type RedisConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Host     string        `env:"HOST" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"10m"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Requests per second per client; 0 disables rate limiting.
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSOrigins    []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env file")
	}

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must be set")
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN must be set for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, postgres or memory)", c.Database.Driver)
	}

	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST must be set when REDIS_ENABLED is true")
	}

	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT_RPS must not be negative")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ShouldMigrate reports whether migrations run at startup.
func (c *Config) ShouldMigrate() bool {
	return c.Database.Driver != DriverMemory && (c.IsDevelopment() || c.Database.AutoMigrate)
}
