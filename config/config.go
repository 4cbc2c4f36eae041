package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file
type Config struct {
	Port        string        `env:"PORT,default=8080"`
	GinMode     string        `env:"GIN_MODE,default=debug"`
	DBDriver    string        `env:"DB_DRIVER,default=sqlite"`
	DBSource    string        `env:"DB_SOURCE,default=food_ordering.db"`
	JWTSecret   string        `env:"JWT_SECRET,default=food_ordering_super_secret_2024"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,default=720h"`
	LogLevel    string        `env:"LOG_LEVEL,default=info"`
	LogFormat   string        `env:"LOG_FORMAT,default=text"`
	Seed        bool          `env:"SEED,default=false"`
	SeedFile    string        `env:"SEED_FILE"`
	CORSOrigins []string      `env:"CORS_ORIGINS,default=*"`
}

// Load reads .env when present and decodes the environment into a Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverMySQL)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Seed && c.GinMode == "release" {
		return errors.New("SEED must be disabled when GIN_MODE=release; the seed accounts have well-known passwords")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
