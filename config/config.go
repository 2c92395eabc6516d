// Package config loads runtime settings from the environment, after merging
// an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	MongoURL string `env:"MONGO_URL,required,notEmpty"`
	DBName   string `env:"DB_NAME,required,notEmpty"`

	SecretKey  string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Optional startup seed; both must be set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	DefaultReadLimit int  `env:"DEFAULT_READ_QUERY_LIMIT" envDefault:"50"`
	MaxReadLimit     int  `env:"READ_QUERY_MAX_LIMIT" envDefault:"200"`
	ValidateImages   bool `env:"VALIDATE_IMAGES" envDefault:"true"`
	MaxImageSizeMB   int  `env:"MAX_UPLOAD_SIZE_MB" envDefault:"5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}
	return Parse()
}

// Parse maps the current environment onto a Config without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)
	if cfg.DefaultReadLimit < 1 {
		cfg.DefaultReadLimit = 50
	}
	if cfg.MaxReadLimit < cfg.DefaultReadLimit {
		cfg.MaxReadLimit = cfg.DefaultReadLimit
	}
	return cfg, nil
}

// SeedAdmin reports whether a startup admin account was configured.
func (c *Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// AllowAllOrigins is true when ALLOWED_ORIGINS is "*" or empty.
func (c *Config) AllowAllOrigins() bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
