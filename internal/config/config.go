// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort   = 8080
	defaultServerHost   = "0.0.0.0"
	defaultTimeout      = 30 * time.Second
	defaultTokenTTL     = 24 * time.Hour
	defaultRedisAddress = "localhost:6379"
)

// Config is the root configuration for the opsbrain backend.
type Config struct {
	Debug    bool           `env:"APP_DEBUG" yaml:"debug"`
	LogLevel string         `env:"LOG_LEVEL" yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Duration is a time.Duration that unmarshals YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string   `env:"SERVER_HOST" yaml:"host"`
	Port         int      `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	CORSOrigins  []string `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// DatabaseConfig holds the data store target. URL is the single connection
// string; when empty the service runs in degraded mode (empty reads, no-op
// writes) so local tooling can run without a live database.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" yaml:"url"`
}

// AuthConfig holds session signing and the privileged bootstrap identity.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
	// OwnerOpenID is the external identity that is granted the owner role
	// automatically on sign-in.
	OwnerOpenID string   `env:"OWNER_OPEN_ID" yaml:"owner_open_id"`
	TokenTTL    Duration `yaml:"token_ttl"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

// Validate checks required fields after defaults are applied. The database
// URL is deliberately not required.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	return nil
}

// Load reads the YAML config at path, applies defaults, then applies
// environment variable overrides (env always wins). A missing config file is
// not an error; the service can run entirely from environment variables.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config: %w", unmarshalErr)
		}
	case os.IsNotExist(err):
		// Defaults plus env only.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	setDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(defaultTimeout)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(defaultTimeout)
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = Duration(defaultTokenTTL)
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
}
