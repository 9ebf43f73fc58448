package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "gridvolt/backend/libs/config"

	"gridvolt/backend/services/asset-service/internal/connector"
)

const (
	defaultPort             = "8085"
	defaultConnectorTimeout = 10 * time.Second
	defaultLockTTL          = 30 * time.Second
)

// Config defines asset service configuration. The connections list is
// YAML-only; everything else can be overridden from the environment.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"ASSET_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"ASSET_POSTGRES_DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"ASSET_POSTGRES_MAX_OPEN_CONNS"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"ASSET_REDIS_ADDR"`
		Password string `yaml:"password" env:"ASSET_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"ASSET_REDIS_DB"`
		LockTTL  string `yaml:"lock_ttl" env:"ASSET_REDIS_LOCK_TTL"`
	} `yaml:"redis"`
	Connectors struct {
		Timeout     string                       `yaml:"timeout" env:"ASSET_CONNECTOR_TIMEOUT"`
		Connections []connector.ConnectionConfig `yaml:"connections" env:"-"`
	} `yaml:"connectors"`
}

// Load configuration using shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs after hydration via the shared loader.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn required")
	}
	if _, err := c.ConnectorTimeout(); err != nil {
		return err
	}
	if _, err := c.RedisLockTTL(); err != nil {
		return err
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// ConnectorTimeout returns the per-call connector deadline.
func (c *Config) ConnectorTimeout() (time.Duration, error) {
	return parseDuration(c.Connectors.Timeout, defaultConnectorTimeout, "connectors.timeout")
}

// RedisLockTTL returns the retrieval lock expiry.
func (c *Config) RedisLockTTL() (time.Duration, error) {
	return parseDuration(c.Redis.LockTTL, defaultLockTTL, "redis.lock_ttl")
}

func parseDuration(value string, fallback time.Duration, name string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", name)
	}
	return d, nil
}
