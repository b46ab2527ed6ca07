// Package config handles configuration for the server component: defaults,
// then environment (including an optional .env file), then a JSON file,
// then command-line flags. Later sources win.
package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the habitcheck server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - DatabaseDriver: "sqlite" or "postgres".
//   - DatabaseDSN: driver-specific data source name.
//   - AdminUsername / AdminToken: the bootstrap admin. An empty token seeds
//     the default on first start and never rewrites an existing admin.
//   - ShutdownTimeout: how long in-flight requests may drain on stop.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDriver   string
	DatabaseDSN      string
	AdminUsername    string
	AdminToken       string
	ShutdownTimeout  time.Duration
	LogLevel         string
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3001"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:habitcheck.db?_pragma=busy_timeout(5000)"
	c.AdminUsername = "Pascal"
	c.AdminToken = ""
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.EndpointAddrHTTP == "":
		return errors.New("http address is empty")
	case c.DatabaseDSN == "":
		return errors.New("database dsn is empty")
	case c.AdminUsername == "":
		return errors.New("admin username is empty")
	case c.ShutdownTimeout <= 0:
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

// LoadConfig builds a Config from args (os.Args[1:] in production).
// A missing .env file is not an error.
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, lookupEnv)
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
