package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/habitcheck/internal/flagx"
	"github.com/dmitrijs2005/habitcheck/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept "5s"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	AdminUsername    string         `json:"admin_username"`
	AdminToken       string         `json:"admin_token"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config, if any. Only keys
// present with a non-zero value replace what is already in config.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config %s: %w", jsonConfigFile, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", jsonConfigFile, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminToken, c.AdminToken)
	setString(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
