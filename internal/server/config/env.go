package config

import "os"

var lookupEnv = os.LookupEnv

// parseEnv overlays values present in the environment. A variable that is
// set but empty still overrides, so ADMIN_TOKEN= disables reconciliation.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	vars := map[string]*string{
		"HTTP_ADDR":       &config.EndpointAddrHTTP,
		"DATABASE_DRIVER": &config.DatabaseDriver,
		"DATABASE_URL":    &config.DatabaseDSN,
		"ADMIN_USERNAME":  &config.AdminUsername,
		"ADMIN_TOKEN":     &config.AdminToken,
		"LOG_LEVEL":       &config.LogLevel,
	}
	for key, dst := range vars {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
}
