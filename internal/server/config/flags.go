package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/flagx"
)

// parseFlags overlays command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3001")
//	-t string   database driver, sqlite or postgres
//	-d string   database DSN
//	-u string   admin username
//	-k string   admin token
//	-w int      shutdown timeout, seconds
//	-l string   log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-u", "-k", "-w", "-l"})

	fs := flag.NewFlagSet("habitcheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (sqlite, postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AdminUsername, "u", config.AdminUsername, "admin username")
	fs.StringVar(&config.AdminToken, "k", config.AdminToken, "admin token")
	shutdown := fs.Int("w", int(config.ShutdownTimeout/time.Second), "shutdown timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
		}
	})
	return nil
}
