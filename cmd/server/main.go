package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/habitcheck/internal/buildinfo"
	"github.com/dmitrijs2005/habitcheck/internal/logging"
	"github.com/dmitrijs2005/habitcheck/internal/server"
	"github.com/dmitrijs2005/habitcheck/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
