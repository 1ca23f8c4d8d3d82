package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/kycreview/internal/buildinfo"
	"github.com/dmitrijs2005/kycreview/internal/client/cli"
	"github.com/dmitrijs2005/kycreview/internal/client/config"
	"github.com/dmitrijs2005/kycreview/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
