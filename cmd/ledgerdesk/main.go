package main

import (
	"flag"
	"os"

	"ledgerdesk/internal/cli"
	"ledgerdesk/internal/config"
	"ledgerdesk/internal/log"
	"ledgerdesk/internal/tui"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	flag.Parse()

	svc := cli.InitService(logger, cfg)
	logger.Info("starting", log.FieldOperation, log.OpStartup)

	if err := tui.Run(svc, logger, flag.Arg(0)); err != nil {
		logger.Error("session failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("bye", log.FieldOperation, log.OpShutdown)
}
