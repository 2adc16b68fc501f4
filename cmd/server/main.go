package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/imec-intel/hub/internal/config"
	"github.com/imec-intel/hub/internal/server"
	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/logger/console"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		console.NewConsoleLogger(console.ConsoleLoggerParams{}).Fatal("Invalid configuration", "err", err)
	}

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
		Prefix: "api",
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
