package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/imec-intel/hub/internal/config"
	"github.com/imec-intel/hub/internal/queue"
	"github.com/imec-intel/hub/pkg/catalog"
	"github.com/imec-intel/hub/pkg/database"
	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/logger/console"
	pgstore "github.com/imec-intel/hub/pkg/store/pgx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		console.NewConsoleLogger(console.ConsoleLoggerParams{}).Fatal("Invalid configuration", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	// Init pgx client
	pool, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pool.Close()

	cat := catalog.New(pgstore.NewStore(pool), cfg.APIKey)

	// Init rabbitmq
	conn, err := queue.Init(cfg.RabbitMQ.URL())
	if err != nil {
		logger.Fatal("Unable to connect to RabbitMQ", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	if err := queue.Consume(ctx, ch, cat); err != nil {
		logger.Error("Consumer stopped", "err", err)
		return
	}
	logger.Info("Worker shut down")
}
