package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"tasknotify/internal/config"
	"tasknotify/internal/daemon"
	"tasknotify/internal/logging"
	"tasknotify/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		return
	}
	defer st.Close()

	d, err := daemon.New(cfg, st, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}
	logger.Info("tasknotifyd running",
		logging.String("api", d.APIAddr()),
		logging.String("db", st.Path()))

	<-ctx.Done()
	logger.Info("tasknotifyd shutting down")
	d.Stop()
}
