package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nijaru/yt-digest/clients"
	"github.com/nijaru/yt-digest/config"
	"github.com/nijaru/yt-digest/handlers"
	"github.com/nijaru/yt-digest/logger"
	"github.com/nijaru/yt-digest/validation"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, out, err := logger.New(logger.Options{Level: cfg.LogLevel, Debug: cfg.Debug, Dir: cfg.LogDir})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := clients.AWSConfig(ctx, cfg.Storage.Region)
	if err != nil {
		logr.WithError(err).Fatal("Failed to load AWS configuration")
	}

	repo, closeRepo, err := clients.SummaryRepository(ctx, cfg, awsCfg)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize storage")
	}

	summaries := handlers.NewSummaryHandler(repo, validation.NewValidator(cfg), cfg.Hashtags, cfg.Timeouts.Storage)
	app := handlers.NewApp(cfg, summaries, logr, out)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		logr.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			logr.WithError(err).Error("Server shutdown error")
		}

		if err := closeRepo(); err != nil {
			logr.WithError(err).Error("Storage shutdown error")
		}
	}()

	serverAddr := ":" + cfg.Server.Port
	logr.WithField("addr", serverAddr).Info("Starting read API")

	if err := app.Listen(serverAddr); err != nil && err != http.ErrServerClosed {
		logr.WithError(err).Fatal("Server error")
	}
}
