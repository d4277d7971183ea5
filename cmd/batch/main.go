package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nijaru/yt-digest/clients"
	"github.com/nijaru/yt-digest/config"
	"github.com/nijaru/yt-digest/logger"
	"github.com/nijaru/yt-digest/models"
	"github.com/nijaru/yt-digest/services/dedup"
	"github.com/nijaru/yt-digest/services/filter"
	"github.com/nijaru/yt-digest/services/pipeline"
	"github.com/nijaru/yt-digest/services/record"
	"github.com/nijaru/yt-digest/services/summary"
	"github.com/nijaru/yt-digest/services/transcript"
	"github.com/nijaru/yt-digest/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	if config.GetEnv("LOCAL_RUN", "") == "true" {
		config.LoadDotEnv()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, _, err := logger.New(logger.Options{Level: cfg.LogLevel, Debug: cfg.Debug, Dir: cfg.LogDir})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := clients.AWSConfig(ctx, cfg.Storage.Region)
	if err != nil {
		logr.WithError(err).Fatal("Failed to load AWS configuration")
	}

	store := clients.SecretStore(cfg, awsCfg)

	yt, err := clients.YouTube(ctx, cfg, store)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize YouTube client")
	}

	generator, closeGenerator, err := clients.Generator(ctx, cfg, store, awsCfg)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize summary provider")
	}
	defer closeGenerator()

	repo, closeRepo, err := clients.SummaryRepository(ctx, cfg, awsCfg)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize storage")
	}
	defer closeRepo()

	archive, err := clients.ReportArchive(ctx, cfg)
	if err != nil {
		logr.WithError(err).Fatal("Failed to initialize report archive")
	}

	svc := pipeline.NewService(
		yt,
		filter.NewPopularity(cfg.Filter.MinViewCount, cfg.Filter.MinLikeCount),
		dedup.NewChecker(repo, cfg.Timeouts.Storage, logr),
		transcript.NewService(clients.Captions(cfg), transcript.Config{
			Language: cfg.Transcript.Language,
			Timeout:  cfg.Timeouts.Transcript,
		}, logr),
		summary.NewService(generator, summary.Config{
			MaxChars:           cfg.Summary.MaxChars,
			Language:           cfg.Summary.Language,
			TranscriptMaxChars: cfg.Summary.TranscriptMaxChars,
			Timeout:            cfg.Timeouts.Summary,
		}, logr),
		record.NewWriter(repo, cfg.Timeouts.Storage),
		pipeline.Config{SearchTimeout: cfg.Timeouts.Search},
		logr,
	)

	handler := newHandler(cfg, svc, archive, logr)

	if !cfg.LocalRun {
		lambda.Start(handler)
		return
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, _ := handler(runCtx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logr.WithError(err).Error("Failed to print run statistics")
	}
}

// newHandler returns the per-invocation entry point. Clients are shared across invocations.
func newHandler(cfg *config.Config, svc pipeline.Service, archive *storage.ReportArchive, logr *logrus.Logger) func(context.Context) (models.Report, error) {
	return func(ctx context.Context) (models.Report, error) {
		report := svc.Run(ctx, cfg.Hashtags)

		if archive != nil {
			archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeouts.Storage)
			defer cancel()

			key, err := archive.Save(archiveCtx, report)
			if err != nil {
				logr.WithError(err).WithField("runId", report.RunID).Error("Failed to archive run report")
			} else {
				logr.WithFields(logrus.Fields{"runId": report.RunID, "key": key}).Info("Archived run report")
			}
		}

		return report, nil
	}
}
