// Package clients constructs the external clients shared by the batch and API binaries.
// Everything here is built once per process and injected.
package clients

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/nijaru/yt-digest/config"
	"github.com/nijaru/yt-digest/providers/bedrock"
	"github.com/nijaru/yt-digest/providers/captions"
	"github.com/nijaru/yt-digest/providers/gemini"
	"github.com/nijaru/yt-digest/providers/openai"
	"github.com/nijaru/yt-digest/providers/youtube"
	"github.com/nijaru/yt-digest/repository"
	"github.com/nijaru/yt-digest/repository/dynamodb"
	"github.com/nijaru/yt-digest/repository/sqlite"
	"github.com/nijaru/yt-digest/secrets"
	"github.com/nijaru/yt-digest/services/summary"
	"github.com/nijaru/yt-digest/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

func AWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	return cfg, nil
}

// SummaryRepository opens the configured storage backend. The returned closer is never nil.
func SummaryRepository(ctx context.Context, cfg *config.Config, awsCfg aws.Config) (repository.SummaryRepository, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, sqlite.DefaultDBConfig())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewRepository(db), db.Close, nil
	default:
		client := dynamodb.NewClient(awsCfg, cfg.Storage.Endpoint)
		repo := dynamodb.NewRepository(client, cfg.Storage.TableName, cfg.Storage.VideoIDIndex)
		return repo, func() error { return nil }, nil
	}
}

func SecretStore(cfg *config.Config, awsCfg aws.Config) secrets.Store {
	if cfg.Secrets.Source == config.SecretsEnv {
		return secrets.EnvStore{}
	}
	return secrets.NewSecretsManagerStore(secretsmanager.NewFromConfig(awsCfg))
}

func YouTube(ctx context.Context, cfg *config.Config, store secrets.Store) (*youtube.Client, error) {
	key, err := store.Get(ctx, cfg.Secrets.YouTubeSecret)
	if err != nil {
		return nil, err
	}
	return youtube.NewClient(ctx, cfg.Search.MaxResultsPerHashtag, cfg.Search.Order, option.WithAPIKey(key))
}

func Captions(cfg *config.Config) *captions.Client {
	return captions.NewClient(
		cfg.Transcript.BaseURL,
		cfg.Transcript.Language,
		cfg.Transcript.RequestInterval,
		&http.Client{Timeout: cfg.Timeouts.Transcript},
	)
}

// Generator returns the configured summary backend and a closer for it.
func Generator(ctx context.Context, cfg *config.Config, store secrets.Store, awsCfg aws.Config) (summary.Generator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Summary.Provider {
	case config.ProviderBedrock:
		bedrockCfg := awsCfg.Copy()
		bedrockCfg.Region = cfg.Summary.BedrockRegion
		client := bedrockruntime.NewFromConfig(bedrockCfg)
		return bedrock.NewClient(client, cfg.Summary.Model, cfg.Summary.MaxTokens), noop, nil

	case config.ProviderOpenAI:
		key, err := store.Get(ctx, cfg.Secrets.OpenAISecret)
		if err != nil {
			return nil, nil, err
		}
		return openai.NewClient(key, cfg.Summary.Model, cfg.Summary.MaxTokens, cfg.Summary.OpenAIBaseURL), noop, nil

	default:
		key, err := store.Get(ctx, cfg.Secrets.GeminiSecret)
		if err != nil {
			return nil, nil, err
		}
		client, err := gemini.NewClient(ctx, key, cfg.Summary.Model, cfg.Summary.MaxTokens)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}
}

// ReportArchive returns nil when no bucket is configured.
func ReportArchive(ctx context.Context, cfg *config.Config) (*storage.ReportArchive, error) {
	if cfg.Report.Bucket == "" {
		return nil, nil
	}

	client, err := storage.NewS3Client(ctx, storage.ReportsConfig{
		AccessKey: cfg.Report.AccessKey,
		SecretKey: cfg.Report.SecretKey,
		Region:    cfg.Report.Region,
		Endpoint:  cfg.Report.Endpoint,
		Bucket:    cfg.Report.Bucket,
		Prefix:    cfg.Report.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewReportArchive(client, cfg.Report.Bucket, cfg.Report.Prefix), nil
}
