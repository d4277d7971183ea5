package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nijaru/yt-digest/models"
	"github.com/sirupsen/logrus"
)

type service struct {
	source      VideoSource
	filter      Filter
	dedup       DedupChecker
	transcripts TranscriptResolver
	summarizer  Summarizer
	writer      RecordWriter
	config      Config
	logger      *logrus.Logger
	now         func() time.Time
}

func NewService(
	source VideoSource,
	filter Filter,
	dedup DedupChecker,
	transcripts TranscriptResolver,
	summarizer Summarizer,
	writer RecordWriter,
	config Config,
	logger *logrus.Logger,
) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		source:      source,
		filter:      filter,
		dedup:       dedup,
		transcripts: transcripts,
		summarizer:  summarizer,
		writer:      writer,
		config:      config,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) Run(ctx context.Context, hashtags []string) models.Report {
	runID := uuid.NewString()
	stats := models.NewRunStats(runID, s.now().UTC())
	logger := s.logger.WithContext(ctx).WithField("runId", runID)
	logger.WithField("hashtags", hashtags).Info("Starting batch run")

	for _, hashtag := range hashtags {
		if ctx.Err() != nil {
			break
		}
		s.processHashtag(ctx, hashtag, stats, logger.WithField("hashtag", hashtag))
	}

	stats.Finish(s.now().UTC())
	report := stats.Report()

	fields := logrus.Fields{
		"videosFound":            report.VideosFound,
		"videosFiltered":         report.VideosFiltered,
		"videosWithoutTx":        report.VideosWithoutTx,
		"videosAlreadyProcessed": report.VideosAlreadyProcessed,
		"videosSummarized":       report.VideosSummarized,
		"errors":                 report.Errors,
		"duration":               report.FinishedAt.Sub(report.StartedAt).String(),
	}
	if err := ctx.Err(); err != nil {
		logger.WithFields(fields).WithError(err).Warn("Run interrupted")
	} else {
		logger.WithFields(fields).Info("Batch run completed")
	}

	return report
}

func (s *service) processHashtag(ctx context.Context, hashtag string, stats *models.RunStats, logger *logrus.Entry) {
	ids, err := s.search(ctx, hashtag)
	if err != nil {
		logger.WithError(err).Error("Search failed, skipping hashtag")
		stats.Record(hashtag, models.OutcomeError)
		return
	}

	stats.Found(hashtag, len(ids))
	logger.WithField("count", len(ids)).Info("Found candidate videos")
	if len(ids) == 0 {
		return
	}

	videos, err := s.details(ctx, ids)
	if err != nil {
		logger.WithError(err).Error("Failed to fetch video details, skipping hashtag")
		stats.Record(hashtag, models.OutcomeError)
		return
	}

	for _, video := range videos {
		if ctx.Err() != nil {
			return
		}
		outcome := s.processVideo(ctx, hashtag, video, logger.WithField("videoId", video.ID))
		stats.Record(hashtag, outcome)
	}
}

func (s *service) processVideo(ctx context.Context, hashtag string, video models.Video, logger *logrus.Entry) models.Outcome {
	if !s.filter.AdmitVideo(video) {
		logger.WithFields(logrus.Fields{
			"viewCount": video.ViewCount,
			"likeCount": video.LikeCount,
			"reason":    s.filter.Reason(video.ViewCount, video.LikeCount),
		}).Debug("Filtered out")
		return models.OutcomeFiltered
	}

	if s.dedup.AlreadyProcessed(ctx, video.ID) {
		logger.Debug("Already processed")
		return models.OutcomeAlreadyProcessed
	}

	transcript, ok := s.transcripts.Resolve(ctx, video.ID)
	if !ok {
		return models.OutcomeNoTranscript
	}

	summary, ok := s.summarizer.Summarize(ctx, transcript, video.Title)
	if !ok {
		return models.OutcomeError
	}

	if _, err := s.writer.Write(ctx, hashtag, video, summary); err != nil {
		logger.WithError(err).Error("Failed to save summary")
		return models.OutcomeError
	}

	logger.WithField("title", video.Title).Info("Summarized video")
	return models.OutcomeSummarized
}

func (s *service) search(ctx context.Context, hashtag string) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.source.Search(ctx, hashtag)
}

func (s *service) details(ctx context.Context, ids []string) ([]models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.source.Details(ctx, ids)
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.SearchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.SearchTimeout)
}
