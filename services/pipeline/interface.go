package pipeline

import (
	"context"
	"time"

	"github.com/nijaru/yt-digest/models"
)

type Service interface {
	// Run processes every hashtag and always returns the statistics gathered,
	// including when ctx is cancelled part way through.
	Run(ctx context.Context, hashtags []string) models.Report
}

// VideoSource discovers candidate videos and their metadata.
type VideoSource interface {
	Search(ctx context.Context, hashtag string) ([]string, error)
	Details(ctx context.Context, ids []string) ([]models.Video, error)
}

type Filter interface {
	AdmitVideo(v models.Video) bool
	Reason(views, likes uint64) string
}

type DedupChecker interface {
	AlreadyProcessed(ctx context.Context, videoID string) bool
}

type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID string) (string, bool)
}

type Summarizer interface {
	Summarize(ctx context.Context, transcript, title string) (string, bool)
}

type RecordWriter interface {
	Write(ctx context.Context, hashtag string, video models.Video, summary string) (*models.SummaryRecord, error)
}

type Config struct {
	// SearchTimeout bounds each search and details call.
	SearchTimeout time.Duration
}
