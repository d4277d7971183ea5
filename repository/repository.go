package repository

import (
	"context"

	"github.com/nijaru/yt-digest/models"
)

// SummaryRepository is the key-value table holding summary records.
//
// Records are keyed by (hashtag, processedAt). The videoId lookup is a secondary index; it does
// not enforce uniqueness.
type SummaryRepository interface {
	Put(ctx context.Context, record *models.SummaryRecord) error
	ExistsByVideoID(ctx context.Context, videoID string) (bool, error)
	// ListByHashtag returns records newest first. limit <= 0 returns every record.
	ListByHashtag(ctx context.Context, hashtag string, limit int) ([]models.SummaryRecord, error)
}
