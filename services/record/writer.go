package record

import (
	"context"
	"time"

	"github.com/nijaru/yt-digest/models"
	"github.com/pkg/errors"
)

type Store interface {
	Put(ctx context.Context, record *models.SummaryRecord) error
}

// Writer persists one summary record per successful video. It does not retry.
type Writer struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
}

func NewWriter(store Store, timeout time.Duration) *Writer {
	return &Writer{store: store, timeout: timeout, now: time.Now}
}

func (w *Writer) Write(ctx context.Context, hashtag string, video models.Video, summary string) (*models.SummaryRecord, error) {
	rec := models.NewSummaryRecord(hashtag, video, summary, w.now())

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	if err := w.store.Put(ctx, rec); err != nil {
		return nil, errors.Wrapf(err, "write summary for %s under #%s", video.ID, hashtag)
	}
	return rec, nil
}
