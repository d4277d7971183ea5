package dedup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Index looks up persisted records by video id.
type Index interface {
	ExistsByVideoID(ctx context.Context, videoID string) (bool, error)
}

// Checker reports whether a video already has a summary record.
// Lookup failures are treated as "not processed" so a flaky index never blocks a run.
type Checker struct {
	index   Index
	timeout time.Duration
	logger  *logrus.Logger
}

func NewChecker(index Index, timeout time.Duration, logger *logrus.Logger) *Checker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Checker{index: index, timeout: timeout, logger: logger}
}

func (c *Checker) AlreadyProcessed(ctx context.Context, videoID string) bool {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	found, err := c.index.ExistsByVideoID(ctx, videoID)
	if err != nil {
		c.logger.WithContext(ctx).WithFields(logrus.Fields{
			"operation": "Checker.AlreadyProcessed",
			"videoId":   videoID,
		}).WithError(err).Error("Dedup lookup failed, treating video as unprocessed")
		return false
	}
	return found
}
