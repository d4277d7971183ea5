package transcript

import (
	"context"
	"time"

	"github.com/nijaru/yt-digest/providers/captions"
)

type Service interface {
	// Resolve returns the full transcript text, or false when none is usable.
	Resolve(ctx context.Context, videoID string) (string, bool)
}

type Provider interface {
	List(ctx context.Context, videoID string) ([]captions.Track, error)
	Fetch(ctx context.Context, track captions.Track) ([]captions.Segment, error)
}

type Config struct {
	// Language is the preferred BCP-47 tag; only the base language is compared.
	Language string
	Timeout  time.Duration
}
