package summary

import (
	"context"
	"time"
)

type Service interface {
	// Summarize returns the trimmed summary, or false when the model call fails or returns nothing.
	Summarize(ctx context.Context, transcript, title string) (string, bool)
}

// Generator is a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	MaxChars           int
	Language           string
	TranscriptMaxChars int
	Timeout            time.Duration
}
