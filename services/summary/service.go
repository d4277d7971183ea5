package summary

import (
	"context"
	"strings"

	"github.com/nijaru/yt-digest/utils"
	"github.com/sirupsen/logrus"
)

type service struct {
	generator Generator
	config    Config
	logger    *logrus.Logger
}

func NewService(generator Generator, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		generator: generator,
		config:    config,
		logger:    logger,
	}
}

func (s *service) Summarize(ctx context.Context, transcript, title string) (string, bool) {
	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"operation": "SummaryService.Summarize",
		"title":     title,
	})

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	prompt := buildPrompt(
		s.config.Language,
		s.config.MaxChars,
		title,
		utils.TruncateRunes(transcript, s.config.TranscriptMaxChars),
	)

	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.WithError(err).Error("Failed to generate summary")
		return "", false
	}

	out = strings.TrimSpace(out)
	if out == "" {
		logger.Error("Model returned an empty summary")
		return "", false
	}

	logger.WithField("chars", utils.RuneCount(out)).Debug("Summary generated")
	return out, true
}
