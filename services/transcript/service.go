package transcript

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/nijaru/yt-digest/providers/captions"
	"github.com/nijaru/yt-digest/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type service struct {
	provider Provider
	config   Config
	base     language.Base
	logger   *logrus.Logger
}

func NewService(provider Provider, config Config, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	base, _ := language.Make(config.Language).Base()
	return &service{
		provider: provider,
		config:   config,
		base:     base,
		logger:   logger,
	}
}

func (s *service) Resolve(ctx context.Context, videoID string) (string, bool) {
	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"operation": "TranscriptService.Resolve",
		"videoId":   videoID,
	})

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	tracks, err := s.provider.List(ctx, videoID)
	if err != nil {
		if isAbsent(err) {
			logger.WithError(err).Info("No transcript")
			return "", false
		}
		logger.WithError(err).Error("Failed to list transcripts")
		return "", false
	}

	track, ok := s.pick(tracks)
	if !ok {
		logger.Info("No transcript")
		return "", false
	}
	logger = logger.WithFields(logrus.Fields{
		"language":  track.LanguageCode,
		"generated": track.Generated,
	})

	segments, err := s.provider.Fetch(ctx, track)
	if err != nil {
		if isAbsent(err) {
			logger.WithError(err).Info("No transcript")
			return "", false
		}
		logger.WithError(err).Error("Failed to fetch transcript")
		return "", false
	}

	text := joinSegments(segments)
	if text == "" {
		logger.Info("No transcript")
		return "", false
	}

	logger.WithField("chars", utils.RuneCount(text)).Debug("Transcript resolved")
	return text, true
}

// pick prefers a manual track in the target language, then an auto-generated one,
// then whatever the provider lists first.
func (s *service) pick(tracks []captions.Track) (captions.Track, bool) {
	if len(tracks) == 0 {
		return captions.Track{}, false
	}

	for _, generated := range []bool{false, true} {
		for _, t := range tracks {
			if t.Generated == generated && s.matches(t.LanguageCode) {
				return t, true
			}
		}
	}
	return tracks[0], true
}

func (s *service) matches(code string) bool {
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base == s.base
}

func joinSegments(segments []captions.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := utils.CollapseWhitespace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func isAbsent(err error) bool {
	return stderrors.Is(err, captions.ErrTranscriptsDisabled) ||
		stderrors.Is(err, captions.ErrNoTranscript)
}
