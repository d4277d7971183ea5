package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nijaru/yt-digest/config"
	"github.com/nijaru/yt-digest/errors"
)

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// ValidateHashtag accepts only hashtags the batch is configured to collect.
func (v *Validator) ValidateHashtag(hashtag string) error {
	const op = "Validator.ValidateHashtag"

	if strings.TrimSpace(hashtag) == "" {
		return errors.InvalidInput(op, nil, "Missing required parameter: hashtag")
	}

	if !v.config.HasHashtag(hashtag) {
		return errors.InvalidInput(op, nil,
			fmt.Sprintf("Invalid hashtag. Available: %s", strings.Join(v.config.Hashtags, ", ")))
	}

	return nil
}

// ParseLimit reads the limit query parameter. Empty or 0 means no limit.
func (v *Validator) ParseLimit(raw string) (int, error) {
	const op = "Validator.ParseLimit"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(op, err, "limit must be an integer")
	}
	if limit < 0 {
		return 0, errors.InvalidInput(op, nil, "limit must not be negative")
	}

	return limit, nil
}
