package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nijaru/yt-digest/errors"
	"github.com/nijaru/yt-digest/middleware"
	"github.com/nijaru/yt-digest/models"
	"github.com/nijaru/yt-digest/validation"
	"github.com/sirupsen/logrus"
)

type SummaryLister interface {
	ListByHashtag(ctx context.Context, hashtag string, limit int) ([]models.SummaryRecord, error)
}

type SummaryHandler struct {
	repo      SummaryLister
	validator *validation.Validator
	hashtags  []string
	timeout   time.Duration
}

func NewSummaryHandler(repo SummaryLister, validator *validation.Validator, hashtags []string, timeout time.Duration) *SummaryHandler {
	return &SummaryHandler{
		repo:      repo,
		validator: validator,
		hashtags:  hashtags,
		timeout:   timeout,
	}
}

type summariesResponse struct {
	Hashtag   string                 `json:"hashtag"`
	Count     int                    `json:"count"`
	Summaries []models.SummaryRecord `json:"summaries"`
}

// List handles GET /api/summaries?hashtag=&limit=.
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	const op = "SummaryHandler.List"

	hashtag := c.Query("hashtag")
	if err := h.validator.ValidateHashtag(hashtag); err != nil {
		return err
	}

	limit, err := h.validator.ParseLimit(c.Query("limit"))
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	records, err := h.repo.ListByHashtag(ctx, hashtag, limit)
	if err != nil {
		return errors.Internal(op, err, "Failed to query summaries")
	}
	if records == nil {
		records = []models.SummaryRecord{}
	}

	middleware.GetLogger(c).WithFields(logrus.Fields{
		"hashtag": hashtag,
		"limit":   limit,
		"count":   len(records),
	}).Debug("Listed summaries")

	return c.JSON(summariesResponse{
		Hashtag:   hashtag,
		Count:     len(records),
		Summaries: records,
	})
}

// Hashtags handles GET /api/hashtags.
func (h *SummaryHandler) Hashtags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"hashtags": h.hashtags,
	})
}
