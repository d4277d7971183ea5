package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/nijaru/yt-digest/config"
	"github.com/nijaru/yt-digest/errors"
	"github.com/nijaru/yt-digest/logger"
	"github.com/nijaru/yt-digest/middleware"
	"github.com/sirupsen/logrus"
)

// NewApp builds the read API. accessLog may be nil to disable the access log.
func NewApp(cfg *config.Config, summaries *SummaryHandler, log *logrus.Logger, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: !cfg.Debug,
		StrictRouting:         true,
		CaseSensitive:         true,
		AppName:               "yt-digest " + cfg.Version,
	})

	setupMiddleware(app, cfg, log, accessLog)

	app.Get("/health", HealthCheck(cfg.Version))

	api := app.Group("/api")
	api.Get("/summaries", summaries.List)
	api.Get("/hashtags", summaries.Hashtags)

	app.Use(func(c *fiber.Ctx) error {
		return errors.NotFound("Router.NotFound", nil, "Not found")
	})

	return app
}

func setupMiddleware(app *fiber.App, cfg *config.Config, log *logrus.Logger, accessLog io.Writer) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	if accessLog != nil {
		app.Use(fiberLogger.New(logger.AccessLogConfig(accessLog)))
	}

	app.Use(middleware.RequestLogger(log))

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	if cfg.Server.RateLimitRPM > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimitRPM,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded")
			},
		}))
	}
}
