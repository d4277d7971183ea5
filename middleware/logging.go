package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nijaru/yt-digest/errors"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// RequestLogger stores a request-scoped logrus entry in Locals and logs the outcome.
// It must run after the requestid middleware.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"remote_ip":  c.IP(),
		})
		c.Locals(loggerKey, entry)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = errors.StatusCode(err)
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		fields := logrus.Fields{
			"status":   status,
			"duration": time.Since(start).String(),
		}
		switch {
		case err != nil && status >= fiber.StatusInternalServerError:
			entry.WithFields(fields).WithError(err).Error("Request failed")
		case err != nil:
			entry.WithFields(fields).WithError(err).Warn("Request rejected")
		default:
			entry.WithFields(fields).Debug("Request completed")
		}

		return err
	}
}

// GetLogger returns the request-scoped entry, or a standard logger entry outside a request chain.
func GetLogger(c *fiber.Ctx) *logrus.Entry {
	if entry, ok := c.Locals(loggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
