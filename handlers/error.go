package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nijaru/yt-digest/errors"
	"github.com/nijaru/yt-digest/middleware"
	"github.com/sirupsen/logrus"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var appErr *errors.AppError
	var fiberErr *fiber.Error
	switch {
	case stderrors.As(err, &appErr):
		code = errors.StatusCode(appErr)
		message = appErr.Message
	case stderrors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	logger := middleware.GetLogger(c).WithFields(logrus.Fields{
		"status": code,
		"path":   c.Path(),
		"method": c.Method(),
	}).WithError(err)
	switch {
	case code >= fiber.StatusInternalServerError:
		logger.Error("Request error")
	case errors.IsNotFound(err):
		logger.Debug("Route not found")
	default:
		logger.Info("Request error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error":      message,
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
