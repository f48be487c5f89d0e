package config

import (
	"errors"
	"strings"

	"MoodDetector/internal/api/mood"
	"MoodDetector/internal/middleware"
	"MoodDetector/pkg/handlerUtil"
	"MoodDetector/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, app *App) *fiber.App {
	engine := fiber.New(
		fiber.Config{
			AppName: "Mood Detector",
			// multipart framing and base64 both inflate the payload
			BodyLimit:         int(2*app.MaxUploadSize) + 1024*1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: app.Env != "production",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	engine.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.WithFields(logrus.Fields{
				"path":  c.Path(),
				"panic": e,
			}).Error("Recovered from panic")
		},
	}))

	engine.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimRight(app.FrontendURL, "/"),
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}, ","),
		AllowHeaders: "Content-Type,X-Request-ID",
	}))

	return engine
}

// newErrorHandler renders errors that escape the route handlers in the same
// {"error": ...} shape. An over-limit body is rejected by fasthttp before any
// handler runs and surfaces here as a 413, which the API reports as 400.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	errHandler := handlerUtil.New(logger)

	return func(c *fiber.Ctx, err error) error {
		requestID, _ := c.Locals(middleware.RequestIDKey).(string)
		if requestID == "" {
			requestID = "unknown"
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusRequestEntityTooLarge {
			err = response.Wrap(mood.ErrFileTooLarge, err)
		}

		return errHandler.Handle(c, requestID, err, c.Path(), "fiber")
	}
}
