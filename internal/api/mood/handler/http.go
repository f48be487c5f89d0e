package moodHandler

import (
	moodService "MoodDetector/internal/api/mood/service"
	"MoodDetector/internal/middleware"
	"MoodDetector/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type MoodHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	moodService moodService.IMoodService
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ms moodService.IMoodService,
	utils utils.IUtils,
) *MoodHandler {
	return &MoodHandler{
		moodService: ms,
		log:         log,
		validator:   validator,
		middleware:  middleware,
		utils:       utils,
	}
}

func (h *MoodHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	mood := srv.Group("/mood")
	mood.Post("/detect", h.middleware.NewRateLimiter, h.DetectMood)
	mood.Use("/ws", wsMiddleware)
	mood.Get("/ws", websocket.New(h.handleWebSocket))
	mood.Get("/history", h.History)
	mood.Get("/stats", h.Stats)
}

// StartLegacy registers the pre-versioned upload route used by older clients.
func (h *MoodHandler) StartLegacy(srv fiber.Router) {
	srv.Post("/detect-mood", h.middleware.NewRateLimiter, h.DetectMoodLegacy)
}
