package moodHandler

import (
	"context"
	"errors"
	"time"

	"MoodDetector/internal/api/mood"
	contextPkg "MoodDetector/pkg/context"
	"MoodDetector/pkg/handlerUtil"
	"MoodDetector/pkg/log"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

func (h *MoodHandler) DetectMood(ctx *fiber.Ctx) error {
	resp, err := h.detect(ctx)
	if err != nil || resp == nil {
		return err
	}

	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *MoodHandler) DetectMoodLegacy(ctx *fiber.Ctx) error {
	resp, err := h.detect(ctx)
	if err != nil || resp == nil {
		return err
	}

	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, mood.LegacyDetectResponse{
		Mood: resp.Mood,
	})
}

// detect runs intake and detection. A nil response means the error reply has
// already been written.
func (h *MoodHandler) detect(ctx *fiber.Ctx) (*mood.DetectMoodResponse, error) {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing mood detection request")

	image, err := h.readImage(ctx, requestID)
	if err != nil {
		return nil, errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_image")
	}

	result, err := h.moodService.DetectMood(c, image)
	if err != nil {
		if errors.Is(c.Err(), context.DeadlineExceeded) {
			return nil, errHandler.HandleRequestTimeout(ctx)
		}
		return nil, errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect_mood")
	}

	select {
	case <-c.Done():
		return nil, errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"mood":       result.Mood,
			"face_count": result.FaceCount,
			"cached":     result.Cached,
		}).Info("Mood detection successful")
		return result, nil
	}
}

func (h *MoodHandler) History(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query mood.HistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.moodService.History(c, query.Limit, query.Offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mood_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *MoodHandler) Stats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.moodService.Stats(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mood_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
