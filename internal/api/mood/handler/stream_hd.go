package moodHandler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MoodDetector/internal/api/mood"
	"MoodDetector/internal/middleware"
	contextPkg "MoodDetector/pkg/context"
	"MoodDetector/pkg/response"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// handleWebSocket resolves a mood for every frame. Binary frames carry raw
// image bytes, text frames carry base64.
func (h *MoodHandler) handleWebSocket(c *websocket.Conn) {
	connID, _ := c.Locals(middleware.RequestIDKey).(string)
	if connID == "" {
		connID = "unknown"
	}

	logger := h.log.WithField("request_id", connID)
	logger.Info("Mood WebSocket client connected")
	defer logger.Info("Mood WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for frame := 1; ; frame++ {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Mood WebSocket error: %v", err)
			}
			return
		}

		var reply interface{}
		switch messageType {
		case websocket.BinaryMessage, websocket.TextMessage:
			reply = h.processFrame(fmt.Sprintf("%s-%d", connID, frame), messageType, message, logger)
		default:
			logger.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			logger.Errorf("Error setting write deadline: %v", err)
			return
		}
		if err := c.WriteJSON(reply); err != nil {
			logger.Errorf("Error writing JSON response: %v", err)
			return
		}
	}
}

func (h *MoodHandler) processFrame(requestID string, messageType int, message []byte, logger *logrus.Entry) interface{} {
	var (
		image []byte
		err   error
	)
	if messageType == websocket.TextMessage {
		image, err = h.utils.DecodeBase64Image(string(message))
	} else {
		image, err = message, h.utils.ValidateImageBytes(message)
	}
	if err != nil {
		return frameError(intakeError(err))
	}

	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), requestTimeout)
	defer cancel()

	result, err := h.moodService.DetectMood(ctx, image)
	if err != nil {
		logger.WithField("frame", requestID).Errorf("Error processing mood frame: %v", err)
		return frameError(err)
	}

	return result
}

func frameError(err error) mood.ErrorResponse {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		return mood.ErrorResponse{Error: respErr.Err.Error()}
	}
	return mood.ErrorResponse{Error: mood.ErrDetectionFailed.Error()}
}
