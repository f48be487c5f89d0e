package websocketPkg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MoodDetector/internal/entity"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newFaceServer(t *testing.T, reply func(frame []byte) string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			messageType, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if messageType != websocket.BinaryMessage {
				t.Errorf("expected binary frame, got type %d", messageType)
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply(frame))); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDetectFacesRoundTrip(t *testing.T) {
	url := newFaceServer(t, func(frame []byte) string {
		if string(frame) != "selfie" {
			return `{"error":"unexpected frame"}`
		}
		return `{"faces":[{"joy":"VERY_UNLIKELY","sorrow":"LIKELY","anger":"UNLIKELY","surprise":"UNLIKELY"}]}`
	})

	client := newFaceClient(url, quietLogger())
	defer client.Close()

	result, err := client.DetectFaces(context.Background(), []byte("selfie"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FaceCount() != 1 || result.Faces[0].Sorrow != entity.LikelihoodLikely {
		t.Fatalf("unexpected result %+v", result)
	}
	if !client.IsConnected() {
		t.Fatal("expected connection to be kept open")
	}

	if _, err := client.DetectFaces(context.Background(), []byte("selfie")); err != nil {
		t.Fatalf("second frame on same connection failed: %v", err)
	}
}

func TestDetectFacesServiceError(t *testing.T) {
	url := newFaceServer(t, func(frame []byte) string {
		return `{"error":"model not loaded"}`
	})

	client := newFaceClient(url, quietLogger())
	defer client.Close()

	_, err := client.DetectFaces(context.Background(), []byte("selfie"))
	if err == nil || err.Error() != "model not loaded" {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestDetectFacesUnreachable(t *testing.T) {
	client := newFaceClient("ws://127.0.0.1:1/face", quietLogger())
	defer client.Close()

	if _, err := client.DetectFaces(context.Background(), []byte("selfie")); err == nil {
		t.Fatal("expected connection error")
	}
	if client.IsConnected() {
		t.Fatal("client should not report a connection")
	}
}
