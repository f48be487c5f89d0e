package handlerUtil

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MoodDetector/pkg/response"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func runHandle(t *testing.T, err error) (int, string) {
	t.Helper()

	h := New(quietLogger())
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if testErr != nil {
		t.Fatalf("app.Test: %v", testErr)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHandleResponseError(t *testing.T) {
	sentinel := response.NewError(http.StatusBadRequest, "No image file provided")

	status, body := runHandle(t, sentinel)
	if status != http.StatusBadRequest || !strings.Contains(body, `"error":"No image file provided"`) {
		t.Fatalf("got %d %s", status, body)
	}
}

func TestHandleWrappedResponseErrorHidesCause(t *testing.T) {
	sentinel := response.NewError(http.StatusInternalServerError, "Error analyzing image")
	err := response.Wrap(sentinel, errors.New("permission denied for key 1234"))

	status, body := runHandle(t, err)
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	var out map[string]string
	if err := jsoniter.UnmarshalFromString(body, &out); err != nil {
		t.Fatalf("decode body %s: %v", body, err)
	}
	if len(out) != 2 || out["error"] != "Error analyzing image" || out["trace_id"] != "req-1" {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestHandleUnknownError(t *testing.T) {
	status, body := runHandle(t, errors.New("boom"))
	if status != http.StatusInternalServerError || !strings.Contains(body, "An unexpected error occurred") {
		t.Fatalf("got %d %s", status, body)
	}
	if !strings.Contains(body, `"trace_id":"req-1"`) || strings.Contains(body, "boom") {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestHandleClientErrorHasNoTraceID(t *testing.T) {
	_, body := runHandle(t, response.NewError(http.StatusBadRequest, "Invalid image format"))
	if strings.Contains(body, "trace_id") {
		t.Fatalf("unexpected trace id in %s", body)
	}
}

func TestHandleFiberError(t *testing.T) {
	status, body := runHandle(t, fiber.ErrUpgradeRequired)
	if status != fiber.StatusUpgradeRequired || !strings.Contains(body, "Upgrade Required") {
		t.Fatalf("got %d %s", status, body)
	}
}
