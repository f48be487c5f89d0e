package log

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func captureLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l, &buf
}

func TestErrorWithTraceIDReusesRequestID(t *testing.T) {
	l, buf := captureLogger()
	fields := Fields{RequestIDKey: "req-7", "path": "/detect"}

	traceID := ErrorWithTraceID(l, fields, "detection failed")
	if traceID != "req-7" {
		t.Fatalf("expected request id as trace id, got %q", traceID)
	}

	var entry map[string]interface{}
	if err := jsoniter.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry[TraceIDKey] != "req-7" || entry["level"] != "error" || entry["msg"] != "detection failed" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := fields[TraceIDKey]; ok {
		t.Fatal("caller fields must not be modified")
	}
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	for _, fields := range []Fields{nil, {RequestIDKey: ""}, {RequestIDKey: "unknown"}} {
		l, buf := captureLogger()

		traceID := ErrorWithTraceID(l, fields, "boom")
		if _, err := uuid.Parse(traceID); err != nil {
			t.Fatalf("fields %v: expected a uuid trace id, got %q", fields, traceID)
		}
		if !strings.Contains(buf.String(), traceID) {
			t.Fatalf("trace id missing from log line %s", buf.String())
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"ERROR":   logrus.ErrorLevel,
		"verbose": logrus.DebugLevel,
	}
	for raw, want := range tests {
		if got := levelFromEnv(raw); got != want {
			t.Errorf("levelFromEnv(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestCallerFrame(t *testing.T) {
	got := callerFrame(&runtime.Frame{
		Function: "MoodDetector/internal/api/mood/service.(*moodService).DetectMood",
		File:     "/src/internal/api/mood/service/mood_sv.go",
		Line:     42,
	})
	if !strings.HasSuffix(got, "[mood_sv.go:42][DetectMood()]") {
		t.Fatalf("unexpected caller frame %q", got)
	}
}

func TestBuildTestEnvLogsToStderrOnly(t *testing.T) {
	l := build("test", "info", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", l.GetLevel())
	}
	if l.Out != os.Stderr {
		t.Fatal("test env must not open a log file")
	}
}
