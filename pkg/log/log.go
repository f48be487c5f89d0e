package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	RequestIDKey = "request_id"
	TraceIDKey   = "trace_id"

	logDir = "./storage/logs"
)

type Fields = logrus.Fields

var (
	shared   *logrus.Logger
	initOnce sync.Once
)

// NewLogger returns the process-wide logger, built on first use from APP_ENV
// and LOG_LEVEL.
func NewLogger() *logrus.Logger {
	initOnce.Do(func() {
		shared = build(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"), time.Now())
	})
	return shared
}

func build(env, level string, now time.Time) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(levelFromEnv(level))
	l.SetFormatter(newFormatter(env == "production"))
	l.SetOutput(newOutput(env, now))
	l.SetReportCaller(true)
	return l
}

func newFormatter(plain bool) *formatter.Formatter {
	return &formatter.Formatter{
		NoColors:              plain,
		TimestampFormat:       "02 Jan 06 - 15:04",
		CallerFirst:           true,
		CustomCallerFormatter: callerFrame,
	}
}

// callerFrame renders " [file.go:42][Func()]" in blue.
func callerFrame(f *runtime.Frame) string {
	fn := f.Function
	if i := strings.LastIndex(fn, "."); i >= 0 {
		fn = fn[i+1:]
	}
	return fmt.Sprintf(" \x1b[34m[%s:%d][%s()]", path.Base(f.File), f.Line, fn)
}

// newOutput tees stderr into a daily rotated file, except under APP_ENV=test.
func newOutput(env string, now time.Time) io.Writer {
	if env == "test" {
		return os.Stderr
	}
	return io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path.Join(logDir, "mood-"+now.Format("2006-01-02")+".log"),
		LocalTime:  true,
		Compress:   true,
		MaxSize:    100,
		MaxAge:     7,
		MaxBackups: 3,
	})
}

func levelFromEnv(raw string) logrus.Level {
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func Info(fields Fields, msg string)  { NewLogger().WithFields(fields).Info(msg) }
func Warn(fields Fields, msg string)  { NewLogger().WithFields(fields).Warn(msg) }
func Error(fields Fields, msg string) { NewLogger().WithFields(fields).Error(msg) }
func Fatal(fields Fields, msg string) { NewLogger().WithFields(fields).Fatal(msg) }

// ErrorWithTraceID logs msg at error level and returns the trace id stamped on
// the entry, so a client can quote it back. A known request id doubles as the
// trace id. A nil logger means the shared one.
func ErrorWithTraceID(logger *logrus.Logger, fields Fields, msg string) string {
	if logger == nil {
		logger = NewLogger()
	}

	traceID := traceIDFor(fields)

	entry := make(Fields, len(fields)+1)
	for k, v := range fields {
		entry[k] = v
	}
	entry[TraceIDKey] = traceID

	logger.WithFields(entry).Error(msg)
	return traceID
}

func traceIDFor(fields Fields) string {
	if id, ok := fields[RequestIDKey].(string); ok && id != "" && id != "unknown" {
		return id
	}
	return uuid.NewString()
}
