package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MoodDetector/database/postgres"
	moodHandler "MoodDetector/internal/api/mood/handler"
	moodRepository "MoodDetector/internal/api/mood/repository"
	moodService "MoodDetector/internal/api/mood/service"
	"MoodDetector/internal/middleware"
	"MoodDetector/pkg/gemini"
	"MoodDetector/pkg/google"
	"MoodDetector/pkg/redis"
	"MoodDetector/pkg/s3"
	"MoodDetector/pkg/utils"
	"MoodDetector/pkg/vision"
	websocketPkg "MoodDetector/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	app         *App
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	detector    moodService.FaceDetector
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	closers     []func() error
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			server.closeAll()
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.app == nil {
		return nil, fmt.Errorf("app config is required")
	}
	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.detector == nil {
		return nil, fmt.Errorf("face detector is required")
	}

	return server, nil
}

func WithApp(app *App) ServerOption {
	return func(s *Server) error {
		s.app = app
		return nil
	}
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to Postgres when DB_HOST and DB_NAME are set.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if s.app == nil || !s.app.DatabaseEnabled() {
			s.logInfo("Database not configured, mood history disabled")
			return nil
		}

		db, err := postgres.New(postgres.Options{
			Host:     s.app.DBHost,
			Port:     s.app.DBPort,
			User:     s.app.DBUser,
			Password: s.app.DBPassword,
			Name:     s.app.DBName,
			SSLMode:  s.app.DBSSLMode,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		s.closers = append(s.closers, db.Close)
		return nil
	}
}

// WithRedisServer enables the mood cache when REDIS_ADDRESS is set.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if s.app == nil || !s.app.RedisEnabled() {
			s.logInfo("Redis not configured, mood cache disabled")
			return nil
		}

		client, err := redis.New(redis.Options{
			Address:  s.app.RedisAddress,
			Password: s.app.RedisPassword,
			DB:       s.app.RedisDB,
		}, s.log)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		s.redisServer = client
		s.closers = append(s.closers, client.Close)
		return nil
	}
}

// WithS3Client enables selfie archiving when AWS_BUCKET_NAME is set.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if s.app == nil || !s.app.S3Enabled() {
			s.logInfo("S3 not configured, selfie archive disabled")
			return nil
		}

		client, err := s3.New(s3.Options{
			Region:          s.app.AWSRegion,
			AccessKeyID:     s.app.AWSAccessKeyID,
			SecretAccessKey: s.app.AWSSecretAccessKey,
			BucketName:      s.app.AWSBucketName,
			Endpoint:        s.app.AWSEndpoint,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

// WithFaceDetector builds the provider selected by FACE_DETECTOR.
func WithFaceDetector(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if s.app == nil {
			return fmt.Errorf("app config must be set before the face detector")
		}

		switch s.app.FaceDetector {
		case DetectorGemini:
			client, err := gemini.NewGeminiClient(ctx, s.app.GeminiAPIKey, s.app.GeminiModelName)
			if err != nil {
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.detector = client
			s.closers = append(s.closers, client.Close)

		case DetectorRemote:
			client := websocketPkg.NewFaceClient(s.app.FaceServiceURL, s.log)
			s.detector = client
			s.closers = append(s.closers, client.Close)

		default:
			creds, err := google.NewCredentials(ctx, s.app.GoogleCloudKey, s.app.GoogleCredentialsFile)
			if err != nil {
				return fmt.Errorf("failed to load google credentials: %w", err)
			}
			client, err := vision.New(ctx, creds)
			if err != nil {
				return fmt.Errorf("failed to create vision client: %w", err)
			}
			s.detector = client
		}

		s.logInfo(fmt.Sprintf("Face detector %q ready", s.detector.Name()))
		return nil
	}
}

// WithDetector injects a ready detector, replacing WithFaceDetector.
func WithDetector(detector moodService.FaceDetector) ServerOption {
	return func(s *Server) error {
		s.detector = detector
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		opts := middleware.Options{}
		if s.app != nil {
			opts.RequestsPerSecond = s.app.RateLimitRPS
			opts.Burst = s.app.RateLimitBurst
		}
		s.middleware = middleware.New(s.log, opts)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		limit := utils.DefaultMaxFileSize
		if s.app != nil {
			limit = s.app.MaxUploadSize
		}
		s.utils = utils.NewWithLimit(limit)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	var moodRepo moodRepository.Repository
	if s.db != nil {
		moodRepo = moodRepository.New(s.db, s.log)
	}

	moodServices := moodService.NewMoodService(s.log, s.detector, moodRepo, s.redisServer, s.s3Client, s.utils, s.app.MoodCacheTTL)
	moodHandlers := moodHandler.New(s.log, s.validator, s.middleware, moodServices, s.utils)

	s.setupHealthCheck()
	moodHandlers.StartLegacy(s.engine)
	s.handlers = append(s.handlers, moodHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	return s.engine.Listen(fmt.Sprintf(":%s", s.app.Port))
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires and then releases every collaborator.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)
	return errors.Join(err, s.closeAll())
}

func (s *Server) Engine() *fiber.App {
	return s.engine
}

func (s *Server) closeAll() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Server) logInfo(msg string) {
	if s.log != nil {
		s.log.Info(msg)
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
}
