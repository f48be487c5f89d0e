package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"MoodDetector/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	DetectorVision = "vision"
	DetectorGemini = "gemini"
	DetectorRemote = "remote"
)

// App is the process configuration, read once at startup.
type App struct {
	Env           string
	Port          string
	FrontendURL   string
	MaxUploadSize int64

	FaceDetector          string
	GoogleCloudKey        string
	GoogleCredentialsFile string
	GeminiAPIKey          string
	GeminiModelName       string
	FaceServiceURL        string

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	MoodCacheTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSBucketName      string
	AWSEndpoint        string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadDotEnv reads .env into the environment. A missing file is not fatal;
// the returned error is only meant to be logged.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

func LoadApp() (*App, error) {
	app := &App{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", getEnv("PORT", "3000")),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		FaceDetector:          getEnv("FACE_DETECTOR", DetectorVision),
		GoogleCloudKey:        os.Getenv("GOOGLE_CLOUD_KEY"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModelName:       os.Getenv("GEMINI_MODEL_NAME"),
		FaceServiceURL:        os.Getenv("AI_FACE_DETECTION_URL"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucketName:      os.Getenv("AWS_BUCKET_NAME"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
	}

	var err error
	if app.MaxUploadSize, err = getInt64("MAX_UPLOAD_SIZE", utils.DefaultMaxFileSize); err != nil {
		return nil, err
	}
	if app.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if app.MoodCacheTTL, err = getDuration("MOOD_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if app.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 50); err != nil {
		return nil, err
	}
	if app.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 100); err != nil {
		return nil, err
	}

	switch app.FaceDetector {
	case DetectorVision, DetectorGemini, DetectorRemote:
	default:
		return nil, fmt.Errorf("unknown FACE_DETECTOR %q", app.FaceDetector)
	}

	return app, nil
}

func (a *App) RedisEnabled() bool {
	return a.RedisAddress != ""
}

func (a *App) DatabaseEnabled() bool {
	return a.DBHost != "" && a.DBName != ""
}

func (a *App) S3Enabled() bool {
	return a.AWSBucketName != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
