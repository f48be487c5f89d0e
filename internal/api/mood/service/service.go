package moodService

import (
	"context"
	"time"

	"MoodDetector/internal/api/mood"
	moodRepository "MoodDetector/internal/api/mood/repository"
	"MoodDetector/internal/entity"
	"MoodDetector/pkg/redis"
	"MoodDetector/pkg/s3"
	"MoodDetector/pkg/utils"

	"github.com/sirupsen/logrus"
)

const DefaultCacheTTL = 10 * time.Minute

type IMoodService interface {
	DetectMood(ctx context.Context, image []byte) (*mood.DetectMoodResponse, error)
	History(ctx context.Context, limit, offset int) (*mood.HistoryResponse, error)
	Stats(ctx context.Context) (*mood.StatsResponse, error)
}

// FaceDetector is the remote face-analysis capability. Implementations live
// in pkg/vision, pkg/gemini and pkg/websocket.
type FaceDetector interface {
	DetectFaces(ctx context.Context, image []byte) (entity.DetectionResult, error)
	Name() string
}

type moodService struct {
	log      *logrus.Logger
	detector FaceDetector
	moodRepo moodRepository.Repository
	cache    redis.IRedis
	archive  s3.ItfS3
	utils    utils.IUtils
	cacheTTL time.Duration
	now      func() time.Time
}

// NewMoodService wires the mood use case. moodRepo, cache and archive are
// optional and may be nil.
func NewMoodService(
	log *logrus.Logger,
	detector FaceDetector,
	moodRepo moodRepository.Repository,
	cache redis.IRedis,
	archive s3.ItfS3,
	utils utils.IUtils,
	cacheTTL time.Duration,
) IMoodService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &moodService{
		log:      log,
		detector: detector,
		moodRepo: moodRepo,
		cache:    cache,
		archive:  archive,
		utils:    utils,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}
