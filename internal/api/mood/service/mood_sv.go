package moodService

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"MoodDetector/internal/api/mood"
	"MoodDetector/internal/entity"
	contextPkg "MoodDetector/pkg/context"
	"MoodDetector/pkg/redis"
	"MoodDetector/pkg/response"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *moodService) DetectMood(ctx context.Context, image []byte) (*mood.DetectMoodResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	digest := s.utils.Digest(image)

	if cached, ok := s.cachedResponse(ctx, digest); ok {
		cached.RequestID = requestID
		cached.Cached = true
		s.recordMood(ctx, requestID, digest, entity.Mood(cached.Mood), cached.FaceCount)
		return cached, nil
	}

	result, err := s.detector.DetectFaces(ctx, image)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"provider":   s.detector.Name(),
			"error":      err.Error(),
		}).Error("Face detection failed")
		return nil, response.Wrap(mood.ErrDetectionFailed, err)
	}

	resolved := mood.Resolve(result)
	wireMood := resolved
	if result.FaceCount() == 0 {
		wireMood = entity.MoodNoFace
	}

	resp := &mood.DetectMoodResponse{
		Mood:      wireMood.String(),
		FaceCount: result.FaceCount(),
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"provider":   s.detector.Name(),
		"faces":      result.FaceCount(),
		"mood":       resp.Mood,
	}).Info("Mood resolved")

	s.cacheResponse(ctx, digest, resp)
	s.archiveImage(ctx, requestID, digest, image)
	s.recordMood(ctx, requestID, digest, wireMood, result.FaceCount())

	resp.RequestID = requestID
	return resp, nil
}

func (s *moodService) cachedResponse(ctx context.Context, digest string) (*mood.DetectMoodResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.GetMood(ctx, digest)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to read mood cache")
		}
		return nil, false
	}

	var resp mood.DetectMoodResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to decode cached mood, evicting")
		if err := s.cache.DeleteMood(ctx, digest); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to evict cached mood")
		}
		return nil, false
	}

	return &resp, true
}

func (s *moodService) cacheResponse(ctx context.Context, digest string, resp *mood.DetectMoodResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(mood.DetectMoodResponse{Mood: resp.Mood, FaceCount: resp.FaceCount})
	if err != nil {
		return
	}

	if err := s.cache.SetMood(ctx, digest, payload, s.cacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to cache mood")
	}
}

// archiveImage stores the selfie under its content digest, so resubmitting
// the same image rewrites the same object.
func (s *moodService) archiveImage(ctx context.Context, requestID, digest string, image []byte) {
	if s.archive == nil {
		return
	}

	contentType := http.DetectContentType(image)
	name := digest + "." + extensionFor(contentType)

	location, err := s.archive.UploadImage(ctx, name, contentType, image)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to archive selfie")
		return
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"location":   location,
	}).Debug("Selfie archived")
}

func (s *moodService) recordMood(ctx context.Context, requestID, digest string, m entity.Mood, faceCount int) {
	if s.moodRepo == nil {
		return
	}

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate mood record id")
		return
	}

	client, err := s.moodRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open mood repository client")
		return
	}

	record := entity.MoodRecord{
		ID:          id,
		RequestID:   requestID,
		Mood:        m,
		FaceCount:   faceCount,
		ImageDigest: digest,
		Provider:    s.detector.Name(),
		CreatedAt:   now.UTC(),
	}

	if err := client.Records.CreateRecord(ctx, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to record mood")
	}
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasSuffix(contentType, "/png"):
		return "png"
	case strings.HasSuffix(contentType, "/gif"):
		return "gif"
	case strings.HasSuffix(contentType, "/webp"):
		return "webp"
	case strings.HasSuffix(contentType, "/bmp"):
		return "bmp"
	default:
		return "jpg"
	}
}
