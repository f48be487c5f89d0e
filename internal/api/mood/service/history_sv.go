package moodService

import (
	"context"

	"MoodDetector/internal/api/mood"
	"MoodDetector/pkg/response"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func (s *moodService) History(ctx context.Context, limit, offset int) (*mood.HistoryResponse, error) {
	if s.moodRepo == nil {
		return nil, mood.ErrHistoryUnavailable
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	client, err := s.moodRepo.NewClient(false)
	if err != nil {
		return nil, response.Wrap(mood.ErrInternalServerError, err)
	}

	records, total, err := client.Records.ListRecords(ctx, limit, offset)
	if err != nil {
		return nil, response.Wrap(mood.ErrInternalServerError, err)
	}

	resp := &mood.HistoryResponse{
		Records: make([]mood.MoodRecordResponse, 0, len(records)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, r := range records {
		resp.Records = append(resp.Records, mood.MoodRecordResponse{
			ID:        r.ID,
			RequestID: r.RequestID,
			Mood:      r.Mood.String(),
			FaceCount: r.FaceCount,
			Provider:  r.Provider,
			CreatedAt: r.CreatedAt,
		})
	}

	return resp, nil
}

func (s *moodService) Stats(ctx context.Context) (*mood.StatsResponse, error) {
	if s.moodRepo == nil {
		return nil, mood.ErrHistoryUnavailable
	}

	client, err := s.moodRepo.NewClient(false)
	if err != nil {
		return nil, response.Wrap(mood.ErrInternalServerError, err)
	}

	counts, err := client.Records.CountByMood(ctx)
	if err != nil {
		return nil, response.Wrap(mood.ErrInternalServerError, err)
	}

	resp := &mood.StatsResponse{Counts: make(map[string]int, len(counts))}
	for _, c := range counts {
		resp.Counts[c.Mood.String()] += c.Total
		resp.Total += c.Total
	}

	return resp, nil
}
