package moodService

import (
	"context"
	"errors"
	"testing"
	"time"

	"MoodDetector/internal/api/mood"
	"MoodDetector/internal/entity"
	"MoodDetector/pkg/utils"
)

func TestHistoryUnavailableWithoutRepository(t *testing.T) {
	svc := NewMoodService(quietLogger(), &stubDetector{}, nil, nil, nil, utils.New(), 0)

	if _, err := svc.History(context.Background(), 10, 0); !errors.Is(err, mood.ErrHistoryUnavailable) {
		t.Fatalf("expected ErrHistoryUnavailable, got %v", err)
	}
	if _, err := svc.Stats(context.Background()); !errors.Is(err, mood.ErrHistoryUnavailable) {
		t.Fatalf("expected ErrHistoryUnavailable, got %v", err)
	}
}

func TestHistoryClampsPaging(t *testing.T) {
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	records := &stubRecords{
		list: []entity.MoodRecord{
			{ID: "a", RequestID: "req-a", Mood: entity.MoodSurprise, FaceCount: 1, Provider: "vision", CreatedAt: createdAt},
		},
		total: 41,
	}
	svc := NewMoodService(quietLogger(), &stubDetector{}, &stubRepository{records: records}, nil, nil, utils.New(), 0)

	resp, err := svc.History(context.Background(), 500, -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.listArgs != [2]int{maxHistoryLimit, 0} {
		t.Fatalf("expected clamped paging, got %v", records.listArgs)
	}
	if resp.Total != 41 || len(resp.Records) != 1 || resp.Records[0].Mood != "Surprise" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if _, err := svc.History(context.Background(), 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.listArgs != [2]int{defaultHistoryLimit, 5} {
		t.Fatalf("expected default limit, got %v", records.listArgs)
	}
}

func TestStatsSumsCounts(t *testing.T) {
	records := &stubRecords{counts: []entity.MoodCount{
		{Mood: entity.MoodJoy, Total: 4},
		{Mood: entity.MoodNoFace, Total: 2},
		{Mood: entity.MoodAnger, Total: 1},
	}}
	svc := NewMoodService(quietLogger(), &stubDetector{}, &stubRepository{records: records}, nil, nil, utils.New(), 0)

	resp, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 7 || resp.Counts["Joy"] != 4 || resp.Counts["neutral"] != 2 || resp.Counts["Anger"] != 1 {
		t.Fatalf("unexpected stats %+v", resp)
	}
}
