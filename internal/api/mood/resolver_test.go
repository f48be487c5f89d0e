package mood

import (
	"testing"

	"MoodDetector/internal/entity"
)

func face(joy, sorrow, anger, surprise string) entity.Face {
	return entity.Face{
		Joy:      entity.ParseLikelihood(joy),
		Sorrow:   entity.ParseLikelihood(sorrow),
		Anger:    entity.ParseLikelihood(anger),
		Surprise: entity.ParseLikelihood(surprise),
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		result entity.DetectionResult
		want   entity.Mood
	}{
		{
			name:   "no faces",
			result: entity.DetectionResult{},
			want:   entity.MoodNeutral,
		},
		{
			name:   "empty face slice",
			result: entity.DetectionResult{Faces: []entity.Face{}},
			want:   entity.MoodNeutral,
		},
		{
			name:   "joy is strongest",
			result: entity.DetectionResult{Faces: []entity.Face{face("VERY_LIKELY", "UNLIKELY", "POSSIBLE", "LIKELY")}},
			want:   entity.MoodJoy,
		},
		{
			name:   "tie keeps first evaluated attribute",
			result: entity.DetectionResult{Faces: []entity.Face{face("POSSIBLE", "POSSIBLE", "UNLIKELY", "UNLIKELY")}},
			want:   entity.MoodJoy,
		},
		{
			name:   "tie between later attributes",
			result: entity.DetectionResult{Faces: []entity.Face{face("UNLIKELY", "UNLIKELY", "LIKELY", "LIKELY")}},
			want:   entity.MoodAnger,
		},
		{
			name:   "unknown labels score zero",
			result: entity.DetectionResult{Faces: []entity.Face{face("UNKNOWN_LABEL", "UNKNOWN_LABEL", "UNKNOWN_LABEL", "UNKNOWN_LABEL")}},
			want:   entity.MoodNeutral,
		},
		{
			name:   "all very unlikely still beats zero",
			result: entity.DetectionResult{Faces: []entity.Face{face("VERY_UNLIKELY", "VERY_UNLIKELY", "VERY_UNLIKELY", "VERY_UNLIKELY")}},
			want:   entity.MoodJoy,
		},
		{
			name:   "sorrow",
			result: entity.DetectionResult{Faces: []entity.Face{face("VERY_UNLIKELY", "VERY_LIKELY", "UNLIKELY", "UNLIKELY")}},
			want:   entity.MoodSorrow,
		},
		{
			name:   "surprise with unknown others",
			result: entity.DetectionResult{Faces: []entity.Face{face("", "LIKELIHOOD_UNSPECIFIED", "UNKNOWN", "POSSIBLE")}},
			want:   entity.MoodSurprise,
		},
		{
			name: "only first face counts",
			result: entity.DetectionResult{Faces: []entity.Face{
				face("VERY_UNLIKELY", "VERY_UNLIKELY", "LIKELY", "VERY_UNLIKELY"),
				face("VERY_LIKELY", "VERY_UNLIKELY", "VERY_UNLIKELY", "VERY_UNLIKELY"),
			}},
			want: entity.MoodAnger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.result); got != tt.want {
				t.Fatalf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	result := entity.DetectionResult{Faces: []entity.Face{face("LIKELY", "POSSIBLE", "VERY_LIKELY", "UNLIKELY")}}

	first := Resolve(result)
	second := Resolve(result)
	if first != second {
		t.Fatalf("expected identical results, got %q and %q", first, second)
	}
	if first != entity.MoodAnger {
		t.Fatalf("expected %q, got %q", entity.MoodAnger, first)
	}
}
