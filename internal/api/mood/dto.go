package mood

import "time"

type DetectMoodRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

// LegacyDetectResponse is the body of POST /detect-mood.
type LegacyDetectResponse struct {
	Mood string `json:"mood"`
}

type DetectMoodResponse struct {
	Mood      string `json:"mood"`
	FaceCount int    `json:"face_count"`
	RequestID string `json:"request_id,omitempty"`
	Cached    bool   `json:"cached,omitempty"`
}

type HistoryQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type MoodRecordResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	Mood      string    `json:"mood"`
	FaceCount int       `json:"face_count"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Records []MoodRecordResponse `json:"records"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type StatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
