package entity

import "time"

type Mood string

const (
	MoodJoy      Mood = "Joy"
	MoodSorrow   Mood = "Sorrow"
	MoodAnger    Mood = "Anger"
	MoodSurprise Mood = "Surprise"
	MoodNeutral  Mood = "Neutral"
)

// MoodNoFace is the wire value returned when the provider found no face. It is
// lower-case for compatibility with existing clients.
const MoodNoFace Mood = "neutral"

func (m Mood) String() string {
	return string(m)
}

type MoodRecord struct {
	ID          string
	RequestID   string
	Mood        Mood
	FaceCount   int
	ImageDigest string
	Provider    string
	CreatedAt   time.Time
}

type MoodCount struct {
	Mood  Mood
	Total int
}
