package mood

import "MoodDetector/internal/entity"

type scoredAttribute struct {
	mood       entity.Mood
	likelihood entity.Likelihood
}

// Resolve picks the dominant mood of the first detected face. Attributes are
// evaluated in the order Joy, Sorrow, Anger, Surprise and only a strictly
// higher score replaces the running best, so ties keep the earlier attribute.
// A result without faces, or a face whose attributes all score zero, resolves
// to Neutral.
func Resolve(result entity.DetectionResult) entity.Mood {
	if len(result.Faces) == 0 {
		return entity.MoodNeutral
	}

	face := result.Faces[0]
	attributes := [...]scoredAttribute{
		{entity.MoodJoy, face.Joy},
		{entity.MoodSorrow, face.Sorrow},
		{entity.MoodAnger, face.Anger},
		{entity.MoodSurprise, face.Surprise},
	}

	mostProminent := entity.MoodNeutral
	highest := 0
	for _, attr := range attributes {
		if score := attr.likelihood.Score(); score > highest {
			highest = score
			mostProminent = attr.mood
		}
	}

	return mostProminent
}
