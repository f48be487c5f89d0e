package moodRepository

const (
	queryCreateRecord = `
		INSERT INTO mood_records (
			id,
			request_id,
			mood,
			face_count,
			image_digest,
			provider,
			created_at
		) VALUES (
			:id,
			:request_id,
			:mood,
			:face_count,
			:image_digest,
			:provider,
			:created_at
		)
	`

	queryListRecords = `
		SELECT
			id,
			request_id,
			mood,
			face_count,
			image_digest,
			provider,
			created_at
		FROM mood_records
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountRecords = `
		SELECT COUNT(*)
		FROM mood_records
	`

	queryCountByMood = `
		SELECT
			mood,
			COUNT(*) AS total
		FROM mood_records
		GROUP BY mood
		ORDER BY mood ASC
	`
)
