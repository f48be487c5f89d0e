package moodRepository

import (
	"context"
	"database/sql"
	"time"

	"MoodDetector/internal/entity"
	contextPkg "MoodDetector/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type MoodRecordDB struct {
	ID          string         `db:"id"`
	RequestID   sql.NullString `db:"request_id"`
	Mood        string         `db:"mood"`
	FaceCount   int            `db:"face_count"`
	ImageDigest sql.NullString `db:"image_digest"`
	Provider    sql.NullString `db:"provider"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (m MoodRecordDB) toEntity() entity.MoodRecord {
	return entity.MoodRecord{
		ID:          m.ID,
		RequestID:   m.RequestID.String,
		Mood:        entity.Mood(m.Mood),
		FaceCount:   m.FaceCount,
		ImageDigest: m.ImageDigest.String,
		Provider:    m.Provider.String,
		CreatedAt:   m.CreatedAt,
	}
}

type moodCountDB struct {
	Mood  string `db:"mood"`
	Total int    `db:"total"`
}

func (r *recordsRepository) CreateRecord(ctx context.Context, record entity.MoodRecord) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           record.ID,
		"request_id":   record.RequestID,
		"mood":         record.Mood.String(),
		"face_count":   record.FaceCount,
		"image_digest": record.ImageDigest,
		"provider":     record.Provider,
		"created_at":   record.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRecord, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRecord")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating mood record")
		return err
	}

	return nil
}

// ListRecords returns one page of records, newest first, and the total number
// of records stored.
func (r *recordsRepository) ListRecords(ctx context.Context, limit, offset int) ([]entity.MoodRecord, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryListRecords, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecords named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []MoodRecordDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing mood records")
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRowxContext(ctx, queryCountRecords).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting mood records")
		return nil, 0, err
	}

	records := make([]entity.MoodRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}

	return records, total, nil
}

func (r *recordsRepository) CountByMood(ctx context.Context) ([]entity.MoodCount, error) {
	var rows []moodCountDB
	if err := r.q.SelectContext(ctx, &rows, queryCountByMood); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Database error when counting moods")
		return nil, err
	}

	counts := make([]entity.MoodCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entity.MoodCount{Mood: entity.Mood(row.Mood), Total: row.Total})
	}

	return counts, nil
}
