package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// RecordRepository persists per-session attendance records. Rows may be
// incomplete or carry the legacy note marker; normalization is the tally
// package's job, not the repository's.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository constructs the repository.
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// ListBySession returns the raw records of one session.
func (r *RecordRepository) ListBySession(ctx context.Context, sessionID string) ([]models.SessionRecord, error) {
	query := `SELECT session_id, course_id, to_char(date, 'YYYY-MM-DD') AS date, student_id, status, note, updated_at
FROM records
WHERE session_id = $1
ORDER BY student_id ASC`
	var rows []models.SessionRecord
	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	return rows, nil
}

// ListScoped returns records joined with their session's context, filtered
// by course, student, date range and context. This is the single read path
// every tally consumer goes through.
func (r *RecordRepository) ListScoped(ctx context.Context, filter models.RecordFilter) ([]models.ScopedRecord, error) {
	query := `SELECT rec.session_id, rec.course_id, to_char(rec.date, 'YYYY-MM-DD') AS date,
       rec.student_id, rec.status, rec.note, rec.updated_at, s.context
FROM records rec
JOIN sessions s ON s.session_id = rec.session_id
WHERE 1=1`
	args := []interface{}{}
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		query += fmt.Sprintf(" AND rec.course_id = $%d", len(args))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND rec.student_id = $%d", len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(" AND rec.date >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(" AND rec.date <= $%d", len(args))
	}
	if filter.Context != "" && filter.Context != models.ContextAll {
		args = append(args, filter.Context)
		query += fmt.Sprintf(" AND s.context = $%d", len(args))
	}
	query += " ORDER BY rec.date ASC, rec.student_id ASC"

	var rows []models.ScopedRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scoped records: %w", err)
	}
	return rows, nil
}

// Upsert writes one record; (session_id, student_id) is the natural key.
func (r *RecordRepository) Upsert(ctx context.Context, record *models.SessionRecord) error {
	record.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO records (session_id, course_id, date, student_id, status, note, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (session_id, student_id)
DO UPDATE SET status = EXCLUDED.status, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		record.SessionID, record.CourseID, record.Date, record.StudentID,
		record.Status, record.Note, record.UpdatedAt); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// BulkUpsert writes a whole roster's marks in one transaction.
func (r *RecordRepository) BulkUpsert(ctx context.Context, records []models.SessionRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk upsert: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO records (session_id, course_id, date, student_id, status, note, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (session_id, student_id)
DO UPDATE SET status = EXCLUDED.status, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			rec.SessionID, rec.CourseID, rec.Date, rec.StudentID,
			rec.Status, rec.Note, rec.UpdatedAt); err != nil {
			return fmt.Errorf("bulk upsert record %s: %w", rec.StudentID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk upsert: %w", err)
	}
	committed = true
	return nil
}
