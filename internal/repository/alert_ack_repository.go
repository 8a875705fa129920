package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// AlertAckRepository stores acknowledgements that suppress alerts until a
// given date. Context ALL suppresses across both session contexts.
type AlertAckRepository struct {
	db *sqlx.DB
}

// NewAlertAckRepository constructs the repository.
func NewAlertAckRepository(db *sqlx.DB) *AlertAckRepository {
	return &AlertAckRepository{db: db}
}

// ListActive returns acknowledgements still in force at cutoff (YYYY-MM-DD).
func (r *AlertAckRepository) ListActive(ctx context.Context, courseID, cutoff string) ([]models.AlertAck, error) {
	query := `SELECT student_id, course_id, context, to_char(acked_until_date, 'YYYY-MM-DD') AS acked_until_date, acked_by, acked_at
FROM alerts_ack
WHERE acked_until_date >= $1`
	args := []interface{}{cutoff}
	if courseID != "" {
		args = append(args, courseID)
		query += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	var rows []models.AlertAck
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active acks: %w", err)
	}
	return rows, nil
}

// Upsert records an acknowledgement, replacing any previous one for the
// same (student, course, context) triple.
func (r *AlertAckRepository) Upsert(ctx context.Context, ack *models.AlertAck) error {
	ack.AckedAt = time.Now().UTC()
	query := `INSERT INTO alerts_ack (student_id, course_id, context, acked_until_date, acked_by, acked_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id, course_id, context)
DO UPDATE SET acked_until_date = EXCLUDED.acked_until_date, acked_by = EXCLUDED.acked_by, acked_at = EXCLUDED.acked_at`
	if _, err := r.db.ExecContext(ctx, query,
		ack.StudentID, ack.CourseID, ack.Context, ack.AckedUntil, ack.AckedBy, ack.AckedAt); err != nil {
		return fmt.Errorf("upsert alert ack: %w", err)
	}
	return nil
}
