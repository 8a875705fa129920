package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// SessionRepository persists roll-call sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// SessionFilter scopes session range queries.
type SessionFilter struct {
	CourseID string
	DateFrom string
	DateTo   string
	Context  models.SessionContext
}

// Get returns one session with the creator's display name, or nil when it
// does not exist.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `SELECT s.session_id, s.course_id, to_char(s.date, 'YYYY-MM-DD') AS date, s.context, s.status,
       s.created_by, u.full_name AS created_by_name, s.created_at, s.closed_at
FROM sessions s
LEFT JOIN users u ON u.user_id = s.created_by
WHERE s.session_id = $1`
	var row models.Session
	if err := r.db.GetContext(ctx, &row, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &row, nil
}

// Create inserts a new open session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO sessions (session_id, course_id, date, context, status, created_by, created_at, closed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)`
	if _, err := r.db.ExecContext(ctx, query,
		session.SessionID, session.CourseID, session.Date, session.Context,
		session.Status, session.CreatedBy, session.CreatedAt); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Close marks a session CLOSED.
func (r *SessionRepository) Close(ctx context.Context, sessionID string) error {
	query := `UPDATE sessions SET status = $2, closed_at = $3 WHERE session_id = $1`
	res, err := r.db.ExecContext(ctx, query, sessionID, models.SessionStatusClosed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns the sessions matching the filter, ordered by date.
func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	query := `SELECT s.session_id, s.course_id, to_char(s.date, 'YYYY-MM-DD') AS date, s.context, s.status,
       s.created_by, s.created_at, s.closed_at
FROM sessions s
WHERE 1=1`
	args := []interface{}{}
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		query += fmt.Sprintf(" AND s.course_id = $%d", len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(" AND s.date >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(" AND s.date <= $%d", len(args))
	}
	if filter.Context != "" && filter.Context != models.ContextAll {
		args = append(args, filter.Context)
		query += fmt.Sprintf(" AND s.context = $%d", len(args))
	}
	query += " ORDER BY s.date ASC"

	var rows []models.Session
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}
