package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestSessionRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"session_id", "course_id", "date", "context", "status", "created_by", "created_by_name", "created_at", "closed_at"}).
		AddRow("SES|1A|2026-03-10|REGULAR", "1A", "2026-03-10", "REGULAR", "OPEN", "user-1",
			sql.NullString{String: "Gómez, Laura", Valid: true}, now, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.session_id")).
		WithArgs("SES|1A|2026-03-10|REGULAR").
		WillReturnRows(rows)

	session, err := repo.Get(context.Background(), "SES|1A|2026-03-10|REGULAR")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "1A", session.CourseID)
	assert.Equal(t, "2026-03-10", session.Date)
	assert.Equal(t, "REGULAR", session.Context)
	require.NotNil(t, session.CreatedByName)
	assert.Equal(t, "Gómez, Laura", *session.CreatedByName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.session_id")).
		WithArgs("SES|1A|2026-03-11|REGULAR").
		WillReturnError(sql.ErrNoRows)

	session, err := repo.Get(context.Background(), "SES|1A|2026-03-11|REGULAR")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionRepositoryClose(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET status = $2, closed_at = $3 WHERE session_id = $1")).
		WithArgs("SES|1A|2026-03-10|REGULAR", models.SessionStatusClosed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Close(context.Background(), "SES|1A|2026-03-10|REGULAR")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCloseMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions")).
		WithArgs("SES|1A|2026-03-12|REGULAR", models.SessionStatusClosed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Close(context.Background(), "SES|1A|2026-03-12|REGULAR")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{"session_id", "course_id", "date", "context", "status", "created_by", "created_at", "closed_at"}).
		AddRow("SES|1A|2026-03-09|ED_FISICA", "1A", "2026-03-09", "ED_FISICA", "CLOSED", "user-1", time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.session_id")).
		WithArgs("1A", "2026-03-01", "2026-03-31", "ED_FISICA").
		WillReturnRows(rows)

	sessions, err := repo.List(context.Background(), SessionFilter{
		CourseID: "1A",
		DateFrom: "2026-03-01",
		DateTo:   "2026-03-31",
		Context:  models.ContextPE,
	})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ED_FISICA", sessions[0].Context)
}
