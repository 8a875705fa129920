package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// StudentRepository reads the student roster.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListActive returns active students, ordered by last then first name.
// An empty courseID returns the whole school.
func (r *StudentRepository) ListActive(ctx context.Context, courseID string) ([]models.Student, error) {
	query := `SELECT student_id, course_id, last_name, first_name, dni, guardian_phone, active
FROM students
WHERE active = TRUE`
	args := []interface{}{}
	if courseID != "" {
		query += " AND course_id = $1"
		args = append(args, courseID)
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	var rows []models.Student
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return rows, nil
}
