package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// CourseRepository reads the course roster. Course management is owned by
// another system; this API only lists and resolves access.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActive returns the active courses ordered the way preceptors expect
// them on screen: by year, then division.
func (r *CourseRepository) ListActive(ctx context.Context) ([]models.Course, error) {
	query := `SELECT course_id, name, year, division, turno, active
FROM courses
WHERE active = TRUE
ORDER BY year ASC, division ASC`
	var rows []models.Course
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return rows, nil
}

// AssignedCourseIDs returns the set of course ids assigned to a user via
// course_users.
func (r *CourseRepository) AssignedCourseIDs(ctx context.Context, userID string) (map[string]bool, error) {
	query := `SELECT course_id FROM course_users WHERE user_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list assigned courses: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
