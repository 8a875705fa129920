package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

type courseReader interface {
	ListActive(ctx context.Context) ([]models.Course, error)
	AssignedCourseIDs(ctx context.Context, userID string) (map[string]bool, error)
}

type studentReader interface {
	ListActive(ctx context.Context, courseID string) ([]models.Student, error)
}

// RosterService serves the read-only course and student lists the client
// renders before any attendance work starts.
type RosterService struct {
	courses  courseReader
	students studentReader
	logger   *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(courses courseReader, students studentReader, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{courses: courses, students: students, logger: logger}
}

// ListCourses returns active courses with IsMine set from the caller's
// assignments. Admins and preceptors see every course as theirs.
func (s *RosterService) ListCourses(ctx context.Context, claims *models.JWTClaims) ([]models.Course, error) {
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return courses, nil
	}
	if claims.CanCoverAnyCourse() {
		for i := range courses {
			courses[i].IsMine = true
		}
		return courses, nil
	}
	assigned, err := s.courses.AssignedCourseIDs(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].IsMine = assigned[courses[i].CourseID]
	}
	return courses, nil
}

// ListStudents returns the active students of one course, in roster order.
func (s *RosterService) ListStudents(ctx context.Context, claims *models.JWTClaims, courseID string) ([]models.Student, error) {
	if err := requireCourseAccess(ctx, s.courses, claims, courseID); err != nil {
		return nil, err
	}
	return s.students.ListActive(ctx, courseID)
}
