package service

import (
	"context"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type courseAccessReader interface {
	AssignedCourseIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// requireCourseAccess enforces the coverage rule: admins and preceptors
// operate on any course, everyone else only on courses assigned through
// course_users.
func requireCourseAccess(ctx context.Context, courses courseAccessReader, claims *models.JWTClaims, courseID string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.CanCoverAnyCourse() {
		return nil
	}
	assigned, err := courses.AssignedCourseIDs(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if !assigned[courseID] {
		return appErrors.Clone(appErrors.ErrForbidden, "no access to this course")
	}
	return nil
}
