package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/middleware"
	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// recordFilterFromQuery binds the common stats query parameters.
func recordFilterFromQuery(c *gin.Context) models.RecordFilter {
	return models.RecordFilter{
		CourseID:  c.Query("course_id"),
		StudentID: c.Query("student_id"),
		DateFrom:  c.Query("from"),
		DateTo:    c.Query("to"),
		Context:   models.SessionContext(c.Query("context")),
	}
}
