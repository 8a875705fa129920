package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/middleware"
	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Roster     *RosterHandler
	Sessions   *SessionHandler
	Attendance *AttendanceHandler
	Stats      *StatsHandler
	Alerts     *AlertHandler
	Exports    *ExportHandler
	Audit      *AuditHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the API under prefix. Everything except the probes
// and the metrics endpoint sits behind JWT.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, tokens *service.TokenService, metrics *service.MetricsService) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.JWT(tokens))
	api.Use(middleware.Metrics(metrics))
	api.Use(middleware.WithResponseMeta())

	api.GET("/courses", h.Roster.ListCourses)
	api.GET("/courses/:courseId/students", h.Roster.ListStudents)

	api.GET("/sessions", h.Sessions.List)
	api.POST("/sessions", h.Sessions.Open)
	api.POST("/sessions/:sessionId/close", h.Sessions.Close)
	api.GET("/sessions/:sessionId/records", h.Attendance.ListRecords)
	api.PUT("/sessions/:sessionId/records", h.Attendance.BulkMark)
	api.PUT("/sessions/:sessionId/records/:studentId", h.Attendance.Mark)

	api.GET("/stats", h.Stats.Range)
	api.GET("/stats/students", h.Stats.Students)
	api.GET("/stats/courses", middleware.RequireRoles(models.RoleAdmin, models.RolePreceptor), h.Stats.Courses)
	api.GET("/students/:studentId/timeline", h.Stats.Timeline)

	api.GET("/alerts", h.Alerts.List)
	api.POST("/alerts/ack", h.Alerts.Ack)

	api.GET("/reports/students.csv", h.Exports.StudentsCSV)

	api.GET("/audit", middleware.RequireRoles(models.RoleAdmin), h.Audit.ListRecent)
}
