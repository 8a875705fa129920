package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/service"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// RosterHandler serves the course and student listings.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs the roster handler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ListCourses returns active courses with the caller's assignment flag.
func (h *RosterHandler) ListCourses(c *gin.Context) {
	courses, err := h.roster.ListCourses(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// ListStudents returns the active students of one course.
func (h *RosterHandler) ListStudents(c *gin.Context) {
	students, err := h.roster.ListStudents(c.Request.Context(), claimsFromContext(c), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}
