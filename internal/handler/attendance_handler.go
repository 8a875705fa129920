package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/service"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// AttendanceHandler exposes the per-session record endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// ListRecords returns the sheet's marks with justification decoded.
func (h *AttendanceHandler) ListRecords(c *gin.Context) {
	records, err := h.attendance.ListRecords(c.Request.Context(), claimsFromContext(c), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Mark writes one student's mark.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	view, err := h.attendance.Mark(c.Request.Context(), claimsFromContext(c), c.Param("sessionId"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// BulkMark writes a whole roster's marks in one call.
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	var req service.BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.attendance.BulkMark(c.Request.Context(), claimsFromContext(c), c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
