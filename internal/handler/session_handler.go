package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/repository"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// SessionHandler exposes the roll-call sheet lifecycle.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs the session handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Open gets or creates the sheet for (course, date, context). A fresh
// sheet answers 201, an existing one 200.
func (h *SessionHandler) Open(c *gin.Context) {
	var req service.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	session, created, err := h.sessions.GetOrCreate(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, session, nil)
}

// Close marks the sheet CLOSED.
func (h *SessionHandler) Close(c *gin.Context) {
	session, err := h.sessions.Close(c.Request.Context(), claimsFromContext(c), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// List returns sessions matching course and date range filters.
func (h *SessionHandler) List(c *gin.Context) {
	filter := repository.SessionFilter{
		CourseID: c.Query("course_id"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Context:  models.SessionContext(c.Query("context")),
	}
	sessions, err := h.sessions.List(c.Request.Context(), claimsFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}
