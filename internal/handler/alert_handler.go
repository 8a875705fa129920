package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// AlertHandler exposes alert evaluation and acknowledgement.
type AlertHandler struct {
	alerts *service.AlertService
}

// NewAlertHandler constructs the alert handler.
func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List evaluates alerts as of the cutoff date (default today).
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alerts.Evaluate(
		c.Request.Context(),
		claimsFromContext(c),
		c.Query("course_id"),
		c.Query("to"),
		models.SessionContext(c.Query("context")),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alerts, nil)
}

// Ack silences a student's alerts until a date.
func (h *AlertHandler) Ack(c *gin.Context) {
	var req service.AckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	ack, err := h.alerts.Ack(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ack)
}
