package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/service"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// AuditHandler exposes the mutation trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs the audit handler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListRecent returns the newest audit entries.
func (h *AuditHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.audit.ListRecent(c.Request.Context(), claimsFromContext(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
