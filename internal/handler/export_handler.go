package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/service"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// ExportHandler serves CSV downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// StudentsCSV streams the per-student tallies of one course as CSV.
func (h *ExportHandler) StudentsCSV(c *gin.Context) {
	payload, filename, err := h.exports.StudentsCSV(c.Request.Context(), claimsFromContext(c), recordFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}
