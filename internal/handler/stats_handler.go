package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/middleware"
	"github.com/asistencia-escolar/asistencia-api/internal/service"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// StatsHandler exposes the tally endpoints.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs the stats handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Range returns the summary plus daily breakdown for the filter.
func (h *StatsHandler) Range(c *gin.Context) {
	start := time.Now()
	stats, cacheHit, err := h.stats.GetRangeStats(c.Request.Context(), claimsFromContext(c), recordFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, stats, nil, meta)
}

// Students returns per-student tallies for one course.
func (h *StatsHandler) Students(c *gin.Context) {
	start := time.Now()
	items, cacheHit, err := h.stats.GetStudentStats(c.Request.Context(), claimsFromContext(c), recordFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, items, nil, meta)
}

// Courses returns one tally per active course.
func (h *StatsHandler) Courses(c *gin.Context) {
	start := time.Now()
	items, cacheHit, err := h.stats.GetCourseSummary(c.Request.Context(), claimsFromContext(c), recordFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, items, nil, meta)
}

// Timeline returns one student's normalized history.
func (h *StatsHandler) Timeline(c *gin.Context) {
	entries, err := h.stats.GetStudentTimeline(c.Request.Context(), claimsFromContext(c), c.Param("studentId"), recordFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
