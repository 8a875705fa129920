package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
	"github.com/asistencia-escolar/asistencia-api/pkg/export"
)

// ExportService renders per-student tallies as downloadable CSV. The
// columns mirror the on-screen stats table so the file can go straight to
// the school office.
type ExportService struct {
	stats   *StatsService
	logger  *zap.Logger
	enabled bool
}

// NewExportService constructs an export service.
func NewExportService(stats *StatsService, logger *zap.Logger, enabled bool) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{stats: stats, logger: logger, enabled: enabled}
}

// StudentsCSV renders the per-student tallies of one course as CSV bytes
// plus the suggested filename.
func (s *ExportService) StudentsCSV(ctx context.Context, claims *models.JWTClaims, filter models.RecordFilter) ([]byte, string, error) {
	if !s.enabled {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}
	items, _, err := s.stats.GetStudentStats(ctx, claims, filter)
	if err != nil {
		return nil, "", err
	}

	report := export.NewReport("alumno", "curso", "sesiones", "presentes", "tardes", "verificar",
		"ausentes", "justificadas", "faltas_equiv", "total_equiv", "asistencia_pct")
	for _, item := range items {
		if err := report.AddRow(
			item.StudentName,
			item.CourseID,
			export.Count(item.Sessions),
			export.Count(item.Present),
			export.Count(item.Late),
			export.Count(item.Pending),
			export.Equiv(item.Absent),
			export.Equiv(item.Justified),
			export.Equiv(item.AbsenceEquiv),
			export.Equiv(item.TotalEquiv),
			export.Equiv(item.AttendancePct),
		); err != nil {
			return nil, "", err
		}
	}

	payload, err := report.CSV()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("asistencia_%s_%s_%s.csv", filter.CourseID, orDefault(filter.DateFrom, "inicio"), orDefault(filter.DateTo, "hoy"))
	return payload, filename, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
