package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

func TestExportServiceStudentsCSV(t *testing.T) {
	records := &scopedRecordStub{records: []models.ScopedRecord{
		scoped("stu-1", "2026-03-10", "REGULAR", "AUSENTE", ""),
		scoped("stu-1", "2026-03-11", "REGULAR", "TARDE", ""),
	}}
	students := studentListStub{students: []models.Student{
		{StudentID: "stu-1", CourseID: "1A", LastName: "Vera", FirstName: "Tomás"},
	}}
	stats := NewStatsService(records, sessionListerStub{}, rosterStub{}, students, nil, nil, nil)
	svc := NewExportService(stats, nil, true)

	payload, filename, err := svc.StudentsCSV(context.Background(), preceptorClaims(), models.RecordFilter{
		CourseID: "1A",
		DateFrom: "2026-03-01",
		DateTo:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "asistencia_1A_2026-03-01_2026-03-31.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "alumno,curso,sesiones,presentes,tardes,verificar,ausentes,justificadas,faltas_equiv,total_equiv,asistencia_pct", lines[0])
	assert.Contains(t, lines[1], "Vera")
	assert.Contains(t, lines[1], "1.3")
}

func TestExportServiceDisabled(t *testing.T) {
	stats := NewStatsService(&scopedRecordStub{}, sessionListerStub{}, rosterStub{}, studentListStub{}, nil, nil, nil)
	svc := NewExportService(stats, nil, false)

	_, _, err := svc.StudentsCSV(context.Background(), preceptorClaims(), models.RecordFilter{CourseID: "1A"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
