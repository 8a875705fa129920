package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

type ackStoreStub struct {
	acks    []models.AlertAck
	upserts []models.AlertAck
}

func (s *ackStoreStub) ListActive(ctx context.Context, courseID, cutoff string) ([]models.AlertAck, error) {
	var out []models.AlertAck
	for _, ack := range s.acks {
		if ack.AckedUntil >= cutoff {
			out = append(out, ack)
		}
	}
	return out, nil
}

func (s *ackStoreStub) Upsert(ctx context.Context, ack *models.AlertAck) error {
	s.upserts = append(s.upserts, *ack)
	return nil
}

func absences(studentID string, dates ...string) []models.ScopedRecord {
	var out []models.ScopedRecord
	for _, date := range dates {
		out = append(out, scoped(studentID, date, "REGULAR", "AUSENTE", ""))
	}
	return out
}

func alertRoster() studentListStub {
	return studentListStub{students: []models.Student{
		{StudentID: "stu-1", CourseID: "1A", LastName: "Vera", FirstName: "Tomás"},
		{StudentID: "stu-2", CourseID: "1A", LastName: "Blanco", FirstName: "Iris"},
	}}
}

func newAlertService(records []models.ScopedRecord, acks *ackStoreStub) *AlertService {
	if acks == nil {
		acks = &ackStoreStub{}
	}
	return NewAlertService(&scopedRecordStub{records: records}, alertRoster(), rosterStub{}, acks, nil, nil, nil, true)
}

func TestAlertServiceStreakTriggers(t *testing.T) {
	svc := newAlertService(absences("stu-1", "2026-03-09", "2026-03-10", "2026-03-11"), nil)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "stu-1", alerts[0].StudentID)
	assert.Equal(t, 3, alerts[0].AbsenceStreak)
	assert.Equal(t, "3 días consecutivos ausente", alerts[0].Reason)
}

func TestAlertServiceBrokenStreakNoAlert(t *testing.T) {
	// A gap resets the streak; two absences stay under every threshold.
	svc := newAlertService(absences("stu-1", "2026-03-09", "2026-03-11"), nil)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestAlertServiceThresholdReasons(t *testing.T) {
	dates := []string{
		"2026-03-02", "2026-03-04", "2026-03-06", "2026-03-09", "2026-03-11",
		"2026-03-13", "2026-03-16", "2026-03-18", "2026-03-20", "2026-03-23",
	}
	svc := newAlertService(absences("stu-1", dates...), nil)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-24", "")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 10, alerts[0].AbsencesTotal)
	assert.Equal(t, 0, alerts[0].AbsenceStreak)
	assert.Equal(t, "llegó a 10 faltas", alerts[0].Reason)
}

func TestAlertServiceRunningCountReason(t *testing.T) {
	dates := []string{"2026-03-02", "2026-03-04", "2026-03-06", "2026-03-09", "2026-03-11"}
	svc := newAlertService(absences("stu-1", dates...), nil)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-12", "")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "tiene 5 faltas", alerts[0].Reason)
}

func TestAlertServiceAckSuppresses(t *testing.T) {
	acks := &ackStoreStub{acks: []models.AlertAck{{
		StudentID:  "stu-1",
		CourseID:   "1A",
		Context:    "ALL",
		AckedUntil: "2026-03-31",
	}}}
	svc := newAlertService(absences("stu-1", "2026-03-09", "2026-03-10", "2026-03-11"), acks)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "REGULAR")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestAlertServiceExpiredAckDoesNotSuppress(t *testing.T) {
	acks := &ackStoreStub{acks: []models.AlertAck{{
		StudentID:  "stu-1",
		CourseID:   "1A",
		Context:    "ALL",
		AckedUntil: "2026-03-10",
	}}}
	svc := newAlertService(absences("stu-1", "2026-03-09", "2026-03-10", "2026-03-11"), acks)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
}

func TestAlertServiceSortsByStreakThenTotal(t *testing.T) {
	records := append(
		absences("stu-1", "2026-03-09", "2026-03-10", "2026-03-11"),
		absences("stu-2", "2026-03-02", "2026-03-04", "2026-03-06", "2026-03-09", "2026-03-11")...,
	)
	svc := newAlertService(records, nil)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "stu-1", alerts[0].StudentID)
	assert.Equal(t, "stu-2", alerts[1].StudentID)
}

func TestAlertServiceAckDefaultsToAllContexts(t *testing.T) {
	acks := &ackStoreStub{}
	svc := newAlertService(nil, acks)

	ack, err := svc.Ack(context.Background(), preceptorClaims(), AckRequest{
		StudentID:  "stu-1",
		CourseID:   "1A",
		AckedUntil: "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "ALL", ack.Context)
	assert.Equal(t, "user-1", ack.AckedBy)
	require.Len(t, acks.upserts, 1)
}

func TestAlertServiceDisabled(t *testing.T) {
	svc := NewAlertService(&scopedRecordStub{}, alertRoster(), rosterStub{}, &ackStoreStub{}, nil, nil, nil, false)

	alerts, err := svc.Evaluate(context.Background(), preceptorClaims(), "1A", "2026-03-11", "")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
