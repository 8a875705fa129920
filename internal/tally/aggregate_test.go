package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(student, date, context, status string, justified bool) Record {
	return Record{StudentID: student, Date: date, Context: context, Status: status, Justified: justified}
}

func TestSummarizeSameDayRegularAndPEAbsence(t *testing.T) {
	// absent in both contexts on one date counts 1.0, not 1.5
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
	})
	assert.Equal(t, 1.0, got.AbsentEquiv)
	assert.Equal(t, 1.0, got.AbsenceEquiv)
	assert.Equal(t, 1.5, got.TotalEquiv)
	assert.Equal(t, 2, got.Records)
}

func TestSummarizePEAbsenceAloneIsHalfDay(t *testing.T) {
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
	})
	assert.Equal(t, 0.5, got.AbsentEquiv)
	assert.Equal(t, 0.5, got.TotalEquiv)
	assert.Equal(t, 0.0, got.AttendancePct)
}

func TestSummarizeJustifiedCap(t *testing.T) {
	// justified REGULAR + unjustified ED_FISICA: absence 1.0, justified 1.0
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", true),
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
	})
	assert.Equal(t, 1.0, got.AbsentEquiv)
	assert.Equal(t, 1.0, got.JustifiedEquiv)
	assert.LessOrEqual(t, got.JustifiedEquiv, got.AbsentEquiv)
}

func TestSummarizeLateIsNeverCapped(t *testing.T) {
	// late in both contexts the same day keeps both quarter contributions
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "TARDE", false),
		rec("st-1", "2024-03-01", "ED_FISICA", "TARDE", false),
	})
	assert.Equal(t, 2, got.Late)
	assert.Equal(t, 0.5, got.LateEquiv)
	assert.Equal(t, 0.5, got.AbsenceEquiv)
	assert.Equal(t, 0.0, got.AbsentEquiv)
}

func TestSummarizeCapsPerStudentInCoursePartition(t *testing.T) {
	// two students absent in both contexts: each one capped independently
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
		rec("st-2", "2024-03-01", "REGULAR", "AUSENTE", false),
		rec("st-2", "2024-03-01", "ED_FISICA", "AUSENTE", false),
	})
	assert.Equal(t, 2.0, got.AbsentEquiv)
}

func TestSummarizeAbsencesOnDifferentDatesAccumulate(t *testing.T) {
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-04", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-05", "ED_FISICA", "AUSENTE", false),
	})
	assert.Equal(t, 2.5, got.AbsentEquiv)
}

func TestSummarizeMixedStatuses(t *testing.T) {
	got := Summarize([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "PRESENTE", false),
		rec("st-1", "2024-03-04", "REGULAR", "TARDE", false),
		rec("st-1", "2024-03-05", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-06", "REGULAR", "VERIFICAR", false),
	})
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 1, got.Pending)
	assert.Equal(t, 4, got.Records)
	assert.Equal(t, 4.0, got.TotalEquiv)
	assert.Equal(t, 1.3, got.AbsenceEquiv) // 1 absence + 0.25 late, rounded
	assert.Equal(t, 68.8, got.AttendancePct)
}

func TestSummarizeSkipsMalformedRecords(t *testing.T) {
	got := Summarize([]Record{
		rec("st-1", "", "REGULAR", "AUSENTE", false),     // missing date
		rec("st-1", "2024-03-01", "REGULAR", "", false),  // unset status
		rec("st-1", "2024-03-01", "REGULAR", "XX", false), // unknown status
		rec("st-1", "2024-03-01", "REGULAR", "PRESENTE", false),
	})
	assert.Equal(t, 1, got.Records)
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1.0, got.TotalEquiv)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	records := []Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", true),
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
		rec("st-1", "2024-03-04", "REGULAR", "TARDE", false),
		rec("st-2", "2024-03-04", "ED_FISICA", "PRESENTE", false),
	}
	first := Summarize(records)
	second := Summarize(records)
	assert.Equal(t, first, second)

	acc := NewAccumulator()
	for _, r := range records {
		acc.Add(r)
	}
	assert.Equal(t, first, acc.Result())
	assert.Equal(t, first, acc.Result()) // Result does not consume
}

func TestSummarizeEmptyInput(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, 0.0, got.TotalEquiv)
	assert.Equal(t, 0.0, got.AttendancePct)
}

func TestAbsenceDays(t *testing.T) {
	days := AbsenceDays([]Record{
		rec("st-1", "2024-03-01", "REGULAR", "AUSENTE", false),
		rec("st-1", "2024-03-01", "ED_FISICA", "AUSENTE", false),
		rec("st-1", "2024-03-04", "ED_FISICA", "AUSENTE", false),
		rec("st-1", "2024-03-05", "REGULAR", "TARDE", false),
		rec("st-2", "2024-03-01", "REGULAR", "PRESENTE", false),
	})
	assert.Len(t, days["st-1"], 2)
	assert.True(t, days["st-1"]["2024-03-01"])
	assert.True(t, days["st-1"]["2024-03-04"])
	assert.Nil(t, days["st-2"])
}
