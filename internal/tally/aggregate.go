package tally

import "github.com/asistencia-escolar/asistencia-api/internal/models"

// Accumulator folds normalized records for one partition (a student, a
// course, a day, a whole range) into a Tally. AUSENTE contributions are
// deferred into per-(student,date) day states and capped once per day when
// the result is taken, so a partition spanning many students still applies
// the cap per student.
//
// The zero value is not usable; construct with NewAccumulator.
type Accumulator struct {
	records int
	present int
	late    int
	pending int

	totalQ int
	lateQ  int

	days map[dayKey]*DayAbsence
}

type dayKey struct {
	studentID string
	date      string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{days: make(map[dayKey]*DayAbsence)}
}

// Add folds one record in. Records with no date or a status outside the
// known set are skipped entirely; hand-edited legacy data must never abort
// or skew a batch.
func (a *Accumulator) Add(r Record) {
	if r.Date == "" || r.Status == "" {
		return
	}
	switch r.Status {
	case "PRESENTE", "AUSENTE", "TARDE", "VERIFICAR":
	default:
		return
	}

	a.records++
	a.totalQ += SessionWeight(r.Context)

	switch r.Status {
	case "PRESENTE":
		a.present++
	case "VERIFICAR":
		a.pending++
	case "TARDE":
		a.late++
		a.lateQ += weightLate
	case "AUSENTE":
		key := dayKey{studentID: r.StudentID, date: r.Date}
		day := a.days[key]
		if day == nil {
			day = &DayAbsence{}
			a.days[key] = day
		}
		day.Observe(r.Context, r.Justified)
	}
}

// Result applies the daily cap and converts the quarter-unit sums to the
// rounded display values. It can be called repeatedly; the accumulator is
// not consumed.
func (a *Accumulator) Result() models.Tally {
	absentQ, justifiedQ := 0, 0
	for _, day := range a.days {
		absentQ += day.CappedAbsence()
		justifiedQ += day.CappedJustified()
	}
	faltasQ := absentQ + a.lateQ

	return models.Tally{
		Records: a.records,
		Present: a.present,
		Late:    a.late,
		Pending: a.pending,

		Absent:    Decimal(absentQ),
		Justified: Decimal(justifiedQ),

		TotalEquiv:     Decimal(a.totalQ),
		AbsenceEquiv:   Decimal(faltasQ),
		AbsentEquiv:    Decimal(absentQ),
		LateEquiv:      Decimal(a.lateQ),
		JustifiedEquiv: Decimal(justifiedQ),

		AttendancePct: Percentage(faltasQ, a.totalQ),
	}
}

// Summarize is the one-shot form: normalize-fold-result over one partition.
func Summarize(records []Record) models.Tally {
	acc := NewAccumulator()
	for _, r := range records {
		acc.Add(r)
	}
	return acc.Result()
}

// AbsenceDays returns, per student, the set of dates with a capped absence
// greater than zero. This is the input the alert evaluator consumes.
func AbsenceDays(records []Record) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, r := range records {
		if r.Date == "" || r.Status != "AUSENTE" {
			continue
		}
		days := out[r.StudentID]
		if days == nil {
			days = make(map[string]bool)
			out[r.StudentID] = days
		}
		days[r.Date] = true
	}
	return out
}
