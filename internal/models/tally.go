package models

// Tally holds the counters produced by the attendance engine for one
// partition (a date range, a student, a course or a single day).
//
// Raw counts are exact (one unit per record). The *Equiv fields carry the
// weighted equivalents: a REGULAR session counts 1.0 toward a full day,
// ED_FISICA 0.5 and a TARDE mark adds 0.25 on the absence side. Absent and
// Justified accumulate the per-day capped values and are therefore
// fractional; they always equal AbsentEquiv/JustifiedEquiv and exist so
// renderers keep one column pair per concept.
type Tally struct {
	Sessions int `json:"sessions"`
	Records  int `json:"total_records"`

	Present int `json:"presentes"`
	Late    int `json:"tardes"`
	Pending int `json:"verificar"`

	Absent    float64 `json:"ausentes"`
	Justified float64 `json:"justificadas"`

	TotalEquiv     float64 `json:"total_equiv"`
	AbsenceEquiv   float64 `json:"faltas_equiv"`
	AbsentEquiv    float64 `json:"ausentes_equiv"`
	LateEquiv      float64 `json:"tardes_equiv"`
	JustifiedEquiv float64 `json:"justificadas_equiv"`

	// AttendancePct is 100·(1−faltas/total) clamped to [0,100]; 0 when
	// TotalEquiv is zero.
	AttendancePct float64 `json:"attendance_pct"`
}

// DailyTally is the per-calendar-day breakdown of a range.
type DailyTally struct {
	Date string `json:"date"`
	Tally
}

// StudentTally carries a student's counters plus roster metadata.
type StudentTally struct {
	StudentID     string  `json:"student_id"`
	CourseID      string  `json:"course_id"`
	StudentName   string  `json:"student_name"`
	GuardianPhone *string `json:"guardian_phone"`
	Tally
}

// CourseTally carries a course's counters plus course metadata.
type CourseTally struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Shift    string `json:"turno"`
	Tally
}

// TimelineEntry is a single normalized record in a student's history,
// annotated with its weight and absence equivalence.
type TimelineEntry struct {
	Date          string  `json:"date"`
	Context       string  `json:"context"`
	Status        string  `json:"status"`
	Note          string  `json:"note"`
	Justified     bool    `json:"justified"`
	SessionID     string  `json:"session_id"`
	SessionWeight float64 `json:"session_weight"`
	AbsenceEquiv  float64 `json:"falta_equiv"`
}
