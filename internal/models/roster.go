package models

// Course is a read-only roster entry; course management lives elsewhere.
type Course struct {
	CourseID string `db:"course_id" json:"course_id"`
	Name     string `db:"name" json:"name"`
	Year     int    `db:"year" json:"year"`
	Division string `db:"division" json:"division"`
	Shift    string `db:"turno" json:"turno"`
	Active   bool   `db:"active" json:"active"`
	IsMine   bool   `db:"-" json:"is_mine"`
}

// Student is a read-only roster entry.
type Student struct {
	StudentID     string  `db:"student_id" json:"student_id"`
	CourseID      string  `db:"course_id" json:"course_id"`
	LastName      string  `db:"last_name" json:"last_name"`
	FirstName     string  `db:"first_name" json:"first_name"`
	DNI           *string `db:"dni" json:"dni,omitempty"`
	GuardianPhone *string `db:"guardian_phone" json:"guardian_phone"`
	Active        bool    `db:"active" json:"active"`
}

// DisplayName renders the roster ordering form "Last, First".
func (s Student) DisplayName() string {
	return s.LastName + ", " + s.FirstName
}
