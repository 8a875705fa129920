package models

import "time"

// AttendanceStatus represents the status stored on attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENTE"
	AttendanceStatusAbsent  AttendanceStatus = "AUSENTE"
	AttendanceStatusLate    AttendanceStatus = "TARDE"
	AttendanceStatusPending AttendanceStatus = "VERIFICAR"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusPending:
		return true
	default:
		return false
	}
}

// SessionContext identifies the kind of class a session belongs to.
type SessionContext string

const (
	ContextRegular SessionContext = "REGULAR"
	ContextPE      SessionContext = "ED_FISICA"
	// ContextAll is a filter wildcard, never stored on a session.
	ContextAll SessionContext = "ALL"
)

// Valid returns true when the context can be stored on a session.
func (c SessionContext) Valid() bool {
	return c == ContextRegular || c == ContextPE
}

// SessionRecord is one student's attendance row for one session.
// Status is nullable: an empty mark contributes nothing to any tally.
type SessionRecord struct {
	SessionID string    `db:"session_id" json:"session_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Date      string    `db:"date" json:"date"`
	StudentID string    `db:"student_id" json:"student_id"`
	Status    *string   `db:"status" json:"status"`
	Note      *string   `db:"note" json:"note,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScopedRecord joins a record with the context of its session.
type ScopedRecord struct {
	SessionRecord
	Context string `db:"context" json:"context"`
}

// RecordFilter scopes record queries for tallying.
type RecordFilter struct {
	CourseID  string
	StudentID string
	DateFrom  string
	DateTo    string
	Context   SessionContext
}

// BulkOperationMode controls how bulk writes behave on errors.
type BulkOperationMode string

const (
	BulkModeAtomic         BulkOperationMode = "atomic"
	BulkModePartialOnError BulkOperationMode = "partialOnError"
)
