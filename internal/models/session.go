package models

import (
	"fmt"
	"strings"
	"time"
)

// Session statuses.
const (
	SessionStatusOpen   = "OPEN"
	SessionStatusClosed = "CLOSED"
)

// Session is one roll-call sheet: a course, a date and a context.
type Session struct {
	SessionID     string     `db:"session_id" json:"session_id"`
	CourseID      string     `db:"course_id" json:"course_id"`
	Date          string     `db:"date" json:"date"`
	Context       string     `db:"context" json:"context"`
	Status        string     `db:"status" json:"status"`
	CreatedBy     string     `db:"created_by" json:"created_by"`
	CreatedByName *string    `db:"created_by_name" json:"created_by_name,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ClosedAt      *time.Time `db:"closed_at" json:"closed_at,omitempty"`
}

// SessionID builds the deterministic identifier used since the legacy
// system: SES|{course_id}|{YYYY-MM-DD}|{context}. Creating the same sheet
// twice yields the same id, which is what makes get-or-create idempotent.
func SessionID(courseID, date string, context SessionContext) string {
	return fmt.Sprintf("SES|%s|%s|%s", courseID, date, context)
}

// ParseSessionID recovers course, date and context from a session id.
// Legacy rows may miss the context segment; it defaults to REGULAR.
func ParseSessionID(id string) (courseID, date string, context SessionContext) {
	parts := strings.Split(id, "|")
	if len(parts) > 1 {
		courseID = parts[1]
	}
	if len(parts) > 2 {
		date = parts[2]
	}
	context = ContextRegular
	if len(parts) > 3 && parts[3] != "" {
		context = SessionContext(parts[3])
	}
	return courseID, date, context
}
