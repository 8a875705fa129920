package models

import "time"

// Alert is one notification-worthy student, ready for a renderer.
type Alert struct {
	StudentID     string  `json:"student_id"`
	CourseID      string  `json:"course_id"`
	StudentName   string  `json:"student_name"`
	AbsencesTotal int     `json:"absences_total"`
	AbsenceStreak int     `json:"absences_streak"`
	Reason        string  `json:"reason"`
	GuardianPhone *string `json:"guardian_phone"`
}

// AlertAck records that a guardian was already notified; it suppresses the
// student's alerts up to and including AckedUntil. Context ALL suppresses
// regardless of the queried context.
type AlertAck struct {
	StudentID  string    `db:"student_id" json:"student_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	Context    string    `db:"context" json:"context"`
	AckedUntil string    `db:"acked_until_date" json:"acked_until_date"`
	AckedBy    string    `db:"acked_by" json:"acked_by"`
	AckedAt    time.Time `db:"acked_at" json:"acked_at"`
}
