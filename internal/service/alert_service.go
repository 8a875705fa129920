package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/tally"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type ackStore interface {
	ListActive(ctx context.Context, courseID, cutoff string) ([]models.AlertAck, error)
	Upsert(ctx context.Context, ack *models.AlertAck) error
}

// AckRequest acknowledges a student's alert until a date, inclusive.
// Context ALL silences the student across both session contexts.
type AckRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	CourseID   string `json:"course_id" validate:"required"`
	Context    string `json:"context" validate:"omitempty,oneof=REGULAR ED_FISICA ALL"`
	AckedUntil string `json:"acked_until_date" validate:"required,datetime=2006-01-02"`
}

// AlertService evaluates which students need a guardian notification as of
// a cutoff date, and records the acknowledgements that silence them.
type AlertService struct {
	records   scopedRecordReader
	students  studentReader
	courses   courseReader
	acks      ackStore
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	enabled   bool
}

// NewAlertService builds an AlertService with sane defaults.
func NewAlertService(records scopedRecordReader, students studentReader, courses courseReader, acks ackStore, audit auditLogger, validate *validator.Validate, logger *zap.Logger, enabled bool) *AlertService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{records: records, students: students, courses: courses, acks: acks, audit: audit, validator: validate, logger: logger, enabled: enabled}
}

// Evaluate returns the alert list for one course (or every accessible
// course when courseID is empty) as of cutoff. An acknowledged student
// stays silent until their ack expires.
func (s *AlertService) Evaluate(ctx context.Context, claims *models.JWTClaims, courseID, cutoff string, sessionContext models.SessionContext) ([]models.Alert, error) {
	if !s.enabled {
		return []models.Alert{}, nil
	}
	if cutoff == "" {
		cutoff = time.Now().Format("2006-01-02")
	}
	if sessionContext == "" {
		sessionContext = models.ContextAll
	}
	if courseID != "" {
		if err := requireCourseAccess(ctx, s.courses, claims, courseID); err != nil {
			return nil, err
		}
	} else if claims == nil || !claims.CanCoverAnyCourse() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "course_id is required for this role")
	}

	records, err := s.records.ListScoped(ctx, models.RecordFilter{
		CourseID: courseID,
		DateTo:   cutoff,
		Context:  sessionContext,
	})
	if err != nil {
		return nil, err
	}
	roster, err := s.students.ListActive(ctx, courseID)
	if err != nil {
		return nil, err
	}
	acks, err := s.acks.ListActive(ctx, courseID, cutoff)
	if err != nil {
		return nil, err
	}
	suppressed := make(map[string]bool, len(acks))
	for _, ack := range acks {
		suppressed[ackKey(ack.StudentID, ack.CourseID, ack.Context)] = true
	}

	absenceDays := tally.AbsenceDays(normalizeAll(records))

	students := make(map[string]models.Student, len(roster))
	for _, student := range roster {
		students[student.StudentID] = student
	}

	var alerts []models.Alert
	for studentID, days := range absenceDays {
		student, ok := students[studentID]
		if !ok {
			continue
		}
		if suppressed[ackKey(studentID, student.CourseID, string(models.ContextAll))] ||
			suppressed[ackKey(studentID, student.CourseID, string(sessionContext))] {
			continue
		}
		total := len(days)
		streak := tally.Streak(days, cutoff)
		reasons := tally.Reasons(streak, total)
		if len(reasons) == 0 {
			continue
		}
		alerts = append(alerts, models.Alert{
			StudentID:     studentID,
			CourseID:      student.CourseID,
			StudentName:   student.DisplayName(),
			AbsencesTotal: total,
			AbsenceStreak: streak,
			Reason:        strings.Join(reasons, " • "),
			GuardianPhone: student.GuardianPhone,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].AbsenceStreak != alerts[j].AbsenceStreak {
			return alerts[i].AbsenceStreak > alerts[j].AbsenceStreak
		}
		if alerts[i].AbsencesTotal != alerts[j].AbsencesTotal {
			return alerts[i].AbsencesTotal > alerts[j].AbsencesTotal
		}
		return alerts[i].StudentName < alerts[j].StudentName
	})
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

// Ack records an acknowledgement and returns the stored row.
func (s *AlertService) Ack(ctx context.Context, claims *models.JWTClaims, req AckRequest) (*models.AlertAck, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ack")
	}
	if err := requireCourseAccess(ctx, s.courses, claims, req.CourseID); err != nil {
		return nil, err
	}
	ackContext := req.Context
	if ackContext == "" {
		ackContext = string(models.ContextAll)
	}
	ack := &models.AlertAck{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Context:    ackContext,
		AckedUntil: req.AckedUntil,
		AckedBy:    claims.UserID,
	}
	if err := s.acks.Upsert(ctx, ack); err != nil {
		return nil, err
	}
	if s.audit != nil {
		payload, _ := json.Marshal(ack)
		entry := &models.AuditLog{Action: models.AuditActionAckAlert, Payload: payload, UserID: &claims.UserID}
		if err := s.audit.Create(ctx, entry); err != nil {
			s.logger.Warn("audit write failed", zap.String("action", models.AuditActionAckAlert), zap.Error(err))
		}
	}
	return ack, nil
}

func ackKey(studentID, courseID, ackContext string) string {
	return studentID + "|" + courseID + "|" + ackContext
}
