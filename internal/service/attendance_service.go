package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/tally"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type recordStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.SessionRecord, error)
	Upsert(ctx context.Context, record *models.SessionRecord) error
	BulkUpsert(ctx context.Context, records []models.SessionRecord) error
}

type sessionReader interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
}

// MarkRequest is one student's mark for one session. An empty status
// un-sets the mark: the stored row keeps a NULL status and loses its
// justification and note.
type MarkRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"omitempty,attendance_status"`
	Justified bool   `json:"justified"`
	Note      string `json:"note" validate:"max=500"`
}

// BulkMarkRequest carries a whole roster's marks.
type BulkMarkRequest struct {
	Mode  string        `json:"mode" validate:"omitempty,oneof=atomic partialOnError"`
	Marks []MarkRequest `json:"marks" validate:"required,min=1"`
}

// BulkMarkResult reports the per-student outcome of a partial bulk write.
type BulkMarkResult struct {
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// RecordView is a session record with the justification flag decoded from
// the note marker.
type RecordView struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	Justified bool   `json:"justified"`
	Note      string `json:"note"`
}

// AttendanceService owns the per-session record read and write paths. The
// legacy note marker never crosses this layer: it is decoded on reads and
// re-applied on writes.
type AttendanceService struct {
	records   recordStore
	sessions  sessionReader
	courses   courseAccessReader
	audit     auditLogger
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService builds an AttendanceService with sane defaults.
func NewAttendanceService(records recordStore, sessions sessionReader, courses courseAccessReader, audit auditLogger, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{records: records, sessions: sessions, courses: courses, audit: audit, cache: cache, validator: validate, logger: logger}
}

// ListRecords returns the session's marks with justification decoded.
func (s *AttendanceService) ListRecords(ctx context.Context, claims *models.JWTClaims, sessionID string) ([]RecordView, error) {
	session, err := s.requireSession(ctx, claims, sessionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.records.ListBySession(ctx, session.SessionID)
	if err != nil {
		return nil, err
	}
	views := make([]RecordView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toRecordView(row, session.Context))
	}
	return views, nil
}

// Mark writes one student's mark. Justified only survives on AUSENTE.
func (s *AttendanceService) Mark(ctx context.Context, claims *models.JWTClaims, sessionID, studentID string, req MarkRequest) (*RecordView, error) {
	req.StudentID = studentID
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark")
	}
	session, err := s.requireOpenSession(ctx, claims, sessionID)
	if err != nil {
		return nil, err
	}

	record := buildRecord(session, req)
	if err := s.records.Upsert(ctx, &record); err != nil {
		return nil, err
	}
	s.writeAudit(ctx, claims, models.AuditActionUpdateRecord, record)
	s.invalidateStats(ctx)
	view := toRecordView(record, session.Context)
	return &view, nil
}

// BulkMark writes a batch of marks. Mode atomic (the default) commits all
// or nothing; partialOnError validates each mark independently and writes
// the valid ones, reporting the rest.
func (s *AttendanceService) BulkMark(ctx context.Context, claims *models.JWTClaims, sessionID string, req BulkMarkRequest) (*BulkMarkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk request")
	}
	session, err := s.requireOpenSession(ctx, claims, sessionID)
	if err != nil {
		return nil, err
	}

	mode := models.BulkOperationMode(req.Mode)
	if mode == "" {
		mode = models.BulkModeAtomic
	}

	result := &BulkMarkResult{Failed: map[string]string{}}
	seen := make(map[string]bool, len(req.Marks))
	var batch []models.SessionRecord
	for i, mark := range req.Marks {
		if seen[mark.StudentID] {
			msg := fmt.Sprintf("duplicate mark for student %s", mark.StudentID)
			if mode == models.BulkModeAtomic {
				return nil, appErrors.Clone(appErrors.ErrValidation, msg)
			}
			result.Failed[mark.StudentID] = "duplicate mark"
			continue
		}
		seen[mark.StudentID] = true
		if err := s.validator.Struct(mark); err != nil {
			if mode == models.BulkModeAtomic {
				return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
					fmt.Sprintf("invalid mark at index %d", i))
			}
			result.Failed[mark.StudentID] = "invalid mark"
			continue
		}
		batch = append(batch, buildRecord(session, mark))
	}

	if len(batch) > 0 {
		if err := s.records.BulkUpsert(ctx, batch); err != nil {
			return nil, err
		}
	}
	result.Updated = len(batch)
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	s.writeAudit(ctx, claims, models.AuditActionBulkUpsert, map[string]interface{}{
		"session_id": sessionID,
		"updated":    result.Updated,
	})
	if result.Updated > 0 {
		s.invalidateStats(ctx)
	}
	return result, nil
}

// invalidateStats drops every cached aggregate; marks are rare enough that
// pattern-level invalidation beats tracking individual keys.
func (s *AttendanceService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "stats*"); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *AttendanceService) requireSession(ctx context.Context, claims *models.JWTClaims, sessionID string) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	if err := requireCourseAccess(ctx, s.courses, claims, session.CourseID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AttendanceService) requireOpenSession(ctx context.Context, claims *models.JWTClaims, sessionID string) (*models.Session, error) {
	session, err := s.requireSession(ctx, claims, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusClosed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "session is closed")
	}
	return session, nil
}

func (s *AttendanceService) writeAudit(ctx context.Context, claims *models.JWTClaims, action string, detail interface{}) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(detail)
	entry := &models.AuditLog{Action: action, Payload: payload}
	if claims != nil {
		entry.UserID = &claims.UserID
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

// buildRecord converts a validated mark into its storage row. The justified
// flag is encoded into the note here, and only for AUSENTE. An empty status
// clears the row: NULL status, no note, no justification.
func buildRecord(session *models.Session, mark MarkRequest) models.SessionRecord {
	record := models.SessionRecord{
		SessionID: session.SessionID,
		CourseID:  session.CourseID,
		Date:      session.Date,
		StudentID: mark.StudentID,
	}
	if mark.Status == "" {
		return record
	}
	justified := mark.Justified && mark.Status == string(models.AttendanceStatusAbsent)
	note := tally.EncodeNote(justified, mark.Note)
	status := mark.Status
	record.Status = &status
	record.Note = &note
	return record
}

func toRecordView(row models.SessionRecord, context string) RecordView {
	raw := tally.RawRecord{
		StudentID: row.StudentID,
		CourseID:  row.CourseID,
		Date:      row.Date,
		Context:   context,
	}
	if row.Status != nil {
		raw.Status = *row.Status
	}
	if row.Note != nil {
		raw.Note = *row.Note
	}
	rec := tally.Normalize(raw)
	return RecordView{
		StudentID: rec.StudentID,
		Status:    rec.Status,
		Justified: rec.Justified,
		Note:      rec.Note,
	}
}
