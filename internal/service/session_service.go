package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	"github.com/asistencia-escolar/asistencia-api/internal/repository"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Close(ctx context.Context, sessionID string) error
	List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
}

type auditLogger interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// OpenSessionRequest is the get-or-create payload.
type OpenSessionRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Context  string `json:"context" validate:"omitempty,session_context"`
}

// SessionService owns the roll-call sheet lifecycle.
type SessionService struct {
	repo      sessionStore
	courses   courseAccessReader
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService builds a SessionService with sane defaults.
func NewSessionService(repo sessionStore, courses courseAccessReader, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, courses: courses, audit: audit, validator: validate, logger: logger}
}

// GetOrCreate resolves the deterministic session id for (course, date,
// context) and returns the existing sheet or creates a fresh OPEN one.
// Calling it twice with the same triple always yields the same session.
func (s *SessionService) GetOrCreate(ctx context.Context, claims *models.JWTClaims, req OpenSessionRequest) (*models.Session, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session request")
	}
	if err := requireCourseAccess(ctx, s.courses, claims, req.CourseID); err != nil {
		return nil, false, err
	}

	context := models.SessionContext(req.Context)
	if context == "" {
		context = models.ContextRegular
	}
	sessionID := models.SessionID(req.CourseID, req.Date, context)

	existing, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	session := &models.Session{
		SessionID: sessionID,
		CourseID:  req.CourseID,
		Date:      req.Date,
		Context:   string(context),
		Status:    models.SessionStatusOpen,
		CreatedBy: claims.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, false, err
	}
	s.writeAudit(ctx, claims, models.AuditActionCreateSession, session)
	s.logger.Info("session created",
		zap.String("session_id", sessionID),
		zap.String("course_id", req.CourseID),
		zap.String("date", req.Date))
	return session, true, nil
}

// Close marks an open sheet CLOSED. Closing is idempotent on the API level
// but a second close is reported as a conflict so clients notice stale state.
func (s *SessionService) Close(ctx context.Context, claims *models.JWTClaims, sessionID string) (*models.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	if err := requireCourseAccess(ctx, s.courses, claims, session.CourseID); err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusClosed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "session already closed")
	}

	if err := s.repo.Close(ctx, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, err
	}
	session.Status = models.SessionStatusClosed
	now := time.Now().UTC()
	session.ClosedAt = &now
	s.writeAudit(ctx, claims, models.AuditActionCloseSession, session)
	return session, nil
}

// List returns sessions matching the filter, access-checked per course.
func (s *SessionService) List(ctx context.Context, claims *models.JWTClaims, filter repository.SessionFilter) ([]models.Session, error) {
	if filter.CourseID != "" {
		if err := requireCourseAccess(ctx, s.courses, claims, filter.CourseID); err != nil {
			return nil, err
		}
	} else if claims == nil || !claims.CanCoverAnyCourse() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "course_id is required for this role")
	}
	return s.repo.List(ctx, filter)
}

func (s *SessionService) writeAudit(ctx context.Context, claims *models.JWTClaims, action string, session *models.Session) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(session)
	entry := &models.AuditLog{Action: action, Payload: payload}
	if claims != nil {
		entry.UserID = &claims.UserID
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}
