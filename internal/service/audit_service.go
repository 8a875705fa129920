package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
)

type auditReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditService exposes the mutation trail to administrators.
type AuditService struct {
	repo   auditReader
	logger *zap.Logger
}

// NewAuditService constructs an audit service.
func NewAuditService(repo auditReader, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// ListRecent returns the newest audit entries. Admin only.
func (s *AuditService) ListRecent(ctx context.Context, claims *models.JWTClaims, limit int) ([]models.AuditLog, error) {
	if claims == nil || claims.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "audit trail is admin only")
	}
	return s.repo.ListRecent(ctx, limit)
}
