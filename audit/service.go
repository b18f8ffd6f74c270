// audit/service.go
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/harborworks/causeway-api/logging"
)

// Service is the audit trail surface used by the rest of the system.
// Record is fire-and-forget: write failures are logged locally and never
// surfaced to the caller, so audit completeness is best-effort and callers
// must not rely on audit records for correctness-critical logic.
type Service interface {
	Record(ctx context.Context, entry Entry)
	Search(ctx context.Context, q Query) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if _, err := s.repo.Append(ctx, entry); err != nil {
		logger.Error("Failed to write audit entry",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("resourceID", entry.ResourceID))
	}
}

func (s *service) Search(ctx context.Context, q Query) ([]Entry, error) {
	return s.repo.Search(ctx, q)
}
