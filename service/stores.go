// service/stores.go
package service

import (
	"context"
	"time"

	"github.com/harborworks/causeway-api/dao"
	"github.com/harborworks/causeway-api/model"
)

// Store interfaces consumed by the services. The DAOs satisfy them; tests
// substitute in-memory fakes.

type RoleStore interface {
	Create(ctx context.Context, role model.Role) (string, error)
	Update(ctx context.Context, orgID, roleID string, upd model.RoleUpdate) (*model.Role, error)
	Delete(ctx context.Context, orgID, roleID string) error
	Get(ctx context.Context, orgID, roleID string) (*model.Role, error)
	GetByIDs(ctx context.Context, orgID string, roleIDs []string) ([]*model.Role, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error)
	Holders(ctx context.Context, orgID, roleID string) ([]string, error)
}

type UserStore interface {
	Create(ctx context.Context, user model.User) (string, error)
	Update(ctx context.Context, orgID, userID string, upd model.UserUpdate) (*model.User, error)
	SetScopes(ctx context.Context, orgID, userID string, scopes []model.Scope) error
	Delete(ctx context.Context, orgID, userID string) error
	Get(ctx context.Context, orgID, userID string) (*model.User, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error)
}

type TemplateStore interface {
	Create(ctx context.Context, template model.Template) (string, error)
	Get(ctx context.Context, orgID, templateID string) (*model.Template, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, submission model.Submission) (string, error)
	Approve(ctx context.Context, orgID, submissionID string, record model.ApprovalRecord, processingHours float64) error
	Reject(ctx context.Context, orgID, submissionID string, record model.RejectionRecord, processingHours float64) error
	Get(ctx context.Context, orgID, submissionID string) (*model.Submission, error)
	List(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error)
}

type ClaimsStore interface {
	Set(ctx context.Context, claims model.Claims) error
	Get(ctx context.Context, principalID string) (*model.Claims, error)
	Delete(ctx context.Context, principalID string) error
}

type AnalyticsStore interface {
	RecordSubmission(ctx context.Context, orgID, templateID, actorID string, at time.Time) error
	RecordDecision(ctx context.Context, orgID, templateID, actorID, status string, at time.Time) error
	RecordProcessingTime(ctx context.Context, orgID, templateID string, hours float64) error
	TemplateStats(ctx context.Context, orgID, templateID string) (map[string]string, error)
	DailyStats(ctx context.Context, orgID string, day time.Time) (map[string]string, error)
}

var (
	_ RoleStore       = (*dao.RoleDAO)(nil)
	_ UserStore       = (*dao.UserDAO)(nil)
	_ TemplateStore   = (*dao.TemplateDAO)(nil)
	_ SubmissionStore = (*dao.SubmissionDAO)(nil)
	_ ClaimsStore     = (*dao.ClaimsDAO)(nil)
	_ AnalyticsStore  = (*dao.AnalyticsDAO)(nil)
)
