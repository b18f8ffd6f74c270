// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/harborworks/causeway-api/model"
)

// MockRoleService is a mock implementation of service.IRoleService
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) CreateRole(ctx context.Context, role model.Role, actor model.ActorInfo) (*model.Role, error) {
	args := m.Called(ctx, role, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) UpdateRole(ctx context.Context, orgID, roleID string, upd model.RoleUpdate, actor model.ActorInfo) (*model.Role, error) {
	args := m.Called(ctx, orgID, roleID, upd, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) DeleteRole(ctx context.Context, orgID, roleID string, actor model.ActorInfo) error {
	args := m.Called(ctx, orgID, roleID, actor)
	return args.Error(0)
}

func (m *MockRoleService) GetRole(ctx context.Context, orgID, roleID string) (*model.Role, error) {
	args := m.Called(ctx, orgID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleService) ListRoles(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

// MockUserService is a mock implementation of service.IUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) InviteUser(ctx context.Context, user model.User, actor model.ActorInfo) (*model.User, error) {
	args := m.Called(ctx, user, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, orgID, userID string, upd model.UserUpdate, actor model.ActorInfo) (*model.User, error) {
	args := m.Called(ctx, orgID, userID, upd, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, orgID, userID string, actor model.ActorInfo) error {
	args := m.Called(ctx, orgID, userID, actor)
	return args.Error(0)
}

func (m *MockUserService) GetUser(ctx context.Context, orgID, userID string) (*model.User, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserService) EffectiveScopes(ctx context.Context, user *model.User) ([]model.Scope, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Scope), args.Error(1)
}

// MockTemplateService is a mock implementation of service.ITemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) CreateTemplate(ctx context.Context, template model.Template, actor model.ActorInfo) (*model.Template, error) {
	args := m.Called(ctx, template, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) GetTemplate(ctx context.Context, orgID, templateID string) (*model.Template, error) {
	args := m.Called(ctx, orgID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateService) ListTemplates(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Template), args.Error(1)
}

// MockSubmissionService is a mock implementation of service.ISubmissionService
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, orgID, templateID string, fields map[string]string, submitter model.ActorInfo) (*model.Submission, error) {
	args := m.Called(ctx, orgID, templateID, fields, submitter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionService) Approve(ctx context.Context, orgID, submissionID string, approver model.ActorInfo, comments string) error {
	args := m.Called(ctx, orgID, submissionID, approver, comments)
	return args.Error(0)
}

func (m *MockSubmissionService) Reject(ctx context.Context, orgID, submissionID string, rejector model.ActorInfo, reason, comments string) error {
	args := m.Called(ctx, orgID, submissionID, rejector, reason, comments)
	return args.Error(0)
}

func (m *MockSubmissionService) GetSubmission(ctx context.Context, orgID, submissionID string) (*model.Submission, error) {
	args := m.Called(ctx, orgID, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionService) ListSubmissions(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error) {
	args := m.Called(ctx, orgID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Submission), args.Error(1)
}
