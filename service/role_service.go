// service/role_service.go
package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
)

// IRoleService defines the interface for role operations
type IRoleService interface {
	CreateRole(ctx context.Context, role model.Role, actor model.ActorInfo) (*model.Role, error)
	UpdateRole(ctx context.Context, orgID, roleID string, upd model.RoleUpdate, actor model.ActorInfo) (*model.Role, error)
	DeleteRole(ctx context.Context, orgID, roleID string, actor model.ActorInfo) error
	GetRole(ctx context.Context, orgID, roleID string) (*model.Role, error)
	ListRoles(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error)
}

// RoleService handles business logic for role operations
type RoleService struct {
	roleStore       RoleStore
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	eventBus        *util.EventBus
}

var _ IRoleService = &RoleService{}

// NewRoleService creates a new instance of RoleService
func NewRoleService(roleStore RoleStore, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, auditSvc audit.Service, eventBus *util.EventBus) *RoleService {
	service := &RoleService{
		roleStore:       roleStore,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventRoleCreated, service.handleRoleChanged)
	eventBus.Subscribe(util.EventRoleDeleted, service.handleRoleDeleted)

	return service
}

func (s *RoleService) handleRoleChanged(ctx context.Context, event util.Event) error {
	role := event.Payload.(model.Role)
	if err := s.notificationSvc.NotifyRoleChange(ctx, "created", role); err != nil {
		logger.Warn("Failed to send role creation notification", zap.Error(err), zap.String("roleID", role.ID))
	}
	return nil
}

func (s *RoleService) handleRoleDeleted(ctx context.Context, event util.Event) error {
	roleID := event.Payload.(string)
	if err := s.notificationSvc.NotifyRoleChange(ctx, "deleted", model.Role{ID: roleID}); err != nil {
		logger.Warn("Failed to send role deletion notification", zap.Error(err), zap.String("roleID", roleID))
	}
	return nil
}

// CreateRole validates the role (including every scope against the
// registry) and persists it. Name collisions within the organization are
// rejected by the store.
func (s *RoleService) CreateRole(ctx context.Context, role model.Role, actor model.ActorInfo) (*model.Role, error) {
	if err := s.validationUtil.ValidateRole(role); err != nil {
		return nil, err
	}

	roleID, err := s.roleStore.Create(ctx, role)
	if err != nil {
		logger.Error("Error creating role", zap.Error(err), zap.String("actorID", actor.ID))
		s.recordAudit(ctx, actor, audit.ActionCreateRole, role.ID, false, err)
		return nil, err
	}
	role.ID = roleID

	s.recordAudit(ctx, actor, audit.ActionCreateRole, roleID, true, nil)
	s.eventBus.Publish(ctx, util.EventRoleCreated, role)

	logger.Info("Role created successfully",
		zap.String("roleID", roleID),
		zap.String("actorID", actor.ID))
	return &role, nil
}

// UpdateRole applies a partial update. A scope change is fanned out to every
// holder of the role via the event bus; the fan-out runs outside the request
// path and is retryable per principal.
func (s *RoleService) UpdateRole(ctx context.Context, orgID, roleID string, upd model.RoleUpdate, actor model.ActorInfo) (*model.Role, error) {
	if upd.Scopes != nil {
		if len(*upd.Scopes) == 0 {
			return nil, cw_errors.MissingField("scopes")
		}
		if err := s.validationUtil.ValidateScopes(*upd.Scopes); err != nil {
			return nil, err
		}
	}

	oldRole, err := s.roleStore.Get(ctx, orgID, roleID)
	if err != nil {
		return nil, err
	}

	updatedRole, err := s.roleStore.Update(ctx, orgID, roleID, upd)
	if err != nil {
		logger.Error("Error updating role",
			zap.Error(err),
			zap.String("roleID", roleID),
			zap.String("actorID", actor.ID))
		s.recordAudit(ctx, actor, audit.ActionUpdateRole, roleID, false, err)
		return nil, err
	}

	s.recordAuditWithDiff(ctx, actor, audit.ActionUpdateRole, roleID, oldRole, updatedRole)

	if upd.Scopes != nil {
		s.eventBus.Publish(ctx, util.EventRoleScopesUpdated, ScopeFanoutRequest{
			OrganizationID: orgID,
			RoleID:         roleID,
			Actor:          actor,
		})
	}

	logger.Info("Role updated successfully",
		zap.String("roleID", roleID),
		zap.String("actorID", actor.ID))
	return updatedRole, nil
}

// DeleteRole removes a role. The store refuses while any user still holds
// the role.
func (s *RoleService) DeleteRole(ctx context.Context, orgID, roleID string, actor model.ActorInfo) error {
	if err := s.roleStore.Delete(ctx, orgID, roleID); err != nil {
		logger.Error("Error deleting role",
			zap.Error(err),
			zap.String("roleID", roleID),
			zap.String("actorID", actor.ID))
		s.recordAudit(ctx, actor, audit.ActionDeleteRole, roleID, false, err)
		return err
	}

	s.recordAudit(ctx, actor, audit.ActionDeleteRole, roleID, true, nil)
	s.eventBus.Publish(ctx, util.EventRoleDeleted, roleID)

	logger.Info("Role deleted successfully",
		zap.String("roleID", roleID),
		zap.String("actorID", actor.ID))
	return nil
}

// GetRole retrieves a role by its ID
func (s *RoleService) GetRole(ctx context.Context, orgID, roleID string) (*model.Role, error) {
	return s.roleStore.Get(ctx, orgID, roleID)
}

// ListRoles retrieves roles for an organization with pagination
func (s *RoleService) ListRoles(ctx context.Context, orgID string, limit, offset int) ([]*model.Role, error) {
	roles, err := s.roleStore.List(ctx, orgID, limit, offset)
	if err != nil {
		logger.Error("Error listing roles", zap.Error(err), zap.String("orgID", orgID))
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) recordAudit(ctx context.Context, actor model.ActorInfo, action, roleID string, success bool, opErr error) {
	entry := audit.Entry{
		Actor:        audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name},
		Action:       action,
		Category:     audit.CategoryRBAC,
		ResourceType: "role",
		ResourceID:   roleID,
		Success:      success,
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}
	s.auditSvc.Record(ctx, entry)
}

func (s *RoleService) recordAuditWithDiff(ctx context.Context, actor model.ActorInfo, action, roleID string, oldRole, newRole *model.Role) {
	changes := map[string]interface{}{}
	if oldRole.Name != newRole.Name {
		changes["name"] = map[string]string{"old": oldRole.Name, "new": newRole.Name}
	}
	if oldRole.Description != newRole.Description {
		changes["description"] = map[string]string{"old": oldRole.Description, "new": newRole.Description}
	}
	if len(oldRole.Scopes) != len(newRole.Scopes) || !sameScopeSet(oldRole.Scopes, newRole.Scopes) {
		changes["scopes"] = map[string][]model.Scope{"old": oldRole.Scopes, "new": newRole.Scopes}
	}
	details, _ := json.Marshal(changes)

	s.auditSvc.Record(ctx, audit.Entry{
		Actor:        audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name},
		Action:       action,
		Category:     audit.CategoryRBAC,
		ResourceType: "role",
		ResourceID:   roleID,
		Success:      true,
		Details:      details,
	})
}

func sameScopeSet(a, b []model.Scope) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[model.Scope]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
