// service/user_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
)

// IUserService defines the interface for user operations
type IUserService interface {
	InviteUser(ctx context.Context, user model.User, actor model.ActorInfo) (*model.User, error)
	UpdateUser(ctx context.Context, orgID, userID string, upd model.UserUpdate, actor model.ActorInfo) (*model.User, error)
	DeleteUser(ctx context.Context, orgID, userID string, actor model.ActorInfo) error
	GetUser(ctx context.Context, orgID, userID string) (*model.User, error)
	ListUsers(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error)
	EffectiveScopes(ctx context.Context, user *model.User) ([]model.Scope, error)
}

// UserService handles principal lifecycle and effective-scope aggregation.
type UserService struct {
	userStore       UserStore
	roleStore       RoleStore
	claimsSvc       IClaimsService
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	eventBus        *util.EventBus
}

var _ IUserService = &UserService{}

// NewUserService creates a new instance of UserService
func NewUserService(userStore UserStore, roleStore RoleStore, claimsSvc IClaimsService, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, auditSvc audit.Service, eventBus *util.EventBus) *UserService {
	service := &UserService{
		userStore:       userStore,
		roleStore:       roleStore,
		claimsSvc:       claimsSvc,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventUserInvited, service.handleUserInvited)

	return service
}

func (s *UserService) handleUserInvited(ctx context.Context, event util.Event) error {
	user := event.Payload.(model.User)
	if err := s.notificationSvc.NotifyUserInvited(ctx, user); err != nil {
		logger.Warn("Failed to send invite notification", zap.Error(err), zap.String("userID", user.ID))
	}
	return nil
}

// EffectiveScopes derives the principal's scope set as the union of all
// assigned roles' scopes. A role id that no longer resolves is skipped with
// a warning; one dangling reference must not fail the whole computation.
func (s *UserService) EffectiveScopes(ctx context.Context, user *model.User) ([]model.Scope, error) {
	if len(user.Roles) == 0 {
		return nil, nil
	}

	roles, err := s.roleStore.GetByIDs(ctx, user.OrganizationID, user.Roles)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(roles))
	scopeLists := make([][]model.Scope, 0, len(roles))
	for _, role := range roles {
		found[role.ID] = struct{}{}
		scopeLists = append(scopeLists, role.Scopes)
	}
	for _, roleID := range user.Roles {
		if _, ok := found[roleID]; !ok {
			logger.Warn("Skipping dangling role reference",
				zap.String("userID", user.ID),
				zap.String("roleID", roleID))
		}
	}

	return model.UnionScopes(scopeLists...), nil
}

// InviteUser creates the authentication identity (claims record) and the
// mirrored user record with scopes computed from the supplied roles. If the
// mirrored record cannot be written, the just-created claims record is
// deleted as a compensating action and the invite fails.
func (s *UserService) InviteUser(ctx context.Context, user model.User, actor model.ActorInfo) (*model.User, error) {
	if err := s.validationUtil.ValidateUser(user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Status = model.UserStatusActive

	scopes, err := s.EffectiveScopes(ctx, &user)
	if err != nil {
		return nil, err
	}
	user.Scopes = scopes

	if err := s.claimsSvc.SetClaims(ctx, user.ID, user.OrganizationID, scopes, nil, actor); err != nil {
		logger.Error("Failed to create authentication identity",
			zap.Error(err),
			zap.String("email", user.Email))
		s.recordAudit(ctx, actor, audit.ActionInviteUser, user.ID, false, err)
		return nil, err
	}

	if _, err := s.userStore.Create(ctx, user); err != nil {
		logger.Error("Failed to create mirrored user record, compensating",
			zap.Error(err),
			zap.String("userID", user.ID))
		if delErr := s.claimsSvc.DeleteClaims(ctx, user.ID); delErr != nil {
			logger.Error("Compensating claims delete failed; orphaned identity",
				zap.Error(delErr),
				zap.String("userID", user.ID))
		}
		s.recordAudit(ctx, actor, audit.ActionInviteUser, user.ID, false, err)
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionInviteUser, user.ID, true, nil)
	s.eventBus.Publish(ctx, util.EventUserInvited, user)

	logger.Info("User invited successfully",
		zap.String("userID", user.ID),
		zap.String("actorID", actor.ID))
	return &user, nil
}

// UpdateUser applies a partial update. A role reassignment recomputes the
// effective scope set and pushes it to the live claims synchronously.
func (s *UserService) UpdateUser(ctx context.Context, orgID, userID string, upd model.UserUpdate, actor model.ActorInfo) (*model.User, error) {
	if upd.Status != nil && *upd.Status != model.UserStatusActive && *upd.Status != model.UserStatusSuspended {
		return nil, cw_errors.InvalidField("status", "must be active or suspended")
	}

	updatedUser, err := s.userStore.Update(ctx, orgID, userID, upd)
	if err != nil {
		logger.Error("Error updating user",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("actorID", actor.ID))
		s.recordAudit(ctx, actor, audit.ActionUpdateUser, userID, false, err)
		return nil, err
	}

	if upd.Roles != nil {
		scopes, err := s.EffectiveScopes(ctx, updatedUser)
		if err != nil {
			return nil, err
		}
		updatedUser.Scopes = scopes
		if err := s.claimsSvc.SetClaims(ctx, userID, orgID, scopes, nil, actor); err != nil {
			// The role links are updated; the claims propagation half
			// failed. Surface the partial report rather than unwinding.
			s.recordAudit(ctx, actor, audit.ActionUpdateUser, userID, false, err)
			return nil, err
		}
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateUser, userID, true, nil)

	logger.Info("User updated successfully",
		zap.String("userID", userID),
		zap.String("actorID", actor.ID))
	return updatedUser, nil
}

// DeleteUser removes the authentication identity and the mirrored record as
// independent steps; the outcome of each is reported, never collapsed into
// a single success/failure.
func (s *UserService) DeleteUser(ctx context.Context, orgID, userID string, actor model.ActorInfo) error {
	partial := &cw_errors.PartialFailure{Op: "delete user"}

	if err := s.claimsSvc.DeleteClaims(ctx, userID); err != nil {
		logger.Error("Failed to delete authentication identity",
			zap.Error(err),
			zap.String("userID", userID))
		partial.Add("authentication identity", err)
	}

	if err := s.userStore.Delete(ctx, orgID, userID); err != nil {
		logger.Error("Failed to delete mirrored user record",
			zap.Error(err),
			zap.String("userID", userID))
		partial.Add("user record", err)
	}

	err := partial.OrNil()
	s.recordAudit(ctx, actor, audit.ActionDeleteUser, userID, err == nil, err)
	if err == nil {
		s.eventBus.Publish(ctx, util.EventUserDeleted, userID)
		logger.Info("User deleted successfully",
			zap.String("userID", userID),
			zap.String("actorID", actor.ID))
	}
	return err
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, orgID, userID string) (*model.User, error) {
	return s.userStore.Get(ctx, orgID, userID)
}

// ListUsers retrieves users for an organization with pagination
func (s *UserService) ListUsers(ctx context.Context, orgID string, limit, offset int) ([]*model.User, error) {
	return s.userStore.List(ctx, orgID, limit, offset)
}

func (s *UserService) recordAudit(ctx context.Context, actor model.ActorInfo, action, userID string, success bool, opErr error) {
	entry := audit.Entry{
		Actor:        audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name},
		Action:       action,
		Category:     audit.CategoryUsers,
		ResourceType: "user",
		ResourceID:   userID,
		Success:      success,
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}
	s.auditSvc.Record(ctx, entry)
}
