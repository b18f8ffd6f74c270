// service/scope_fanout.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harborworks/causeway-api/audit"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
)

// ScopeFanoutRequest asks for every holder of a role to have their
// effective scopes recomputed after the role's scope list changed.
type ScopeFanoutRequest struct {
	OrganizationID string
	RoleID         string
	Actor          model.ActorInfo
}

// ScopeFanout recomputes the denormalized scope set of every principal
// holding an edited role. Each principal is recomputed independently with
// bounded parallelism: a failure for one leaves the rest untouched and the
// failed principals are reported to administrators, never silently dropped.
// Re-running the fan-out is safe; recompute is idempotent.
type ScopeFanout struct {
	roleStore       RoleStore
	userStore       UserStore
	claimsSvc       IClaimsService
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	parallelism     int
}

func NewScopeFanout(roleStore RoleStore, userStore UserStore, claimsSvc IClaimsService, notificationSvc *util.NotificationService, auditSvc audit.Service, eventBus *util.EventBus, parallelism int) *ScopeFanout {
	if parallelism <= 0 {
		parallelism = 1
	}
	fanout := &ScopeFanout{
		roleStore:       roleStore,
		userStore:       userStore,
		claimsSvc:       claimsSvc,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		parallelism:     parallelism,
	}

	eventBus.Subscribe(util.EventRoleScopesUpdated, fanout.handleRoleScopesUpdated)

	return fanout
}

func (f *ScopeFanout) handleRoleScopesUpdated(ctx context.Context, event util.Event) error {
	request := event.Payload.(ScopeFanoutRequest)
	return f.Run(ctx, request)
}

// Run executes the fan-out for one role edit.
func (f *ScopeFanout) Run(ctx context.Context, request ScopeFanoutRequest) error {
	holders, err := f.roleStore.Holders(ctx, request.OrganizationID, request.RoleID)
	if err != nil {
		logger.Error("Failed to list role holders for fan-out",
			zap.Error(err),
			zap.String("roleID", request.RoleID))
		return err
	}

	logger.Info("Starting scope fan-out",
		zap.String("roleID", request.RoleID),
		zap.Int("holders", len(holders)))

	type failure struct {
		userID string
		err    error
	}
	failures := make(chan failure, len(holders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.parallelism)
	for _, userID := range holders {
		userID := userID
		g.Go(func() error {
			if err := f.recomputeUser(gctx, request.OrganizationID, userID, request.Actor); err != nil {
				logger.Error("Scope recompute failed for principal",
					zap.Error(err),
					zap.String("userID", userID),
					zap.String("roleID", request.RoleID))
				failures <- failure{userID: userID, err: err}
			}
			// Per-principal failures never abort the batch.
			return nil
		})
	}
	g.Wait()
	close(failures)

	var failedIDs []string
	for fail := range failures {
		failedIDs = append(failedIDs, fail.userID)
	}

	details, _ := json.Marshal(map[string]interface{}{
		"holders": len(holders),
		"failed":  failedIDs,
	})
	f.auditSvc.Record(ctx, audit.Entry{
		Actor:        audit.Actor{ID: request.Actor.ID, Email: request.Actor.Email, Name: request.Actor.Name},
		Action:       audit.ActionScopeFanout,
		Category:     audit.CategoryRBAC,
		ResourceType: "role",
		ResourceID:   request.RoleID,
		Success:      len(failedIDs) == 0,
		Details:      details,
	})

	if len(failedIDs) > 0 {
		message := fmt.Sprintf("scope fan-out for role %s left %d of %d principals with stale scopes: %v",
			request.RoleID, len(failedIDs), len(holders), failedIDs)
		if err := f.notificationSvc.NotifyAdmins(ctx, request.OrganizationID, message); err != nil {
			logger.Error("Failed to alert admins about stale scopes", zap.Error(err))
		}
		return fmt.Errorf("scope fan-out incomplete: %d principals stale", len(failedIDs))
	}

	logger.Info("Scope fan-out complete", zap.String("roleID", request.RoleID))
	return nil
}

func (f *ScopeFanout) recomputeUser(ctx context.Context, orgID, userID string, actor model.ActorInfo) error {
	user, err := f.userStore.Get(ctx, orgID, userID)
	if err != nil {
		return err
	}

	roles, err := f.roleStore.GetByIDs(ctx, orgID, user.Roles)
	if err != nil {
		return err
	}
	scopeLists := make([][]model.Scope, 0, len(roles))
	for _, role := range roles {
		scopeLists = append(scopeLists, role.Scopes)
	}
	scopes := model.UnionScopes(scopeLists...)

	return f.claimsSvc.SetClaims(ctx, userID, orgID, scopes, nil, actor)
}
