// service/scope_fanout_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborworks/causeway-api/audit"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
)

type fanoutFixture struct {
	fanout      *service.ScopeFanout
	roleStore   *fakeRoleStore
	userStore   *fakeUserStore
	claimsStore *fakeClaimsStore
	claimsSvc   *service.ClaimsService
	auditSvc    *fakeAuditService
}

func newFanoutFixture(parallelism int) *fanoutFixture {
	roleStore := newFakeRoleStore()
	userStore := newFakeUserStore()
	claimsStore := newFakeClaimsStore()
	auditSvc := &fakeAuditService{}
	claimsSvc := service.NewClaimsService(claimsStore, userStore, auditSvc)
	fanout := service.NewScopeFanout(roleStore, userStore, claimsSvc,
		util.NewNotificationService(), auditSvc, util.NewEventBus(), parallelism)
	return &fanoutFixture{
		fanout:      fanout,
		roleStore:   roleStore,
		userStore:   userStore,
		claimsStore: claimsStore,
		claimsSvc:   claimsSvc,
		auditSvc:    auditSvc,
	}
}

func (f *fanoutFixture) seedHolder(t *testing.T, userID, roleID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.userStore.Create(ctx, model.User{
		ID:             userID,
		Email:          userID + "@example.org",
		Name:           userID,
		OrganizationID: "org1",
		Roles:          []string{roleID},
	})
	require.NoError(t, err)
	require.NoError(t, f.claimsSvc.SetClaims(ctx, userID, "org1", nil, nil, testActor))

	f.roleStore.mu.Lock()
	f.roleStore.holders[roleID] = append(f.roleStore.holders[roleID], userID)
	f.roleStore.mu.Unlock()
}

func TestFanoutRecomputesEveryHolder(t *testing.T) {
	ctx := context.Background()
	f := newFanoutFixture(2)

	roleID, err := f.roleStore.Create(ctx, model.Role{
		Name:           "Fundraiser",
		OrganizationID: "org1",
		Scopes:         []model.Scope{model.ScopeDonorRead, model.ScopeFormsWrite},
	})
	require.NoError(t, err)
	f.seedHolder(t, "u1", roleID)
	f.seedHolder(t, "u2", roleID)
	f.seedHolder(t, "u3", roleID)

	require.NoError(t, f.fanout.Run(ctx, service.ScopeFanoutRequest{
		OrganizationID: "org1",
		RoleID:         roleID,
		Actor:          testActor,
	}))

	for _, userID := range []string{"u1", "u2", "u3"} {
		claims, err := f.claimsSvc.GetClaims(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, claims)
		assert.ElementsMatch(t, []model.Scope{model.ScopeDonorRead, model.ScopeFormsWrite}, claims.Scopes, userID)
	}

	entries := f.auditSvc.byAction(audit.ActionScopeFanout)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Success)
}

func TestFanoutIsolatesPerPrincipalFailures(t *testing.T) {
	ctx := context.Background()
	f := newFanoutFixture(2)

	roleID, err := f.roleStore.Create(ctx, model.Role{
		Name:           "Fundraiser",
		OrganizationID: "org1",
		Scopes:         []model.Scope{model.ScopeDonorRead},
	})
	require.NoError(t, err)
	f.seedHolder(t, "u1", roleID)
	f.seedHolder(t, "u2", roleID)

	f.claimsStore.mu.Lock()
	f.claimsStore.FailSetFor["u2"] = errors.New("redis timeout")
	f.claimsStore.mu.Unlock()

	err = f.fanout.Run(ctx, service.ScopeFanoutRequest{
		OrganizationID: "org1",
		RoleID:         roleID,
		Actor:          testActor,
	})
	require.Error(t, err)

	// The healthy principal was still recomputed.
	claims, getErr := f.claimsSvc.GetClaims(ctx, "u1")
	require.NoError(t, getErr)
	require.NotNil(t, claims)
	assert.Equal(t, []model.Scope{model.ScopeDonorRead}, claims.Scopes)

	entries := f.auditSvc.byAction(audit.ActionScopeFanout)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
}
