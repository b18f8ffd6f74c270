// service/user_service_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
)

type userFixture struct {
	svc        *service.UserService
	claimsSvc  *service.ClaimsService
	roleStore  *fakeRoleStore
	userStore  *fakeUserStore
	claimsStor *fakeClaimsStore
	auditSvc   *fakeAuditService
}

func newUserFixture() *userFixture {
	roleStore := newFakeRoleStore()
	userStore := newFakeUserStore()
	claimsStore := newFakeClaimsStore()
	auditSvc := &fakeAuditService{}
	claimsSvc := service.NewClaimsService(claimsStore, userStore, auditSvc)
	svc := service.NewUserService(userStore, roleStore, claimsSvc,
		util.NewValidationUtil(), util.NewNotificationService(), auditSvc, util.NewEventBus())
	return &userFixture{
		svc:        svc,
		claimsSvc:  claimsSvc,
		roleStore:  roleStore,
		userStore:  userStore,
		claimsStor: claimsStore,
		auditSvc:   auditSvc,
	}
}

func (f *userFixture) seedRole(t *testing.T, name string, scopes []model.Scope) string {
	t.Helper()
	id, err := f.roleStore.Create(context.Background(), model.Role{
		Name:           name,
		OrganizationID: "org1",
		Scopes:         scopes,
	})
	require.NoError(t, err)
	return id
}

func TestEffectiveScopesUnionsAndDedupes(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	r1 := f.seedRole(t, "Fundraiser", []model.Scope{model.ScopeDonorRead, model.ScopeCampaignRead})
	r2 := f.seedRole(t, "Finance", []model.Scope{model.ScopeFinanceRead, model.ScopeDonorRead})

	scopes, err := f.svc.EffectiveScopes(ctx, &model.User{
		ID:             "u1",
		OrganizationID: "org1",
		Roles:          []string{r1, r2},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Scope{
		model.ScopeDonorRead, model.ScopeCampaignRead, model.ScopeFinanceRead,
	}, scopes)
}

func TestEffectiveScopesSkipsDanglingRole(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	r1 := f.seedRole(t, "Fundraiser", []model.Scope{model.ScopeDonorRead})

	scopes, err := f.svc.EffectiveScopes(ctx, &model.User{
		ID:             "u1",
		OrganizationID: "org1",
		Roles:          []string{r1, "deleted-role"},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Scope{model.ScopeDonorRead}, scopes)
}

func TestInviteUserCreatesClaimsAndRecord(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	r1 := f.seedRole(t, "Fundraiser", []model.Scope{model.ScopeDonorRead, model.ScopeFormsWrite})

	invited, err := f.svc.InviteUser(ctx, model.User{
		Email:          "casey@example.org",
		Name:           "Casey",
		OrganizationID: "org1",
		Roles:          []string{r1},
	}, testActor)
	require.NoError(t, err)
	require.NotEmpty(t, invited.ID)
	assert.Equal(t, model.UserStatusActive, invited.Status)

	claims, err := f.claimsSvc.GetClaims(ctx, invited.ID)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.True(t, model.HasScope(claims.Scopes, model.ScopeDonorRead))
	assert.True(t, model.HasScope(claims.Scopes, model.ScopeFormsWrite))
	assert.False(t, model.HasScope(claims.Scopes, model.ScopeAdminWrite))
}

func TestInviteUserCompensatesOnMirrorFailure(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.userStore.FailCreate = errors.New("neo4j down")

	_, err := f.svc.InviteUser(ctx, model.User{
		Email:          "casey@example.org",
		Name:           "Casey",
		OrganizationID: "org1",
	}, testActor)
	require.Error(t, err)

	// The just-created claims record was rolled back.
	assert.Empty(t, f.claimsStor.claims)
}

func TestUpdateUserRoleReassignmentSyncsClaims(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	r1 := f.seedRole(t, "Fundraiser", []model.Scope{model.ScopeDonorRead})
	r2 := f.seedRole(t, "Finance", []model.Scope{model.ScopeFinanceWrite})

	invited, err := f.svc.InviteUser(ctx, model.User{
		Email:          "casey@example.org",
		Name:           "Casey",
		OrganizationID: "org1",
		Roles:          []string{r1},
	}, testActor)
	require.NoError(t, err)

	newRoles := []string{r2}
	updated, err := f.svc.UpdateUser(ctx, "org1", invited.ID, model.UserUpdate{Roles: &newRoles}, testActor)
	require.NoError(t, err)
	assert.Equal(t, []model.Scope{model.ScopeFinanceWrite}, updated.Scopes)

	claims, err := f.claimsSvc.GetClaims(ctx, invited.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Scope{model.ScopeFinanceWrite}, claims.Scopes)
	assert.False(t, model.HasScope(claims.Scopes, model.ScopeDonorRead))
}

func TestUpdateUserRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	status := "paused"
	_, err := f.svc.UpdateUser(ctx, "org1", "u1", model.UserUpdate{Status: &status}, testActor)

	var validationErr *cw_errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDeleteUserReportsPartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	invited, err := f.svc.InviteUser(ctx, model.User{
		Email:          "casey@example.org",
		Name:           "Casey",
		OrganizationID: "org1",
	}, testActor)
	require.NoError(t, err)

	f.userStore.FailDelete = errors.New("neo4j down")

	err = f.svc.DeleteUser(ctx, "org1", invited.ID, testActor)
	require.Error(t, err)

	var partial *cw_errors.PartialFailure
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Steps, 1)
	assert.Equal(t, "user record", partial.Steps[0].Step)

	// The claims half still went through.
	claims, getErr := f.claimsSvc.GetClaims(ctx, invited.ID)
	require.NoError(t, getErr)
	assert.Nil(t, claims)
}

func TestFundraiserScenario(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	roleSvc := service.NewRoleService(f.roleStore, util.NewValidationUtil(),
		util.NewNotificationService(), f.auditSvc, util.NewEventBus())

	created, err := roleSvc.CreateRole(ctx, model.Role{
		Name:           "Fundraiser",
		OrganizationID: "org1",
		Scopes:         []model.Scope{model.ScopeDonorRead, model.ScopeCampaignRead, model.ScopeFormsWrite},
	}, testActor)
	require.NoError(t, err)

	invited, err := f.svc.InviteUser(ctx, model.User{
		Email:          "jordan@example.org",
		Name:           "Jordan",
		OrganizationID: "org1",
		Roles:          []string{created.ID},
	}, testActor)
	require.NoError(t, err)

	claims, err := f.claimsSvc.GetClaims(ctx, invited.ID)
	require.NoError(t, err)
	require.NotNil(t, claims)

	assert.True(t, model.HasScope(claims.Scopes, model.ScopeDonorRead))
	assert.True(t, model.HasScope(claims.Scopes, model.ScopeFormsWrite))
	// Exact matching only: read never implies write.
	assert.False(t, model.HasScope(claims.Scopes, model.ScopeDonorWrite))
}
