// service/claims_service_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
)

func newClaimsFixture() (*service.ClaimsService, *fakeClaimsStore, *fakeUserStore, *fakeAuditService) {
	claimsStore := newFakeClaimsStore()
	userStore := newFakeUserStore()
	auditSvc := &fakeAuditService{}
	return service.NewClaimsService(claimsStore, userStore, auditSvc), claimsStore, userStore, auditSvc
}

func TestAddScopesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newClaimsFixture()

	require.NoError(t, svc.SetClaims(ctx, "u1", "org1", []model.Scope{model.ScopeDonorRead}, nil, testActor))
	require.NoError(t, svc.AddScopes(ctx, "u1", []model.Scope{model.ScopeDonorRead, model.ScopeFormsWrite}, testActor))

	claims, err := svc.GetClaims(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.ElementsMatch(t, []model.Scope{model.ScopeDonorRead, model.ScopeFormsWrite}, claims.Scopes)

	// Adding again changes nothing.
	require.NoError(t, svc.AddScopes(ctx, "u1", []model.Scope{model.ScopeFormsWrite}, testActor))
	claims, err = svc.GetClaims(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, claims.Scopes, 2)
}

func TestRemoveAbsentScopeIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newClaimsFixture()

	require.NoError(t, svc.SetClaims(ctx, "u1", "org1", []model.Scope{model.ScopeDonorRead}, nil, testActor))
	require.NoError(t, svc.RemoveScopes(ctx, "u1", []model.Scope{model.ScopeAdminWrite}, testActor))

	claims, err := svc.GetClaims(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.Scope{model.ScopeDonorRead}, claims.Scopes)
}

func TestMutateUnknownPrincipal(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newClaimsFixture()

	err := svc.AddScopes(ctx, "ghost", []model.Scope{model.ScopeDonorRead}, testActor)
	assert.ErrorIs(t, err, cw_errors.ErrPrincipalNotFound)

	err = svc.RemoveScopes(ctx, "ghost", []model.Scope{model.ScopeDonorRead}, testActor)
	assert.ErrorIs(t, err, cw_errors.ErrPrincipalNotFound)
}

func TestClaimsMutationAuditsActingIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _, _, auditSvc := newClaimsFixture()

	require.NoError(t, svc.SetClaims(ctx, "u1", "org1", []model.Scope{model.ScopeDonorRead}, nil, testActor))

	entries := auditSvc.byAction(audit.ActionUpdateClaims)
	require.Len(t, entries, 1)
	// The admin who changed the claims is the actor; the principal whose
	// claims changed is the resource.
	assert.Equal(t, testActor.ID, entries[0].Actor.ID)
	assert.Equal(t, "u1", entries[0].ResourceID)
	assert.True(t, entries[0].Success)
}

func TestClaimsPartialFailureNamesFailedHalf(t *testing.T) {
	ctx := context.Background()
	svc, _, userStore, _ := newClaimsFixture()
	userStore.FailSetScopes = errors.New("neo4j down")

	err := svc.SetClaims(ctx, "u1", "org1", []model.Scope{model.ScopeDonorRead}, nil, testActor)
	require.Error(t, err)

	var partial *cw_errors.PartialFailure
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Steps, 1)
	assert.Equal(t, "user record mirror", partial.Steps[0].Step)

	// The token-claims half still succeeded.
	claims, getErr := svc.GetClaims(ctx, "u1")
	require.NoError(t, getErr)
	require.NotNil(t, claims)
	assert.Equal(t, []model.Scope{model.ScopeDonorRead}, claims.Scopes)
}
