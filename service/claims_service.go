// service/claims_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
)

// IClaimsService manages the authorization claims attached to a principal.
// Mutations take the acting identity so the audit trail names who changed
// the claims, not whose claims changed.
type IClaimsService interface {
	SetClaims(ctx context.Context, principalID, orgID string, scopes []model.Scope, extra map[string]string, actor model.ActorInfo) error
	GetClaims(ctx context.Context, principalID string) (*model.Claims, error)
	AddScopes(ctx context.Context, principalID string, scopes []model.Scope, actor model.ActorInfo) error
	RemoveScopes(ctx context.Context, principalID string, scopes []model.Scope, actor model.ActorInfo) error
	DeleteClaims(ctx context.Context, principalID string) error
}

// ClaimsService writes every successful mutation to the live token store
// and mirrors the scope set onto the principal's user record, so subsequent
// scope checks see the change without re-authentication. The two writes are
// not transactional; each is attempted and a partial failure names the half
// that failed.
type ClaimsService struct {
	claimsStore ClaimsStore
	userStore   UserStore
	auditSvc    audit.Service
}

var _ IClaimsService = &ClaimsService{}

func NewClaimsService(claimsStore ClaimsStore, userStore UserStore, auditSvc audit.Service) *ClaimsService {
	return &ClaimsService{
		claimsStore: claimsStore,
		userStore:   userStore,
		auditSvc:    auditSvc,
	}
}

// SetClaims replaces the principal's claims document.
func (s *ClaimsService) SetClaims(ctx context.Context, principalID, orgID string, scopes []model.Scope, extra map[string]string, actor model.ActorInfo) error {
	claims := model.Claims{
		PrincipalID:    principalID,
		OrganizationID: orgID,
		Scopes:         model.UnionScopes(scopes),
		Extra:          extra,
		UpdatedAt:      time.Now(),
	}
	return s.write(ctx, claims, actor)
}

func (s *ClaimsService) GetClaims(ctx context.Context, principalID string) (*model.Claims, error) {
	return s.claimsStore.Get(ctx, principalID)
}

// AddScopes unions scopes into the existing claims. Adding an already
// present scope is a no-op, not an error.
func (s *ClaimsService) AddScopes(ctx context.Context, principalID string, scopes []model.Scope, actor model.ActorInfo) error {
	claims, err := s.claimsStore.Get(ctx, principalID)
	if err != nil {
		return err
	}
	if claims == nil {
		return cw_errors.ErrPrincipalNotFound
	}

	claims.Scopes = model.UnionScopes(claims.Scopes, scopes)
	claims.UpdatedAt = time.Now()
	return s.write(ctx, *claims, actor)
}

// RemoveScopes removes scopes from the existing claims. Removing an absent
// scope is a no-op, not an error.
func (s *ClaimsService) RemoveScopes(ctx context.Context, principalID string, scopes []model.Scope, actor model.ActorInfo) error {
	claims, err := s.claimsStore.Get(ctx, principalID)
	if err != nil {
		return err
	}
	if claims == nil {
		return cw_errors.ErrPrincipalNotFound
	}

	drop := make(map[model.Scope]struct{}, len(scopes))
	for _, scope := range scopes {
		drop[scope] = struct{}{}
	}
	var kept []model.Scope
	for _, scope := range claims.Scopes {
		if _, ok := drop[scope]; !ok {
			kept = append(kept, scope)
		}
	}

	claims.Scopes = kept
	claims.UpdatedAt = time.Now()
	return s.write(ctx, *claims, actor)
}

// DeleteClaims removes the claims document from the token store.
func (s *ClaimsService) DeleteClaims(ctx context.Context, principalID string) error {
	return s.claimsStore.Delete(ctx, principalID)
}

func (s *ClaimsService) write(ctx context.Context, claims model.Claims, actor model.ActorInfo) error {
	partial := &cw_errors.PartialFailure{Op: "update claims"}

	if err := s.claimsStore.Set(ctx, claims); err != nil {
		logger.Error("Failed to write token claims",
			zap.Error(err),
			zap.String("principalID", claims.PrincipalID))
		partial.Add("token claims", err)
	}

	if err := s.userStore.SetScopes(ctx, claims.OrganizationID, claims.PrincipalID, claims.Scopes); err != nil {
		logger.Error("Failed to mirror scopes onto user record",
			zap.Error(err),
			zap.String("principalID", claims.PrincipalID))
		partial.Add("user record mirror", err)
	}

	auditActor := audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name}
	if auditActor.ID == "" {
		// Self-service paths carry no separate acting identity.
		auditActor.ID = claims.PrincipalID
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Actor:        auditActor,
		Action:       audit.ActionUpdateClaims,
		Category:     audit.CategoryRBAC,
		ResourceType: "claims",
		ResourceID:   claims.PrincipalID,
		Success:      len(partial.Steps) == 0,
	})

	return partial.OrNil()
}
