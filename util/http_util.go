// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RespondWithDomainError maps the shared error taxonomy to an HTTP
// response. Validation errors surface their message (it names the offending
// field); partial failures list the failed steps; everything else maps to a
// generic message so no internals leak.
func RespondWithDomainError(c *gin.Context, err error) {
	var validationErr *cw_errors.ValidationError
	if errors.As(err, &validationErr) {
		RespondWithError(c, http.StatusBadRequest, validationErr.Message, err)
		return
	}

	var partial *cw_errors.PartialFailure
	if errors.As(err, &partial) {
		steps := make([]string, len(partial.Steps))
		for i, s := range partial.Steps {
			steps[i] = s.Step
		}
		logger.Error("Partial failure", zap.Error(err), zap.Strings("failedSteps", steps))
		c.JSON(http.StatusMultiStatus, gin.H{
			"error":        partial.Error(),
			"failed_steps": steps,
		})
		return
	}

	switch {
	case errors.Is(err, cw_errors.ErrRoleNotFound),
		errors.Is(err, cw_errors.ErrUserNotFound),
		errors.Is(err, cw_errors.ErrTemplateNotFound),
		errors.Is(err, cw_errors.ErrSubmissionNotFound),
		errors.Is(err, cw_errors.ErrPrincipalNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, cw_errors.ErrRoleNameTaken),
		errors.Is(err, cw_errors.ErrRoleInUse),
		errors.Is(err, cw_errors.ErrUserConflict),
		cw_errors.IsInvalidTransition(err):
		RespondWithError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, cw_errors.ErrUnauthorized):
		RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	default:
		RespondWithError(c, http.StatusInternalServerError, "Internal server error", cw_errors.ErrInternalServer)
	}
}

// Request context keys set by the auth middleware.
const (
	ContextActorKey  = "actor"
	ContextScopesKey = "scopes"
	ContextOrgKey    = "orgId"
)

// GetActorFromContext returns the authenticated actor snapshot.
func GetActorFromContext(c *gin.Context) (model.ActorInfo, error) {
	value, exists := c.Get(ContextActorKey)
	if !exists {
		return model.ActorInfo{}, cw_errors.ErrUnauthorized
	}
	actor, ok := value.(model.ActorInfo)
	if !ok {
		return model.ActorInfo{}, cw_errors.ErrUnauthorized
	}
	return actor, nil
}

// GetOrgID resolves the organization scoping a request: an explicit orgId
// query parameter wins, otherwise the authenticated principal's organization.
func GetOrgID(c *gin.Context) string {
	if orgID := c.Query("orgId"); orgID != "" {
		return orgID
	}
	orgID, _ := c.Get(ContextOrgKey)
	s, _ := orgID.(string)
	return s
}

// GetScopesFromContext returns the authenticated principal's scopes.
func GetScopesFromContext(c *gin.Context) []model.Scope {
	value, exists := c.Get(ContextScopesKey)
	if !exists {
		return nil
	}
	scopes, _ := value.([]model.Scope)
	return scopes
}
