// middleware/scope.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/metrics"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
)

// RequireScope refuses the request unless the authenticated principal holds
// the exact scope. There is no wildcard or implication between scopes.
func RequireScope(required model.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopes := util.GetScopesFromContext(c)
		allowed := model.HasScope(scopes, required)
		metrics.AuthzDecisions.WithLabelValues(required, strconv.FormatBool(allowed)).Inc()

		if !allowed {
			actor, _ := util.GetActorFromContext(c)
			logger.Warn("Scope check refused",
				zap.String("required", required),
				zap.String("principalID", actor.ID),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}
