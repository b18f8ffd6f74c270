// middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/config"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
)

// AuthClaims is the bearer token payload. The token only identifies the
// principal; authorization scopes are loaded from the live claims store on
// every request, so a role edit takes effect without re-authentication.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth validates the bearer token, resolves the principal's current claims
// and attaches the actor snapshot, organization and scopes to the request
// context.
func Auth(claimsSvc service.IClaimsService) gin.HandlerFunc {
	secret := []byte(config.GetString("auth.jwt.secret"))

	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected bearer token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		principalID := claims.Subject
		if principalID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		liveClaims, err := claimsSvc.GetClaims(c.Request.Context(), principalID)
		if err != nil {
			logger.Error("Failed to load claims for principal",
				zap.Error(err),
				zap.String("principalID", principalID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if liveClaims == nil {
			logger.Warn("Token for principal with no claims record",
				zap.String("principalID", principalID))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(util.ContextActorKey, model.ActorInfo{
			ID:    principalID,
			Email: claims.Email,
			Name:  claims.Name,
		})
		c.Set(util.ContextScopesKey, liveClaims.Scopes)
		c.Set(util.ContextOrgKey, liveClaims.OrganizationID)

		c.Next()
	}
}
