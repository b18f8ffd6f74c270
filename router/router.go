// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harborworks/causeway-api/controller"
	"github.com/harborworks/causeway-api/metrics"
	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/service"
)

func SetupRouter(
	controllers *controller.Controllers,
	claimsService service.IClaimsService,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
	requestTimeout time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Timeout(requestTimeout))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(claimsService))

	controllers.Role.RegisterRoutes(api)
	controllers.User.RegisterRoutes(api)
	controllers.Form.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)
	controllers.Analytics.RegisterRoutes(api)

	return router
}
