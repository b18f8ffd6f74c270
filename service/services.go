// service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"

	"github.com/harborworks/causeway-api/audit"
	"github.com/harborworks/causeway-api/dao"
	"github.com/harborworks/causeway-api/util"
)

type Services struct {
	Role       IRoleService
	User       IUserService
	Claims     IClaimsService
	Template   ITemplateService
	Submission ISubmissionService
	Analytics  IAnalyticsService
	Audit      audit.Service
	Fanout     *ScopeFanout
}

func InitializeServices(
	driver neo4j.Driver,
	redisClient *redis.Client,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	fanoutParallelism int,
) (*Services, error) {
	roleDAO := dao.NewRoleDAO(driver)
	userDAO := dao.NewUserDAO(driver)
	templateDAO := dao.NewTemplateDAO(driver)
	submissionDAO := dao.NewSubmissionDAO(driver)
	claimsDAO := dao.NewClaimsDAO(redisClient)
	analyticsDAO := dao.NewAnalyticsDAO(redisClient)

	claimsService := NewClaimsService(claimsDAO, userDAO, auditService)

	services := &Services{
		Role:       NewRoleService(roleDAO, validationUtil, notificationSvc, auditService, eventBus),
		User:       NewUserService(userDAO, roleDAO, claimsService, validationUtil, notificationSvc, auditService, eventBus),
		Claims:     claimsService,
		Template:   NewTemplateService(templateDAO, validationUtil, auditService),
		Submission: NewSubmissionService(submissionDAO, templateDAO, analyticsDAO, validationUtil, notificationSvc, auditService, eventBus),
		Analytics:  NewAnalyticsService(analyticsDAO),
		Audit:      auditService,
		Fanout:     NewScopeFanout(roleDAO, userDAO, claimsService, notificationSvc, auditService, eventBus, fanoutParallelism),
	}

	return services, nil
}
