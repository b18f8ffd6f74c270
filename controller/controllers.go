// controller/controllers.go
package controller

import "github.com/harborworks/causeway-api/service"

type Controllers struct {
	Role      *RoleController
	User      *UserController
	Form      *FormController
	Audit     *AuditController
	Analytics *AnalyticsController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Role:      NewRoleController(services.Role),
		User:      NewUserController(services.User),
		Form:      NewFormController(services.Template, services.Submission),
		Audit:     NewAuditController(services.Audit),
		Analytics: NewAnalyticsController(services.Analytics),
	}
}
