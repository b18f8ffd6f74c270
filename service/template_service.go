// service/template_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/audit"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
)

// ITemplateService defines the interface for form template operations
type ITemplateService interface {
	CreateTemplate(ctx context.Context, template model.Template, actor model.ActorInfo) (*model.Template, error)
	GetTemplate(ctx context.Context, orgID, templateID string) (*model.Template, error)
	ListTemplates(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error)
}

type TemplateService struct {
	templateStore  TemplateStore
	validationUtil *util.ValidationUtil
	auditSvc       audit.Service
}

var _ ITemplateService = &TemplateService{}

func NewTemplateService(templateStore TemplateStore, validationUtil *util.ValidationUtil, auditSvc audit.Service) *TemplateService {
	return &TemplateService{
		templateStore:  templateStore,
		validationUtil: validationUtil,
		auditSvc:       auditSvc,
	}
}

// CreateTemplate validates and persists a form template.
func (s *TemplateService) CreateTemplate(ctx context.Context, template model.Template, actor model.ActorInfo) (*model.Template, error) {
	if err := s.validationUtil.ValidateTemplate(template); err != nil {
		return nil, err
	}

	templateID, err := s.templateStore.Create(ctx, template)
	if err != nil {
		logger.Error("Error creating template", zap.Error(err), zap.String("actorID", actor.ID))
		return nil, err
	}
	template.ID = templateID

	s.auditSvc.Record(ctx, audit.Entry{
		Actor:        audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name},
		Action:       audit.ActionCreateTemplate,
		Category:     audit.CategoryWorkflow,
		ResourceType: "template",
		ResourceID:   templateID,
		Success:      true,
	})

	logger.Info("Template created",
		zap.String("templateID", templateID),
		zap.String("actorID", actor.ID))
	return &template, nil
}

// GetTemplate retrieves a template by ID
func (s *TemplateService) GetTemplate(ctx context.Context, orgID, templateID string) (*model.Template, error) {
	return s.templateStore.Get(ctx, orgID, templateID)
}

// ListTemplates retrieves templates for an organization with pagination
func (s *TemplateService) ListTemplates(ctx context.Context, orgID string, limit, offset int) ([]*model.Template, error) {
	return s.templateStore.List(ctx, orgID, limit, offset)
}
