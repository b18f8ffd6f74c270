// controller/form_controller.go
package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
	helper_util "github.com/harborworks/causeway-api/util/helper"
)

type FormController struct {
	templateService   service.ITemplateService
	submissionService service.ISubmissionService
}

func NewFormController(templateService service.ITemplateService, submissionService service.ISubmissionService) *FormController {
	return &FormController{
		templateService:   templateService,
		submissionService: submissionService,
	}
}

// RegisterRoutes registers the API routes for form templates and submissions
func (fc *FormController) RegisterRoutes(r *gin.RouterGroup) {
	forms := r.Group("/forms")
	{
		forms.POST("/templates", middleware.RequireScope(model.ScopeFormsWrite), fc.CreateTemplate)
		forms.GET("/templates/:id", middleware.RequireScope(model.ScopeFormsRead), fc.GetTemplate)
		forms.GET("/templates", middleware.RequireScope(model.ScopeFormsRead), fc.ListTemplates)

		forms.POST("/generate", middleware.RequireScope(model.ScopeFormsWrite), fc.GenerateSubmission)
		forms.GET("/submissions/:id", middleware.RequireScope(model.ScopeFormsRead), fc.GetSubmission)
		forms.GET("/submissions", middleware.RequireScope(model.ScopeFormsRead), fc.ListSubmissions)
		forms.POST("/submissions/:id/approve", middleware.RequireScope(model.ScopeFormsWrite), fc.ApproveSubmission)
		forms.POST("/submissions/:id/reject", middleware.RequireScope(model.ScopeFormsWrite), fc.RejectSubmission)
	}
}

// CreateTemplate endpoint
func (fc *FormController) CreateTemplate(c *gin.Context) {
	var template model.Template
	if err := c.ShouldBindJSON(&template); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid template data", err)
		return
	}
	if template.OrganizationID == "" {
		template.OrganizationID = util.GetOrgID(c)
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	createdTemplate, err := fc.templateService.CreateTemplate(c.Request.Context(), template, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"templateId": createdTemplate.ID})
}

// GetTemplate endpoint
func (fc *FormController) GetTemplate(c *gin.Context) {
	template, err := fc.templateService.GetTemplate(c.Request.Context(), util.GetOrgID(c), c.Param("id"))
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTemplates endpoint
func (fc *FormController) ListTemplates(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	templates, err := fc.templateService.ListTemplates(c.Request.Context(), util.GetOrgID(c), limit, offset)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

type generateSubmissionRequest struct {
	TemplateID string            `json:"templateId"`
	Fields     map[string]string `json:"fields"`
}

// GenerateSubmission endpoint creates a pending submission from a template.
func (fc *FormController) GenerateSubmission(c *gin.Context) {
	var req generateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid submission data", err)
		return
	}
	if req.TemplateID == "" {
		util.RespondWithDomainError(c, cw_errors.MissingField("templateId"))
		return
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	submission, err := fc.submissionService.Submit(c.Request.Context(), util.GetOrgID(c), req.TemplateID, req.Fields, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"submissionId": submission.ID})
}

// GetSubmission endpoint
func (fc *FormController) GetSubmission(c *gin.Context) {
	submission, err := fc.submissionService.GetSubmission(c.Request.Context(), util.GetOrgID(c), c.Param("id"))
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListSubmissions endpoint, optionally filtered by status
func (fc *FormController) ListSubmissions(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	submissions, err := fc.submissionService.ListSubmissions(c.Request.Context(), util.GetOrgID(c), c.Query("status"), limit, offset)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

type decisionRequest struct {
	Reason   string `json:"reason"`
	Comments string `json:"comments"`
}

// ApproveSubmission endpoint
func (fc *FormController) ApproveSubmission(c *gin.Context) {
	submissionID := c.Param("id")
	var req decisionRequest
	// An empty body is fine for approvals; comments are optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid approval data", err)
		return
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := fc.submissionService.Approve(c.Request.Context(), util.GetOrgID(c), submissionID, actor, req.Comments); err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": model.SubmissionStatusApproved})
}

// RejectSubmission endpoint. The rejection reason is mandatory.
func (fc *FormController) RejectSubmission(c *gin.Context) {
	submissionID := c.Param("id")
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid rejection data", err)
		return
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := fc.submissionService.Reject(c.Request.Context(), util.GetOrgID(c), submissionID, actor, req.Reason, req.Comments); err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": model.SubmissionStatusRejected})
}
