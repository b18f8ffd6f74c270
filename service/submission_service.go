// service/submission_service.go
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harborworks/causeway-api/audit"
	cw_errors "github.com/harborworks/causeway-api/errors"
	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/metrics"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
	helper_util "github.com/harborworks/causeway-api/util/helper"
)

// ISubmissionService defines the interface for the form approval workflow
type ISubmissionService interface {
	Submit(ctx context.Context, orgID, templateID string, fields map[string]string, submitter model.ActorInfo) (*model.Submission, error)
	Approve(ctx context.Context, orgID, submissionID string, approver model.ActorInfo, comments string) error
	Reject(ctx context.Context, orgID, submissionID string, rejector model.ActorInfo, reason, comments string) error
	GetSubmission(ctx context.Context, orgID, submissionID string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error)
}

// decisionEvent carries a decided submission to the side-effect handlers.
type decisionEvent struct {
	Submission model.Submission
	Status     string
	Actor      model.ActorInfo
	DecidedAt  time.Time
}

// SubmissionService runs the pending -> approved | rejected state machine.
// The status transition is the only durability the caller observes;
// notification, audit and analytics are independent best-effort side
// effects that never roll it back.
type SubmissionService struct {
	submissionStore SubmissionStore
	templateStore   TemplateStore
	analyticsStore  AnalyticsStore
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	eventBus        *util.EventBus
}

var _ ISubmissionService = &SubmissionService{}

// NewSubmissionService creates a new instance of SubmissionService
func NewSubmissionService(submissionStore SubmissionStore, templateStore TemplateStore, analyticsStore AnalyticsStore, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, auditSvc audit.Service, eventBus *util.EventBus) *SubmissionService {
	service := &SubmissionService{
		submissionStore: submissionStore,
		templateStore:   templateStore,
		analyticsStore:  analyticsStore,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventSubmissionCreated, service.handleSubmissionCreated)
	eventBus.Subscribe(util.EventSubmissionApproved, service.handleSubmissionDecided)
	eventBus.Subscribe(util.EventSubmissionRejected, service.handleSubmissionDecided)

	return service
}

func (s *SubmissionService) handleSubmissionCreated(ctx context.Context, event util.Event) error {
	submission := event.Payload.(model.Submission)

	if err := s.notificationSvc.NotifySubmissionCreated(ctx, submission); err != nil {
		logger.Warn("Failed to send submission notification",
			zap.Error(err),
			zap.String("submissionID", submission.ID))
	}

	if err := s.analyticsStore.RecordSubmission(ctx, submission.OrganizationID, submission.TemplateID, submission.SubmittedBy.ID, submission.SubmittedAt); err != nil {
		logger.Warn("Failed to record submission analytics",
			zap.Error(err),
			zap.String("submissionID", submission.ID))
	}

	return nil
}

func (s *SubmissionService) handleSubmissionDecided(ctx context.Context, event util.Event) error {
	decision := event.Payload.(decisionEvent)
	submission := decision.Submission

	if err := s.notificationSvc.NotifySubmissionDecision(ctx, submission, decision.Status); err != nil {
		logger.Warn("Failed to send decision notification",
			zap.Error(err),
			zap.String("submissionID", submission.ID))
	}

	if err := s.analyticsStore.RecordDecision(ctx, submission.OrganizationID, submission.TemplateID, decision.Actor.ID, decision.Status, decision.DecidedAt); err != nil {
		logger.Warn("Failed to record decision analytics",
			zap.Error(err),
			zap.String("submissionID", submission.ID))
	}

	if err := s.analyticsStore.RecordProcessingTime(ctx, submission.OrganizationID, submission.TemplateID, submission.ProcessingHours); err != nil {
		logger.Warn("Failed to record processing time",
			zap.Error(err),
			zap.String("submissionID", submission.ID))
	}

	return nil
}

// Submit validates the fields against the template and creates a pending
// submission with a frozen routing snapshot. Nothing is written when a
// required field is missing.
func (s *SubmissionService) Submit(ctx context.Context, orgID, templateID string, fields map[string]string, submitter model.ActorInfo) (*model.Submission, error) {
	template, err := s.templateStore.Get(ctx, orgID, templateID)
	if err != nil {
		return nil, err
	}

	if err := s.validationUtil.ValidateSubmissionFields(template, fields); err != nil {
		return nil, err
	}

	submission := model.Submission{
		TemplateID:     templateID,
		OrganizationID: orgID,
		Fields:         fields,
		Status:         model.SubmissionStatusPending,
		SubmittedBy:    submitter,
		SubmittedAt:    time.Now(),
		Routing:        template.Routing,
	}

	submissionID, err := s.submissionStore.Create(ctx, submission)
	if err != nil {
		logger.Error("Error creating submission",
			zap.Error(err),
			zap.String("templateID", templateID))
		return nil, err
	}
	submission.ID = submissionID

	metrics.SubmissionTransitions.WithLabelValues(model.SubmissionStatusPending).Inc()
	s.recordAudit(ctx, submitter, audit.ActionSubmitForm, submissionID, true, nil)
	s.eventBus.Publish(ctx, util.EventSubmissionCreated, submission)

	logger.Info("Submission created",
		zap.String("submissionID", submissionID),
		zap.String("submitterID", submitter.ID))
	return &submission, nil
}

// Approve moves a pending submission to approved. The store transition is
// conditional on the current status, so a concurrent decision loses with a
// precise terminal-state error.
func (s *SubmissionService) Approve(ctx context.Context, orgID, submissionID string, approver model.ActorInfo, comments string) error {
	submission, err := s.submissionStore.Get(ctx, orgID, submissionID)
	if err != nil {
		return err
	}

	now := time.Now()
	record := model.ApprovalRecord{
		ApprovedBy:   approver.ID,
		ApproverName: approver.Name,
		ApprovedAt:   now,
		Comments:     comments,
	}
	processingHours := helper_util.ProcessingHours(submission.SubmittedAt, now)

	if err := s.submissionStore.Approve(ctx, orgID, submissionID, record, processingHours); err != nil {
		s.recordAudit(ctx, approver, audit.ActionApproveSubmission, submissionID, false, err)
		return err
	}

	submission.Status = model.SubmissionStatusApproved
	submission.Approval = &record
	submission.ProcessingHours = processingHours

	metrics.SubmissionTransitions.WithLabelValues(model.SubmissionStatusApproved).Inc()
	s.recordAudit(ctx, approver, audit.ActionApproveSubmission, submissionID, true, nil)
	s.eventBus.Publish(ctx, util.EventSubmissionApproved, decisionEvent{
		Submission: *submission,
		Status:     model.SubmissionStatusApproved,
		Actor:      approver,
		DecidedAt:  now,
	})

	logger.Info("Submission approved",
		zap.String("submissionID", submissionID),
		zap.String("approverID", approver.ID),
		zap.Float64("processingHours", processingHours))
	return nil
}

// Reject moves a pending submission to rejected. A rejection reason is
// mandatory.
func (s *SubmissionService) Reject(ctx context.Context, orgID, submissionID string, rejector model.ActorInfo, reason, comments string) error {
	if strings.TrimSpace(reason) == "" {
		return cw_errors.MissingField("reason")
	}

	submission, err := s.submissionStore.Get(ctx, orgID, submissionID)
	if err != nil {
		return err
	}

	now := time.Now()
	record := model.RejectionRecord{
		RejectedBy:      rejector.ID,
		RejectorName:    rejector.Name,
		RejectedAt:      now,
		RejectionReason: reason,
		Comments:        comments,
	}
	processingHours := helper_util.ProcessingHours(submission.SubmittedAt, now)

	if err := s.submissionStore.Reject(ctx, orgID, submissionID, record, processingHours); err != nil {
		s.recordAudit(ctx, rejector, audit.ActionRejectSubmission, submissionID, false, err)
		return err
	}

	submission.Status = model.SubmissionStatusRejected
	submission.Rejection = &record
	submission.ProcessingHours = processingHours

	metrics.SubmissionTransitions.WithLabelValues(model.SubmissionStatusRejected).Inc()
	s.recordAudit(ctx, rejector, audit.ActionRejectSubmission, submissionID, true, nil)
	s.eventBus.Publish(ctx, util.EventSubmissionRejected, decisionEvent{
		Submission: *submission,
		Status:     model.SubmissionStatusRejected,
		Actor:      rejector,
		DecidedAt:  now,
	})

	logger.Info("Submission rejected",
		zap.String("submissionID", submissionID),
		zap.String("rejectorID", rejector.ID))
	return nil
}

// GetSubmission retrieves a submission by ID
func (s *SubmissionService) GetSubmission(ctx context.Context, orgID, submissionID string) (*model.Submission, error) {
	return s.submissionStore.Get(ctx, orgID, submissionID)
}

// ListSubmissions retrieves submissions, optionally filtered by status
func (s *SubmissionService) ListSubmissions(ctx context.Context, orgID, status string, limit, offset int) ([]*model.Submission, error) {
	return s.submissionStore.List(ctx, orgID, status, limit, offset)
}

func (s *SubmissionService) recordAudit(ctx context.Context, actor model.ActorInfo, action, submissionID string, success bool, opErr error) {
	entry := audit.Entry{
		Actor:        audit.Actor{ID: actor.ID, Email: actor.Email, Name: actor.Name},
		Action:       action,
		Category:     audit.CategoryWorkflow,
		ResourceType: "submission",
		ResourceID:   submissionID,
		Success:      success,
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}
	s.auditSvc.Record(ctx, entry)
}
