// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/harborworks/causeway-api/logging"
	"github.com/harborworks/causeway-api/model"
)

// NotificationService delivers notifications about RBAC and workflow
// changes. Delivery is a best-effort side effect; callers log failures and
// continue. The actual transport (email, push) is an external collaborator
// behind this surface.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyRoleChange(ctx context.Context, changeType string, role model.Role) error {
	switch changeType {
	case "created", "updated", "deleted":
		logger.Info("NOTIFICATION: Role "+changeType,
			zap.String("roleID", role.ID),
			zap.String("roleName", role.Name))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyUserInvited(ctx context.Context, user model.User) error {
	logger.Info("NOTIFICATION: User invited",
		zap.String("userID", user.ID),
		zap.String("email", user.Email))
	return nil
}

// NotifySubmissionCreated alerts the routing snapshot's recipients that a
// new submission awaits a decision.
func (n *NotificationService) NotifySubmissionCreated(ctx context.Context, submission model.Submission) error {
	logger.Info("NOTIFICATION: New submission pending",
		zap.String("submissionID", submission.ID),
		zap.String("templateID", submission.TemplateID),
		zap.Strings("recipients", submission.Routing.NotifyRecipients))
	return nil
}

// NotifySubmissionDecision alerts the submitter of an approval or rejection.
func (n *NotificationService) NotifySubmissionDecision(ctx context.Context, submission model.Submission, status string) error {
	logger.Info("NOTIFICATION: Submission decided",
		zap.String("submissionID", submission.ID),
		zap.String("status", status),
		zap.String("submitterEmail", submission.SubmittedBy.Email))
	return nil
}

// NotifyAdmins surfaces an operational condition (such as a partial scope
// fan-out failure) to organization administrators.
func (n *NotificationService) NotifyAdmins(ctx context.Context, orgID, message string) error {
	logger.Info("NOTIFICATION: Admin alert",
		zap.String("orgID", orgID),
		zap.String("message", message))
	return nil
}
