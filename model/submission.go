package model

import "time"

// Submission status values. A submission starts pending and moves exactly
// once to approved or rejected; both decided states are terminal.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// ApprovalRecord holds the approval details of a decided submission.
type ApprovalRecord struct {
	ApprovedBy   string    `json:"approved_by"`
	ApproverName string    `json:"approver_name"`
	ApprovedAt   time.Time `json:"approved_at"`
	Comments     string    `json:"comments,omitempty"`
}

// RejectionRecord holds the rejection details of a decided submission.
type RejectionRecord struct {
	RejectedBy      string    `json:"rejected_by"`
	RejectorName    string    `json:"rejector_name"`
	RejectedAt      time.Time `json:"rejected_at"`
	RejectionReason string    `json:"rejection_reason"`
	Comments        string    `json:"comments,omitempty"`
}

// Submission is an instance of a filled-in template. Exactly one of
// Approval/Rejection is populated, and only after the matching transition.
type Submission struct {
	ID              string            `json:"id"`
	TemplateID      string            `json:"template_id"`
	OrganizationID  string            `json:"organization_id"`
	Fields          map[string]string `json:"fields"`
	Status          string            `json:"status"`
	SubmittedBy     ActorInfo         `json:"submitted_by"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	Routing         RoutingConfig     `json:"routing"`
	Approval        *ApprovalRecord   `json:"approval,omitempty"`
	Rejection       *RejectionRecord  `json:"rejection,omitempty"`
	ProcessingHours float64           `json:"processing_hours,omitempty"`
}

// Decided reports whether the submission has reached a terminal state.
func (s *Submission) Decided() bool {
	return s.Status == SubmissionStatusApproved || s.Status == SubmissionStatusRejected
}
