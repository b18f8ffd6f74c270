// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Actions is the closed set of auditable actions.
const (
	ActionCreateRole        = "CREATE_ROLE"
	ActionUpdateRole        = "UPDATE_ROLE"
	ActionDeleteRole        = "DELETE_ROLE"
	ActionInviteUser        = "INVITE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
	ActionUpdateClaims      = "UPDATE_CLAIMS"
	ActionScopeFanout       = "SCOPE_FANOUT"
	ActionCreateTemplate    = "CREATE_TEMPLATE"
	ActionSubmitForm        = "SUBMIT_FORM"
	ActionApproveSubmission = "APPROVE_SUBMISSION"
	ActionRejectSubmission  = "REJECT_SUBMISSION"
)

// Categories group actions for querying.
const (
	CategoryRBAC     = "rbac"
	CategoryWorkflow = "workflow"
	CategoryUsers    = "users"
)

// Actor identifies who performed an action, snapshotted at write time.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Entry is one append-only audit record. Entries are never mutated after
// creation.
type Entry struct {
	Timestamp    time.Time       `json:"timestamp"`
	Actor        Actor           `json:"actor"`
	Action       string          `json:"action"`
	Category     string          `json:"category"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
}

// Query filters audit entries. Zero fields match everything. Results are
// always returned newest-first; Limit caps the result count.
type Query struct {
	ActorID      string
	Action       string
	Category     string
	ResourceType string
	From         time.Time
	To           time.Time
	Limit        int
}
