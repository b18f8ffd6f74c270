package model

import "time"

// TemplateField describes one field of a form template.
type TemplateField struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required"`
}

// RoutingConfig is the approval routing attached to a template. It is copied
// onto each submission at creation time as a frozen snapshot.
type RoutingConfig struct {
	Assignees        []string `json:"assignees,omitempty"`
	NotifyRecipients []string `json:"notify_recipients,omitempty"`
	RequiresApproval bool     `json:"requires_approval"`
}

// Template is a form definition users submit against.
type Template struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	OrganizationID string          `json:"organization_id"`
	Fields         []TemplateField `json:"fields"`
	Routing        RoutingConfig   `json:"routing"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
