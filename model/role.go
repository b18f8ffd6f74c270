package model

import "time"

// Role is a named, reusable bundle of scopes assignable to users. Name is
// unique within an organization.
type Role struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	OrganizationID string    `json:"organization_id"`
	Scopes         []Scope   `json:"scopes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RoleUpdate carries a partial role update. Nil fields are left untouched.
type RoleUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Scopes      *[]Scope `json:"scopes,omitempty"`
}
