package model

import "time"

// Claims is the live authorization document mirrored into the token store
// for a principal. Scope checks during request handling read this document,
// so claim mutations take effect without re-authentication.
type Claims struct {
	PrincipalID    string            `json:"principal_id"`
	OrganizationID string            `json:"organization_id"`
	Scopes         []Scope           `json:"scopes"`
	Extra          map[string]string `json:"extra,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
