package model

import "time"

// User status values.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User is an authenticated principal. Scopes is the denormalized union of
// all assigned roles' scopes, recomputed whenever role membership or role
// definitions change.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id"`
	Roles          []string  `json:"roles"`
	Scopes         []Scope   `json:"scopes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserUpdate carries a partial user update.
type UserUpdate struct {
	Name   *string   `json:"name,omitempty"`
	Roles  *[]string `json:"roles,omitempty"`
	Status *string   `json:"status,omitempty"`
}

// ActorInfo is a point-in-time snapshot of the acting principal, embedded in
// submissions and audit entries rather than live-linked.
type ActorInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
