// errors/role_errors.go
package errors

import "errors"

var (
	ErrRoleNotFound    = errors.New("role not found")
	ErrRoleNameTaken   = errors.New("role name already in use in this organization")
	ErrRoleInUse       = errors.New("role is still assigned to one or more users")
	ErrInvalidRoleData = errors.New("invalid role data")
)
