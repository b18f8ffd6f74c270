// errors/user_errors.go
package errors

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserConflict      = errors.New("user already exists")
	ErrInvalidUserData   = errors.New("invalid user data")
	ErrPrincipalNotFound = errors.New("principal has no claims record")
)
