// errors/errors.go
package errors

import "errors"

var (
	ErrInternalServer    = errors.New("internal server error")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrUnauthorized      = errors.New("unauthorized")
)
