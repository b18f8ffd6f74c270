// errors/submission_errors.go
package errors

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// Terminal-state guards. The two terminal states produce distinct
	// messages so callers can tell which decision already happened.
	ErrAlreadyApproved    = errors.New("already approved")
	ErrAlreadyRejected    = errors.New("already rejected")
	ErrApproveAfterReject = errors.New("cannot approve a rejected submission")
	ErrRejectAfterApprove = errors.New("cannot reject an approved submission")
)

// IsInvalidTransition reports whether err is one of the terminal-state
// transition guards.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrAlreadyApproved) ||
		errors.Is(err, ErrAlreadyRejected) ||
		errors.Is(err, ErrApproveAfterReject) ||
		errors.Is(err, ErrRejectAfterApprove)
}
