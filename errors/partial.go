// errors/partial.go
package errors

import (
	"fmt"
	"strings"
)

// FailedStep names one sub-operation of a multi-step action that did not
// complete.
type FailedStep struct {
	Step string
	Err  error
}

// PartialFailure reports a multi-step operation that succeeded in some steps
// and failed in others. It is distinct from total success and total failure;
// the failed steps are always named.
type PartialFailure struct {
	Op    string
	Steps []FailedStep
}

func (e *PartialFailure) Error() string {
	names := make([]string, len(e.Steps))
	for i, s := range e.Steps {
		names[i] = s.Step
	}
	return fmt.Sprintf("%s partially failed: %s", e.Op, strings.Join(names, ", "))
}

// Add records a failed step. Returns the receiver for chaining.
func (e *PartialFailure) Add(step string, err error) *PartialFailure {
	e.Steps = append(e.Steps, FailedStep{Step: step, Err: err})
	return e
}

// OrNil returns nil when no step failed, so callers can build the report
// unconditionally and return it in one place.
func (e *PartialFailure) OrNil() error {
	if len(e.Steps) == 0 {
		return nil
	}
	return e
}
