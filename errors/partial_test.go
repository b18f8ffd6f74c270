package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cw_errors "github.com/harborworks/causeway-api/errors"
)

func TestPartialFailureOrNil(t *testing.T) {
	partial := &cw_errors.PartialFailure{Op: "delete user"}
	assert.NoError(t, partial.OrNil())

	partial.Add("authentication identity", errors.New("redis timeout"))
	err := partial.OrNil()
	require.Error(t, err)
	assert.EqualError(t, err, "delete user partially failed: authentication identity")
}

func TestValidationErrorMessages(t *testing.T) {
	assert.EqualError(t, cw_errors.MissingField("donorName"), "Missing required field: donorName")
	assert.EqualError(t, cw_errors.InvalidField("status", "must be active or suspended"),
		"Invalid field status: must be active or suspended")
}

func TestIsInvalidTransition(t *testing.T) {
	assert.True(t, cw_errors.IsInvalidTransition(cw_errors.ErrAlreadyApproved))
	assert.True(t, cw_errors.IsInvalidTransition(cw_errors.ErrRejectAfterApprove))
	assert.False(t, cw_errors.IsInvalidTransition(cw_errors.ErrSubmissionNotFound))
}
