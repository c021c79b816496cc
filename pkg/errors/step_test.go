package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = stderrors.New("boom")

func TestNewStepErrorNilCause(t *testing.T) {
	assert.Nil(t, NewStepError("s", 0, "key", nil))
	assert.Nil(t, NewStepErrorWithAttrs("s", 0, "key", nil, map[string]any{"k": 1}))
}

func TestStepErrorMessage(t *testing.T) {
	e := NewStepError("pin entry", 3, "expect", errBoom)
	require.NotNil(t, e)
	assert.Contains(t, e.Error(), "expect: scenario=pin entry step=3: boom")

	e.Action = ""
	assert.Contains(t, e.Error(), "] scenario=pin entry step=3: boom")

	var nilErr *StepError
	assert.Equal(t, "<nil StepError>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestStepErrorUnwrap(t *testing.T) {
	var err error = NewStepErrorWithAttrs("s", 1, "key", fmt.Errorf("wrapped: %w", errBoom), map[string]any{"key": "Enter"})
	assert.ErrorIs(t, err, errBoom)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Step)
	assert.Equal(t, "Enter", se.Attributes["key"])
}
