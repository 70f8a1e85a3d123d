package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryRequest", "123")

		assert.Equal(t, "deliveryRequest", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryRequest", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryRequest, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("price", errors.New("0 is not greater than 0"))

		assert.Equal(t, "value is invalid: price (cause: 0 is not greater than 0)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("longitude", -200, -180, 180, errors.New("bad sample"))

		assert.Equal(t,
			"value is invalid: -200 is longitude, min value is -180, max value is 180 (cause: bad sample)",
			err.Error())
	})

	t.Run("should strip newlines from values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("pickup address")
	assert.Equal(t, "value is required: pickup address", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("pickup address", errors.New("blank"))
	assert.Equal(t, "value is required: pickup address (cause: blank)", withCause.Error())
	assert.Equal(t, errs.ErrValueIsRequired, withCause.Unwrap())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("deliveryRequest")
	assert.Equal(t, "version is invalid: deliveryRequest", err.Error())

	withCause := errs.NewVersionIsInvalidErrorWithCause("deliveryRequest", errors.New("expected 3"))
	assert.Equal(t, "version is invalid: deliveryRequest (cause: expected 3)", withCause.Error())
	require.ErrorIs(t, withCause, errs.ErrVersionIsInvalid)
}

func TestLifecycleErrors(t *testing.T) {
	t.Run("InvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("pending", "picked_up")

		assert.Equal(t, "invalid transition: pending -> picked_up", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("PermissionDeniedError", func(t *testing.T) {
		err := errs.NewPermissionDeniedError("u-1", "move request to delivered")

		assert.Equal(t, "permission denied: actor u-1 may not move request to delivered", err.Error())
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("AlreadyAssignedError", func(t *testing.T) {
		err := errs.NewAlreadyAssignedError("r-1", "d-1")

		assert.Equal(t, "already assigned: request r-1 is assigned to d-1", err.Error())
		require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	})

	t.Run("should survive wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("accept delivery: %w", errs.NewAlreadyAssignedError("r-1", "d-1"))

		var target *errs.AlreadyAssignedError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "d-1", target.AssigneeID)
	})
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"required", errs.NewValueIsRequiredError("x"), true},
		{"invalid", errs.NewValueIsInvalidError("x"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 1, 2, 3), true},
		{"joined", errors.Join(errors.New("other"), errs.NewValueIsRequiredError("x")), true},
		{"not found", errs.NewObjectNotFoundError("x", "1"), false},
		{"permission", errs.NewPermissionDeniedError("a", "b"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.IsValidation(tc.err))
		})
	}
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("delivery person for user", "u-1")

	assert.Equal(t, "object already exists: delivery person for user u-1", err.Error())
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.False(t, errs.IsValidation(err))
}
