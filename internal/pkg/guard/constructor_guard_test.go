package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("entity not constructed")

	t.Run("should pass for constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return provided error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("should fall back to default error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

type parcelLabel struct {
	code  string
	guard guard.ConstructorGuard
}

var errLabelNotConstructed = errors.New("parcelLabel must be created via newParcelLabel")

func newParcelLabel(code string) (parcelLabel, error) {
	if code == "" {
		return parcelLabel{}, errors.New("code is required")
	}
	return parcelLabel{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (l parcelLabel) Validate() error {
	return l.guard.Validate(errLabelNotConstructed)
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("should validate value built by constructor", func(t *testing.T) {
		label, err := newParcelLabel("PX-1")

		require.NoError(t, err)
		require.NoError(t, label.Validate())
	})

	t.Run("should reject literal struct", func(t *testing.T) {
		label := parcelLabel{code: "PX-1"}

		require.ErrorIs(t, label.Validate(), errLabelNotConstructed)
	})

	t.Run("should reject zero value returned on constructor failure", func(t *testing.T) {
		label, err := newParcelLabel("")

		require.Error(t, err)
		require.ErrorIs(t, label.Validate(), errLabelNotConstructed)
	})
}
