package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeliveryPersonsQueryHandler_Handle(t *testing.T) {
	f := newFixture()
	online := f.addPerson(t, newActor(t, actor.RoleDelivery), true, nil, 4.5)
	offline := f.addPerson(t, newActor(t, actor.RoleDelivery), false, nil, 3.0)
	handler := queries.NewGetDeliveryPersonsQueryHandler(f.persons)

	list := func(t *testing.T, a actor.Actor, availableOnly bool) []string {
		t.Helper()
		query, err := queries.NewGetDeliveryPersonsQuery(a, availableOnly)
		require.NoError(t, err)
		result, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)
		out := make([]string, 0, len(result))
		for _, p := range result {
			out = append(out, p.ID().String())
		}
		return out
	}

	t.Run("admin sees all profiles", func(t *testing.T) {
		admin := newActor(t, actor.RoleAdmin)
		assert.Equal(t, []string{online.ID().String(), offline.ID().String()}, list(t, admin, false))
		assert.Equal(t, []string{online.ID().String()}, list(t, admin, true))
	})

	t.Run("users and delivery persons see none", func(t *testing.T) {
		assert.Empty(t, list(t, newActor(t, actor.RoleUser), false))
		assert.Empty(t, list(t, newActor(t, actor.RoleDelivery), false))
	})
}

func TestGetMyDeliveryPersonQueryHandler_Handle(t *testing.T) {
	f := newFixture()
	owner := newActor(t, actor.RoleDelivery)
	profile := f.addPerson(t, owner, true, nil, 0)
	handler := queries.NewGetMyDeliveryPersonQueryHandler(f.persons)

	t.Run("should return the caller's profile", func(t *testing.T) {
		query, err := queries.NewGetMyDeliveryPersonQuery(owner)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(profile))
	})

	t.Run("unregistered delivery person is not found", func(t *testing.T) {
		query, err := queries.NewGetMyDeliveryPersonQuery(newActor(t, actor.RoleDelivery))
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("users have no profile", func(t *testing.T) {
		query, err := queries.NewGetMyDeliveryPersonQuery(newActor(t, actor.RoleUser))
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}
