package memory_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryPersonRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("should add and find by id and owner", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		userID := kernel.NewUUID()
		p := newPerson(t, userID)

		require.NoError(t, repo.Add(ctx, p))

		byID, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		assert.True(t, byID.IsEqual(p))
		assert.Equal(t, "B-123", byID.LicensePlate())

		byUser, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.True(t, byUser.IsEqual(p))
	})

	t.Run("should allow one profile per user", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		userID := kernel.NewUUID()
		require.NoError(t, repo.Add(ctx, newPerson(t, userID)))

		err := repo.Add(ctx, newPerson(t, userID))

		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("should return not found for unknown profiles", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()

		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = repo.GetByUserID(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.Update(ctx, newPerson(t, kernel.NewUUID()))
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should filter by availability", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		online := newPerson(t, kernel.NewUUID())
		offline := newPerson(t, kernel.NewUUID())
		offline.SetAvailability(false)
		require.NoError(t, repo.Add(ctx, online))
		require.NoError(t, repo.Add(ctx, offline))

		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].IsEqual(online))

		available, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.True(t, available[0].IsEqual(online))
	})

	t.Run("should store reported location", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		p := newPerson(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, p))
		loc := newLocation(t, 23.1350, -82.3700)

		updated, err := repo.UpdateLocation(ctx, p.ID(), loc, baseTime)

		require.NoError(t, err)
		assert.True(t, updated)
		got, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		require.NotNil(t, got.Location())
		same, err := got.Location().IsEqual(loc)
		require.NoError(t, err)
		assert.True(t, same)
		assert.Equal(t, baseTime, *got.LocationUpdatedAt())
	})

	t.Run("should keep a newer location when a loaded profile is updated", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		p := newPerson(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, p))
		loaded, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		loc := newLocation(t, 23.1350, -82.3700)
		_, err = repo.UpdateLocation(ctx, p.ID(), loc, baseTime)
		require.NoError(t, err)

		loaded.SetAvailability(false)
		require.NoError(t, repo.Update(ctx, loaded))

		got, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		assert.False(t, got.IsAvailable())
		require.NotNil(t, got.Location())
		same, err := got.Location().IsEqual(loc)
		require.NoError(t, err)
		assert.True(t, same)
		assert.Equal(t, baseTime, *got.LocationUpdatedAt())
	})

	t.Run("should release a profile whose last report is unchanged", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		silent := newPerson(t, kernel.NewUUID())
		reported := newPerson(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, silent))
		require.NoError(t, repo.Add(ctx, reported))
		_, err := repo.UpdateLocation(ctx, reported.ID(), newLocation(t, 1, 1), baseTime)
		require.NoError(t, err)

		released, err := repo.ReleaseStale(ctx, silent.ID(), nil)
		require.NoError(t, err)
		assert.True(t, released)

		at := baseTime
		released, err = repo.ReleaseStale(ctx, reported.ID(), &at)
		require.NoError(t, err)
		assert.True(t, released)

		available, err := repo.List(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, available)
	})

	t.Run("should not release a profile that reported after it was loaded", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		p := newPerson(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, p))
		_, err := repo.UpdateLocation(ctx, p.ID(), newLocation(t, 1, 1), baseTime)
		require.NoError(t, err)
		loaded, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		_, err = repo.UpdateLocation(ctx, p.ID(), newLocation(t, 2, 2), baseTime.Add(time.Minute))
		require.NoError(t, err)

		released, err := repo.ReleaseStale(ctx, p.ID(), loaded.LocationUpdatedAt())

		require.NoError(t, err)
		assert.False(t, released)
		got, err := repo.Get(ctx, p.ID())
		require.NoError(t, err)
		assert.True(t, got.IsAvailable())
	})

	t.Run("should not release an offline or unknown profile", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()
		offline := newPerson(t, kernel.NewUUID())
		offline.SetAvailability(false)
		require.NoError(t, repo.Add(ctx, offline))

		released, err := repo.ReleaseStale(ctx, offline.ID(), nil)
		require.NoError(t, err)
		assert.False(t, released)

		released, err = repo.ReleaseStale(ctx, kernel.NewUUID(), nil)
		require.NoError(t, err)
		assert.False(t, released)
	})

	t.Run("should ignore location for unknown profile", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryPersonRepository()

		updated, err := repo.UpdateLocation(ctx, kernel.NewUUID(), newLocation(t, 1, 1), baseTime)

		require.NoError(t, err)
		assert.False(t, updated)
	})
}
