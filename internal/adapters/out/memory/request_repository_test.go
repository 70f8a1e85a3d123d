package memory_test

import (
	"sync"
	"testing"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryRequestRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("should add and restore a request", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		r := newRequest(t, kernel.NewUUID())

		require.NoError(t, repo.Add(ctx, r))
		assert.Equal(t, 1, r.Version())

		got, err := repo.Get(ctx, r.ID())

		require.NoError(t, err)
		assert.True(t, got.IsEqual(r))
		assert.Equal(t, request.StatusPending, got.Status())
		assert.Equal(t, r.Pickup(), got.Pickup())
		assert.Equal(t, r.Parcel(), got.Parcel())
		assert.InDelta(t, 8.50, got.Price(), 1e-9)
		assert.Equal(t, 25, got.EstimatedMinutes())
		assert.Equal(t, 1, got.Version())
		assert.Empty(t, got.DomainEvents())
	})

	t.Run("should reject duplicate ids", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		r := newRequest(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, r))

		err := repo.Add(ctx, r)

		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()

		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.Update(ctx, newRequest(t, kernel.NewUUID()))
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should list in insertion order", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		first := newRequest(t, kernel.NewUUID())
		second := newRequest(t, kernel.NewUUID())
		third := newRequest(t, kernel.NewUUID())
		for _, r := range []*request.DeliveryRequest{first, second, third} {
			require.NoError(t, repo.Add(ctx, r))
		}

		require.NoError(t, second.Accept(kernel.NewUUID(), baseTime))
		require.NoError(t, repo.Update(ctx, second))

		list, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, list[0].IsEqual(first))
		assert.True(t, list[1].IsEqual(second))
		assert.True(t, list[2].IsEqual(third))
		assert.Equal(t, request.StatusAccepted, list[1].Status())
	})

	t.Run("should reject stale versions", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		r := newRequest(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, r))

		a, err := repo.Get(ctx, r.ID())
		require.NoError(t, err)
		b, err := repo.Get(ctx, r.ID())
		require.NoError(t, err)

		require.NoError(t, a.Accept(kernel.NewUUID(), baseTime))
		require.NoError(t, repo.Update(ctx, a))
		assert.Equal(t, 2, a.Version())

		require.NoError(t, b.Cancel(baseTime))
		err = repo.Update(ctx, b)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		stored, err := repo.Get(ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusAccepted, stored.Status())
	})

	t.Run("should isolate stored state from callers", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		r := newRequest(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, r))

		got, err := repo.Get(ctx, r.ID())
		require.NoError(t, err)
		require.NoError(t, got.Cancel(baseTime))

		again, err := repo.Get(ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, again.Status())
	})

	t.Run("exactly one concurrent update wins per version", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRequestRepository()
		r := newRequest(t, kernel.NewUUID())
		require.NoError(t, repo.Add(ctx, r))

		const writers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for range writers {
			copyOf, err := repo.Get(ctx, r.ID())
			require.NoError(t, err)
			require.NoError(t, copyOf.Accept(kernel.NewUUID(), baseTime))

			wg.Add(1)
			go func() {
				defer wg.Done()
				if repo.Update(ctx, copyOf) == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})
}
