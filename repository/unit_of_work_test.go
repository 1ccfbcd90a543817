package repository

import (
	"context"
	"testing"

	"cricscore/events"
	"cricscore/repository/testutil"
	"cricscore/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_WithSavepoint(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	matchRepo := NewMatchRepository(testDB.DB)
	match := testutil.CreateTestMatch(1, 2)
	require.NoError(t, matchRepo.Create(ctx, match))

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	t.Run("failure inside savepoint keeps earlier writes committable", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		innings := testutil.CreateTestInnings(match.ID, 1, 2, 1)
		require.NoError(t, uow.InningsRepository().Create(ctx, innings))

		// A unique violation aborts the transaction; the savepoint has
		// to absorb that or nothing after it can run
		err := uow.WithSavepoint(ctx, func() error {
			dup := testutil.CreateTestInnings(match.ID, 1, 2, 1)
			return uow.InningsRepository().Create(ctx, dup)
		})
		require.Error(t, err)
		assert.True(t, service.IsKind(err, service.ErrorKindStateConflict))

		innings.TotalRuns = 10
		innings.TotalOvers = 1.3
		require.NoError(t, uow.InningsRepository().Update(ctx, innings))
		require.NoError(t, uow.Commit())

		persisted, err := NewInningsRepository(testDB.DB).GetByMatchAndNumber(ctx, match.ID, 1)
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, 10, persisted.TotalRuns)
		assert.Equal(t, 1.3, persisted.TotalOvers)
	})

	t.Run("successful savepoint work commits with the transaction", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		require.NoError(t, uow.WithSavepoint(ctx, func() error {
			innings := testutil.CreateTestInnings(match.ID, 2, 1, 2)
			return uow.InningsRepository().Create(ctx, innings)
		}))
		require.NoError(t, uow.Commit())

		persisted, err := NewInningsRepository(testDB.DB).GetByMatchAndNumber(ctx, match.ID, 2)
		require.NoError(t, err)
		require.NotNil(t, persisted)
	})

	t.Run("requires a started transaction", func(t *testing.T) {
		uow := factory.Create()
		err := uow.WithSavepoint(ctx, func() error { return nil })
		require.Error(t, err)
	})
}
