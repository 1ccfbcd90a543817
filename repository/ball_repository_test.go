package repository

import (
	"context"
	"testing"

	"cricscore/models"
	"cricscore/repository/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInnings(t *testing.T, testDB *testutil.TestDatabase) *models.Innings {
	ctx := context.Background()

	match := testutil.CreateTestMatch(1, 2)
	require.NoError(t, NewMatchRepository(testDB.DB).Create(ctx, match))

	innings := testutil.CreateTestInnings(match.ID, 1, 2, 1)
	require.NoError(t, NewInningsRepository(testDB.DB).Create(ctx, innings))
	return innings
}

func TestBallRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBallRepository(testDB.DB)
	ctx := context.Background()
	innings := setupInnings(t, testDB)

	t.Run("successful creation", func(t *testing.T) {
		ball := testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 1, 4)
		err := repo.Create(ctx, ball)
		require.NoError(t, err)
		assert.NotZero(t, ball.ID)
		assert.False(t, ball.CreatedAt.IsZero())
	})

	t.Run("wicket details persisted", func(t *testing.T) {
		ball := testutil.CreateTestWicketBall(innings.ID, 10, 20, 21, 0, 2, models.WicketTypeBowled)
		err := repo.Create(ctx, ball)
		require.NoError(t, err)

		last, err := repo.GetLast(ctx, innings.ID)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, last.IsWicket)
		require.NotNil(t, last.WicketType)
		assert.Equal(t, models.WicketTypeBowled, *last.WicketType)
		require.NotNil(t, last.WicketPlayerOutID)
		assert.Equal(t, int64(20), *last.WicketPlayerOutID)
	})

	t.Run("ball number out of range rejected", func(t *testing.T) {
		ball := testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 7, 0)
		err := repo.Create(ctx, ball)
		assert.Error(t, err)
	})
}

func TestBallRepository_ListByInnings(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBallRepository(testDB.DB)
	ctx := context.Background()
	innings := setupInnings(t, testDB)

	t.Run("empty innings", func(t *testing.T) {
		balls, err := repo.ListByInnings(ctx, innings.ID)
		require.NoError(t, err)
		assert.Empty(t, balls)
	})

	t.Run("balls returned in over and ball order", func(t *testing.T) {
		// Insert out of order; the listing must not depend on insertion order
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 1, 2, 0)))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 3, 4)))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 1, 1, 1)))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 1, 6)))

		balls, err := repo.ListByInnings(ctx, innings.ID)
		require.NoError(t, err)
		require.Len(t, balls, 4)

		assert.Equal(t, []int{0, 0, 1, 1}, []int{balls[0].OverNumber, balls[1].OverNumber, balls[2].OverNumber, balls[3].OverNumber})
		assert.Equal(t, []int{1, 3, 1, 2}, []int{balls[0].BallNumber, balls[1].BallNumber, balls[2].BallNumber, balls[3].BallNumber})
	})

	t.Run("re-bowled deliveries tie-break on insertion order", func(t *testing.T) {
		// A wide followed by the legal re-bowl shares the same over and ball
		wide := testutil.CreateTestBall(innings.ID, 10, 20, 21, 2, 1, 0)
		wide.IsWide = true
		require.NoError(t, repo.Create(ctx, wide))
		legal := testutil.CreateTestBall(innings.ID, 10, 20, 21, 2, 1, 2)
		require.NoError(t, repo.Create(ctx, legal))

		balls, err := repo.ListByOver(ctx, innings.ID, 2)
		require.NoError(t, err)
		require.Len(t, balls, 2)
		assert.True(t, balls[0].IsWide)
		assert.False(t, balls[1].IsWide)
	})
}

func TestBallRepository_GetLast(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBallRepository(testDB.DB)
	ctx := context.Background()
	innings := setupInnings(t, testDB)

	t.Run("no balls", func(t *testing.T) {
		ball, err := repo.GetLast(ctx, innings.ID)
		require.NoError(t, err)
		assert.Nil(t, ball)
	})

	t.Run("returns most recent delivery", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 1, 0)))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestBall(innings.ID, 10, 20, 21, 0, 2, 4)))

		ball, err := repo.GetLast(ctx, innings.ID)
		require.NoError(t, err)
		require.NotNil(t, ball)
		assert.Equal(t, 2, ball.BallNumber)
		assert.Equal(t, 4, ball.RunsScored)
	})
}
