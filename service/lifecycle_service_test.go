package service

import (
	"context"
	"testing"

	"cricscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lifecycleMocks struct {
	factory   *MockUnitOfWorkFactory
	uow       *MockUnitOfWork
	match     *MockMatchRepository
	innings   *MockInningsRepository
	batsman   *MockBatsmanInningsRepository
	bowler    *MockBowlerInningsRepository
	statistic *MockPlayerStatisticRepository
}

func newLifecycleMocks() *lifecycleMocks {
	m := &lifecycleMocks{
		factory:   new(MockUnitOfWorkFactory),
		uow:       new(MockUnitOfWork),
		match:     new(MockMatchRepository),
		innings:   new(MockInningsRepository),
		batsman:   new(MockBatsmanInningsRepository),
		bowler:    new(MockBowlerInningsRepository),
		statistic: new(MockPlayerStatisticRepository),
	}
	m.uow.SetRepositories(m.match, m.innings, m.batsman, m.bowler, nil, m.statistic, nil)
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback").Return(nil)
	return m
}

func TestLifecycleService_CreateMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("same team twice rejected", func(t *testing.T) {
		m := newLifecycleMocks()
		service := NewLifecycleService(m.factory)

		_, err := service.CreateMatch(ctx, &models.Match{Team1ID: 1, Team2ID: 1, MatchType: "T20"})
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindValidation))
	})

	t.Run("created as upcoming", func(t *testing.T) {
		m := newLifecycleMocks()
		m.uow.On("Commit").Return(nil)
		m.match.On("Create", ctx, mock.MatchedBy(func(match *models.Match) bool {
			return match.Status == models.MatchStatusUpcoming
		})).Return(nil)

		service := NewLifecycleService(m.factory)
		match, err := service.CreateMatch(ctx, &models.Match{Team1ID: 1, Team2ID: 2, MatchType: "T20"})
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusUpcoming, match.Status)
	})
}

func TestLifecycleService_StartMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("upcoming goes live", func(t *testing.T) {
		m := newLifecycleMocks()
		m.uow.On("Commit").Return(nil)
		m.match.On("GetByID", ctx, int64(1)).Return(&models.Match{ID: 1, Team1ID: 1, Team2ID: 2, Status: models.MatchStatusUpcoming}, nil)
		m.match.On("UpdateStatus", ctx, int64(1), models.MatchStatusLive).Return(nil)

		service := NewLifecycleService(m.factory)
		match, err := service.StartMatch(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusLive, match.Status)
	})

	t.Run("completed match cannot restart", func(t *testing.T) {
		m := newLifecycleMocks()
		m.match.On("GetByID", ctx, int64(1)).Return(&models.Match{ID: 1, Status: models.MatchStatusCompleted}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.StartMatch(ctx, 1)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("missing match", func(t *testing.T) {
		m := newLifecycleMocks()
		m.match.On("GetByID", ctx, int64(9)).Return(nil, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.StartMatch(ctx, 9)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindNotFound))
	})
}

func TestLifecycleService_CompleteMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("live match completes with result", func(t *testing.T) {
		m := newLifecycleMocks()
		winner := int64(1)
		desc := "won by 5 wickets"

		m.uow.On("Commit").Return(nil)
		m.match.On("GetByID", ctx, int64(1)).Return(&models.Match{ID: 1, Team1ID: 1, Team2ID: 2, Status: models.MatchStatusLive}, nil)
		m.match.On("UpdateStatus", ctx, int64(1), models.MatchStatusCompleted).Return(nil)
		m.match.On("UpdateResult", ctx, int64(1), &winner, &desc).Return(nil)

		service := NewLifecycleService(m.factory)
		match, err := service.CompleteMatch(ctx, 1, &winner, &desc)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusCompleted, match.Status)
		require.NotNil(t, match.MatchWinnerID)
		assert.Equal(t, winner, *match.MatchWinnerID)
	})

	t.Run("upcoming match cannot complete", func(t *testing.T) {
		m := newLifecycleMocks()
		m.match.On("GetByID", ctx, int64(1)).Return(&models.Match{ID: 1, Status: models.MatchStatusUpcoming}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.CompleteMatch(ctx, 1, nil, nil)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})
}

func TestLifecycleService_StartInnings(t *testing.T) {
	ctx := context.Background()
	liveMatch := func() *models.Match {
		return &models.Match{ID: 1, Team1ID: 1, Team2ID: 2, Status: models.MatchStatusLive}
	}

	t.Run("created ongoing", func(t *testing.T) {
		m := newLifecycleMocks()
		m.uow.On("Commit").Return(nil)
		m.match.On("GetByID", ctx, int64(1)).Return(liveMatch(), nil)
		m.innings.On("GetByMatchAndNumber", ctx, int64(1), 1).Return(nil, nil)
		m.innings.On("Create", ctx, mock.MatchedBy(func(i *models.Innings) bool {
			return i.MatchID == 1 && i.InningsNumber == 1 && i.Status == models.InningsStatusOngoing
		})).Return(nil)

		service := NewLifecycleService(m.factory)
		innings, err := service.StartInnings(ctx, 1, 1, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, models.InningsStatusOngoing, innings.Status)
	})

	t.Run("duplicate innings number", func(t *testing.T) {
		m := newLifecycleMocks()
		m.match.On("GetByID", ctx, int64(1)).Return(liveMatch(), nil)
		m.innings.On("GetByMatchAndNumber", ctx, int64(1), 1).Return(&models.Innings{ID: 5, InningsNumber: 1}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.StartInnings(ctx, 1, 1, 2, 1)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})

	t.Run("team outside the match", func(t *testing.T) {
		m := newLifecycleMocks()
		m.match.On("GetByID", ctx, int64(1)).Return(liveMatch(), nil)

		service := NewLifecycleService(m.factory)
		_, err := service.StartInnings(ctx, 1, 1, 9, 1)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindValidation))
	})

	t.Run("match not live", func(t *testing.T) {
		m := newLifecycleMocks()
		match := liveMatch()
		match.Status = models.MatchStatusUpcoming
		m.match.On("GetByID", ctx, int64(1)).Return(match, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.StartInnings(ctx, 1, 1, 2, 1)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})
}

func TestLifecycleService_EndInnings(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregate rolls up on close", func(t *testing.T) {
		m := newLifecycleMocks()
		innings := &models.Innings{ID: 1, MatchID: 1, BattingTeamID: 2, InningsNumber: 1, TotalRuns: 164, TotalWickets: 7, TotalOvers: 20.0, Status: models.InningsStatusOngoing}
		match := &models.Match{ID: 1, Team1ID: 1, Team2ID: 2, MatchType: "T20", Status: models.MatchStatusLive}

		m.uow.On("Commit").Return(nil)
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(innings, nil)
		m.match.On("GetByID", ctx, int64(1)).Return(match, nil)
		m.innings.On("Update", ctx, innings).Return(nil)
		m.match.On("UpdateScore", ctx, match).Return(nil)
		m.batsman.On("ListByInnings", ctx, int64(1)).Return([]*models.BatsmanInnings{}, nil)

		service := NewLifecycleService(m.factory)
		got, err := service.EndInnings(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, models.InningsStatusCompleted, got.Status)
		assert.Equal(t, 164, match.Team2Score)
		assert.Equal(t, 7, match.Team2Wickets)
		assert.Equal(t, 20.0, match.Team2Overs)
	})

	t.Run("undismissed batsmen credited a not out", func(t *testing.T) {
		m := newLifecycleMocks()
		innings := &models.Innings{ID: 1, MatchID: 1, BattingTeamID: 2, InningsNumber: 1, TotalRuns: 142, TotalWickets: 4, TotalOvers: 20.0, Status: models.InningsStatusOngoing}
		match := &models.Match{ID: 1, Team1ID: 1, Team2ID: 2, MatchType: "T20", Status: models.MatchStatusLive}

		m.uow.On("Commit").Return(nil)
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(innings, nil)
		m.match.On("GetByID", ctx, int64(1)).Return(match, nil)
		m.innings.On("Update", ctx, innings).Return(nil)
		m.match.On("UpdateScore", ctx, match).Return(nil)

		m.batsman.On("ListByInnings", ctx, int64(1)).Return([]*models.BatsmanInnings{
			{PlayerID: 20, Status: models.BatsmanStatusBatting, RunsScored: 61, BallsFaced: 44},
			{PlayerID: 21, Status: models.BatsmanStatusOut, IsOut: true, RunsScored: 30},
			{PlayerID: 22, Status: models.BatsmanStatusRetiredNotOut, RunsScored: 18},
			{PlayerID: 23, Status: models.BatsmanStatusYetToBat},
		}, nil)

		stat20 := &models.PlayerStatistic{PlayerID: 20, Format: "T20", InningsBatted: 5, NotOuts: 1, RunsScored: 200}
		stat22 := &models.PlayerStatistic{PlayerID: 22, Format: "T20", InningsBatted: 3, RunsScored: 90}
		m.statistic.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat20, nil)
		m.statistic.On("GetOrCreateForUpdate", ctx, int64(22), "T20").Return(stat22, nil)
		m.statistic.On("Update", ctx, stat20).Return(nil)
		m.statistic.On("Update", ctx, stat22).Return(nil)

		service := NewLifecycleService(m.factory)
		_, err := service.EndInnings(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, stat20.NotOuts)
		assert.InDelta(t, 200.0/3.0, stat20.BattingAverage, 0.001)
		assert.Equal(t, 1, stat22.NotOuts)
		assert.InDelta(t, 45.0, stat22.BattingAverage, 0.001)
		m.statistic.AssertNotCalled(t, "GetOrCreateForUpdate", ctx, int64(21), "T20")
		m.statistic.AssertNotCalled(t, "GetOrCreateForUpdate", ctx, int64(23), "T20")
	})

	t.Run("already completed", func(t *testing.T) {
		m := newLifecycleMocks()
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Innings{ID: 1, Status: models.InningsStatusCompleted}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.EndInnings(ctx, 1)
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})
}

func TestLifecycleService_AddBatsmen(t *testing.T) {
	ctx := context.Background()
	ongoing := func() *models.Innings {
		return &models.Innings{ID: 1, MatchID: 1, Status: models.InningsStatusOngoing}
	}

	t.Run("openers registered", func(t *testing.T) {
		m := newLifecycleMocks()
		m.uow.On("Commit").Return(nil)
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(ongoing(), nil)
		m.batsman.On("GetByInningsAndPlayer", ctx, int64(1), mock.AnythingOfType("int64")).Return(nil, nil)
		m.batsman.On("GetByInningsAndPosition", ctx, int64(1), mock.AnythingOfType("int")).Return(nil, nil)
		m.batsman.On("Create", ctx, mock.AnythingOfType("*models.BatsmanInnings")).Return(nil)

		service := NewLifecycleService(m.factory)
		added, err := service.AddBatsmen(ctx, 1, []BatsmanEntry{
			{PlayerID: 20, BattingPosition: 1},
			{PlayerID: 21, BattingPosition: 2},
		})
		require.NoError(t, err)
		require.Len(t, added, 2)
		assert.Equal(t, models.BatsmanStatusYetToBat, added[0].Status)
	})

	t.Run("player collision rejected", func(t *testing.T) {
		m := newLifecycleMocks()
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(ongoing(), nil)
		m.batsman.On("GetByInningsAndPlayer", ctx, int64(1), int64(20)).Return(&models.BatsmanInnings{PlayerID: 20}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.AddBatsmen(ctx, 1, []BatsmanEntry{{PlayerID: 20, BattingPosition: 3}})
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})

	t.Run("position collision rejected", func(t *testing.T) {
		m := newLifecycleMocks()
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(ongoing(), nil)
		m.batsman.On("GetByInningsAndPlayer", ctx, int64(1), int64(22)).Return(nil, nil)
		m.batsman.On("GetByInningsAndPosition", ctx, int64(1), 1).Return(&models.BatsmanInnings{BattingPosition: 1}, nil)

		service := NewLifecycleService(m.factory)
		_, err := service.AddBatsmen(ctx, 1, []BatsmanEntry{{PlayerID: 22, BattingPosition: 1}})
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindStateConflict))
	})
}

func TestLifecycleService_AddBowlers(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bowler skipped", func(t *testing.T) {
		m := newLifecycleMocks()
		m.uow.On("Commit").Return(nil)
		m.innings.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Innings{ID: 1, Status: models.InningsStatusOngoing}, nil)
		m.bowler.On("GetByInningsAndPlayer", ctx, int64(1), int64(10)).Return(&models.BowlerInnings{PlayerID: 10}, nil)
		m.bowler.On("GetByInningsAndPlayer", ctx, int64(1), int64(11)).Return(nil, nil)
		m.bowler.On("Create", ctx, mock.MatchedBy(func(b *models.BowlerInnings) bool {
			return b.PlayerID == 11
		})).Return(nil)

		service := NewLifecycleService(m.factory)
		added, err := service.AddBowlers(ctx, 1, []int64{10, 11})
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, int64(11), added[0].PlayerID)
	})
}

func TestLifecycleService_UpdateBatsmanStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("retired hurt leaves the crease", func(t *testing.T) {
		m := newLifecycleMocks()
		batsman := &models.BatsmanInnings{ID: 3, InningsID: 1, PlayerID: 20, Status: models.BatsmanStatusBatting}

		m.uow.On("Commit").Return(nil)
		m.batsman.On("GetByID", ctx, int64(3)).Return(batsman, nil)
		m.innings.On("GetByID", ctx, int64(1)).Return(&models.Innings{ID: 1, Status: models.InningsStatusOngoing}, nil)
		m.batsman.On("Update", ctx, batsman).Return(nil)

		service := NewLifecycleService(m.factory)
		got, err := service.UpdateBatsmanStatus(ctx, 3, models.BatsmanStatusRetiredHurt)
		require.NoError(t, err)
		assert.Equal(t, models.BatsmanStatusRetiredHurt, got.Status)
		assert.True(t, got.IsOut)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		m := newLifecycleMocks()
		service := NewLifecycleService(m.factory)
		_, err := service.UpdateBatsmanStatus(ctx, 3, models.BatsmanStatus("walked off"))
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindValidation))
	})
}
