package service

import (
	"context"
	"testing"

	"cricscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDetectorMocks() (*MockUnitOfWork, *MockPlayerStatisticRepository, *MockPlayerMilestoneRepository) {
	uow := new(MockUnitOfWork)
	statRepo := new(MockPlayerStatisticRepository)
	milestoneRepo := new(MockPlayerMilestoneRepository)
	uow.SetRepositories(nil, nil, nil, nil, nil, statRepo, milestoneRepo)
	return uow, statRepo, milestoneRepo
}

func testMatch() *models.Match {
	return &models.Match{ID: 7, Team1ID: 1, Team2ID: 2, MatchType: "T20", Status: models.MatchStatusLive}
}

func TestMilestoneDetector_FiftyCrossing(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20", RunsScored: 400}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(20), models.MilestoneTypeFifty, 50, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.PlayerID == 20 && m.MilestoneType == models.MilestoneTypeFifty && m.MilestoneValue == 50 && *m.MatchID == 7
	})).Return(nil)

	// 48 before the ball, 52 after: the boundary crosses fifty
	delta := BattingDelta{Runs: 4, BallsFaced: 1, Fours: 1, InningsRunsAfter: 52}
	err := detector.CheckBatsman(ctx, uow, 20, match, delta)
	require.NoError(t, err)

	assert.Equal(t, 404, stat.RunsScored)
	assert.Equal(t, 1, stat.Fifties)
	milestoneRepo.AssertExpectations(t)
}

func TestMilestoneDetector_FirstDeliveryOpensCareerInnings(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, _ := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20", InningsBatted: 4, NotOuts: 1, RunsScored: 150, BallsFaced: 120}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	delta := BattingDelta{BallsFaced: 1, FirstDelivery: true}
	require.NoError(t, detector.CheckBatsman(ctx, uow, 20, match, delta))
	assert.Equal(t, 5, stat.InningsBatted)
	assert.InDelta(t, 150.0/4.0, stat.BattingAverage, 0.001)

	// The rest of the innings never reopens it
	delta = BattingDelta{Runs: 2, BallsFaced: 1, InningsRunsAfter: 2}
	require.NoError(t, detector.CheckBatsman(ctx, uow, 20, match, delta))
	assert.Equal(t, 5, stat.InningsBatted)
}

func TestMilestoneDetector_FiftyAlreadyRecorded(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20", Fifties: 3}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(20), models.MilestoneTypeFifty, 50, int64(7)).Return(true, nil)

	delta := BattingDelta{Runs: 2, BallsFaced: 1, InningsRunsAfter: 51}
	err := detector.CheckBatsman(ctx, uow, 20, match, delta)
	require.NoError(t, err)

	// No new row, no counter bump
	assert.Equal(t, 3, stat.Fifties)
	milestoneRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMilestoneDetector_NoCrossingInsideFifties(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20"}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	// 55 -> 59 stays inside the fifties band: nothing fires
	delta := BattingDelta{Runs: 4, BallsFaced: 1, Fours: 1, InningsRunsAfter: 59}
	err := detector.CheckBatsman(ctx, uow, 20, match, delta)
	require.NoError(t, err)

	milestoneRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMilestoneDetector_HundredCrossing(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20"}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(20), models.MilestoneTypeHundred, 100, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.MilestoneType == models.MilestoneTypeHundred
	})).Return(nil)

	// 98 -> 104 crosses a hundred without re-firing the fifty
	delta := BattingDelta{Runs: 6, BallsFaced: 1, Sixes: 1, InningsRunsAfter: 104}
	err := detector.CheckBatsman(ctx, uow, 20, match, delta)
	require.NoError(t, err)

	assert.Equal(t, 1, stat.Hundreds)
	assert.Equal(t, 0, stat.Fifties)
	milestoneRepo.AssertNotCalled(t, "Exists", ctx, int64(20), models.MilestoneTypeFifty, 50, int64(7))
}

func TestMilestoneDetector_CareerRunThreshold(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 1, PlayerID: 20, Format: "T20", RunsScored: 998}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(20), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(20), models.MilestoneTypeRuns, 1000, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.MilestoneType == models.MilestoneTypeRuns && m.MilestoneValue == 1000
	})).Return(nil)

	delta := BattingDelta{Runs: 4, BallsFaced: 1, Fours: 1, InningsRunsAfter: 12}
	err := detector.CheckBatsman(ctx, uow, 20, match, delta)
	require.NoError(t, err)

	assert.Equal(t, 1002, stat.RunsScored)
	milestoneRepo.AssertExpectations(t)
}

func TestMilestoneDetector_FourWicketHaul(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 2, PlayerID: 10, Format: "T20", WicketsTaken: 40}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(10), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(10), models.MilestoneTypeFourWickets, 4, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.MilestoneType == models.MilestoneTypeFourWickets && m.MilestoneValue == 4
	})).Return(nil)

	delta := BowlingDelta{LegalBalls: 1, Wickets: 1, InningsWicketsAfter: 4}
	err := detector.CheckBowler(ctx, uow, 10, match, delta)
	require.NoError(t, err)

	assert.Equal(t, 41, stat.WicketsTaken)
	assert.Equal(t, 1, stat.FourWickets)
	milestoneRepo.AssertExpectations(t)
}

func TestMilestoneDetector_FifthWicketUpgrades(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 2, PlayerID: 10, Format: "T20"}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(10), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(10), models.MilestoneTypeFiveWickets, 5, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.MilestoneType == models.MilestoneTypeFiveWickets && m.MilestoneValue == 5
	})).Return(nil)

	// 4 -> 5: only the five-for fires, the four-for already did
	delta := BowlingDelta{LegalBalls: 1, Wickets: 1, InningsWicketsAfter: 5}
	err := detector.CheckBowler(ctx, uow, 10, match, delta)
	require.NoError(t, err)

	assert.Equal(t, 1, stat.FiveWickets)
	assert.Equal(t, 0, stat.FourWickets)
	milestoneRepo.AssertNotCalled(t, "Exists", ctx, int64(10), models.MilestoneTypeFourWickets, 4, int64(7))
}

func TestMilestoneDetector_BowlerOversAccumulateBaseSix(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, _ := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 2, PlayerID: 10, Format: "T20", OversBowled: 9.5}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(10), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	delta := BowlingDelta{LegalBalls: 1, RunsConceded: 1, InningsWicketsAfter: 0}
	err := detector.CheckBowler(ctx, uow, 10, match, delta)
	require.NoError(t, err)

	// 9.5 plus one ball is 10 overs, not 9.6
	assert.Equal(t, 10.0, stat.OversBowled)
}

func TestMilestoneDetector_FielderCatch(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, milestoneRepo := newDetectorMocks()
	match := testMatch()
	detector := NewMilestoneDetector()

	stat := &models.PlayerStatistic{ID: 3, PlayerID: 30, Format: "T20", Catches: 99}
	statRepo.On("GetOrCreateForUpdate", ctx, int64(30), "T20").Return(stat, nil)
	statRepo.On("Update", ctx, stat).Return(nil)

	milestoneRepo.On("Exists", ctx, int64(30), models.MilestoneTypeCatches, 100, int64(7)).Return(false, nil)
	milestoneRepo.On("Create", ctx, mock.MatchedBy(func(m *models.PlayerMilestone) bool {
		return m.MilestoneType == models.MilestoneTypeCatches && m.MilestoneValue == 100
	})).Return(nil)

	err := detector.CheckFielder(ctx, uow, 30, match, models.WicketTypeCaught)
	require.NoError(t, err)

	assert.Equal(t, 100, stat.Catches)
	milestoneRepo.AssertExpectations(t)
}

func TestMilestoneDetector_FielderIgnoresBowled(t *testing.T) {
	ctx := context.Background()
	uow, statRepo, _ := newDetectorMocks()
	detector := NewMilestoneDetector()

	err := detector.CheckFielder(ctx, uow, 30, testMatch(), models.WicketTypeBowled)
	require.NoError(t, err)
	statRepo.AssertNotCalled(t, "GetOrCreateForUpdate", mock.Anything, mock.Anything, mock.Anything)
}
