package service

import (
	"context"

	"cricscore/events"
	"cricscore/models"

	"github.com/stretchr/testify/mock"
)

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) UpdateStatus(ctx context.Context, id int64, status models.MatchStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMatchRepository) UpdateScore(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) UpdateResult(ctx context.Context, id int64, winnerID *int64, resultDescription *string) error {
	args := m.Called(ctx, id, winnerID, resultDescription)
	return args.Error(0)
}

// MockInningsRepository is a mock implementation of InningsRepository
type MockInningsRepository struct {
	mock.Mock
}

func (m *MockInningsRepository) Create(ctx context.Context, innings *models.Innings) error {
	args := m.Called(ctx, innings)
	return args.Error(0)
}

func (m *MockInningsRepository) GetByID(ctx context.Context, id int64) (*models.Innings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Innings), args.Error(1)
}

func (m *MockInningsRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Innings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Innings), args.Error(1)
}

func (m *MockInningsRepository) GetByMatchAndNumber(ctx context.Context, matchID int64, inningsNumber int) (*models.Innings, error) {
	args := m.Called(ctx, matchID, inningsNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Innings), args.Error(1)
}

func (m *MockInningsRepository) ListByMatch(ctx context.Context, matchID int64) ([]*models.Innings, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Innings), args.Error(1)
}

func (m *MockInningsRepository) Update(ctx context.Context, innings *models.Innings) error {
	args := m.Called(ctx, innings)
	return args.Error(0)
}

// MockBatsmanInningsRepository is a mock implementation of BatsmanInningsRepository
type MockBatsmanInningsRepository struct {
	mock.Mock
}

func (m *MockBatsmanInningsRepository) Create(ctx context.Context, batsman *models.BatsmanInnings) error {
	args := m.Called(ctx, batsman)
	return args.Error(0)
}

func (m *MockBatsmanInningsRepository) GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BatsmanInnings, error) {
	args := m.Called(ctx, inningsID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatsmanInnings), args.Error(1)
}

func (m *MockBatsmanInningsRepository) GetByID(ctx context.Context, id int64) (*models.BatsmanInnings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatsmanInnings), args.Error(1)
}

func (m *MockBatsmanInningsRepository) GetByInningsAndPosition(ctx context.Context, inningsID int64, position int) (*models.BatsmanInnings, error) {
	args := m.Called(ctx, inningsID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatsmanInnings), args.Error(1)
}

func (m *MockBatsmanInningsRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error) {
	args := m.Called(ctx, inningsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BatsmanInnings), args.Error(1)
}

func (m *MockBatsmanInningsRepository) ListBatting(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error) {
	args := m.Called(ctx, inningsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BatsmanInnings), args.Error(1)
}

func (m *MockBatsmanInningsRepository) Update(ctx context.Context, batsman *models.BatsmanInnings) error {
	args := m.Called(ctx, batsman)
	return args.Error(0)
}

// MockBowlerInningsRepository is a mock implementation of BowlerInningsRepository
type MockBowlerInningsRepository struct {
	mock.Mock
}

func (m *MockBowlerInningsRepository) Create(ctx context.Context, bowler *models.BowlerInnings) error {
	args := m.Called(ctx, bowler)
	return args.Error(0)
}

func (m *MockBowlerInningsRepository) GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BowlerInnings, error) {
	args := m.Called(ctx, inningsID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BowlerInnings), args.Error(1)
}

func (m *MockBowlerInningsRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.BowlerInnings, error) {
	args := m.Called(ctx, inningsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BowlerInnings), args.Error(1)
}

func (m *MockBowlerInningsRepository) Update(ctx context.Context, bowler *models.BowlerInnings) error {
	args := m.Called(ctx, bowler)
	return args.Error(0)
}

// MockBallRepository is a mock implementation of BallRepository
type MockBallRepository struct {
	mock.Mock
}

func (m *MockBallRepository) Create(ctx context.Context, ball *models.Ball) error {
	args := m.Called(ctx, ball)
	return args.Error(0)
}

func (m *MockBallRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.Ball, error) {
	args := m.Called(ctx, inningsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ball), args.Error(1)
}

func (m *MockBallRepository) ListByOver(ctx context.Context, inningsID int64, overNumber int) ([]*models.Ball, error) {
	args := m.Called(ctx, inningsID, overNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ball), args.Error(1)
}

func (m *MockBallRepository) GetLast(ctx context.Context, inningsID int64) (*models.Ball, error) {
	args := m.Called(ctx, inningsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ball), args.Error(1)
}

// MockPlayerStatisticRepository is a mock implementation of PlayerStatisticRepository
type MockPlayerStatisticRepository struct {
	mock.Mock
}

func (m *MockPlayerStatisticRepository) GetOrCreateForUpdate(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error) {
	args := m.Called(ctx, playerID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStatistic), args.Error(1)
}

func (m *MockPlayerStatisticRepository) GetByPlayerAndFormat(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error) {
	args := m.Called(ctx, playerID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStatistic), args.Error(1)
}

func (m *MockPlayerStatisticRepository) Update(ctx context.Context, stat *models.PlayerStatistic) error {
	args := m.Called(ctx, stat)
	return args.Error(0)
}

// MockPlayerMilestoneRepository is a mock implementation of PlayerMilestoneRepository
type MockPlayerMilestoneRepository struct {
	mock.Mock
}

func (m *MockPlayerMilestoneRepository) Create(ctx context.Context, milestone *models.PlayerMilestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockPlayerMilestoneRepository) Exists(ctx context.Context, playerID int64, milestoneType models.MilestoneType, value int, matchID int64) (bool, error) {
	args := m.Called(ctx, playerID, milestoneType, value, matchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerMilestoneRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.PlayerMilestone, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlayerMilestone), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// nopPublisher swallows events for tests that don't assert on them
type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected via SetRepositories rather than mocked per getter.
type MockUnitOfWork struct {
	mock.Mock
	matchRepo     MatchRepository
	inningsRepo   InningsRepository
	batsmanRepo   BatsmanInningsRepository
	bowlerRepo    BowlerInningsRepository
	ballRepo      BallRepository
	statisticRepo PlayerStatisticRepository
	milestoneRepo PlayerMilestoneRepository
	publisher     EventPublisher
}

// SetRepositories wires the repositories this unit of work hands out; pass
// nil for repositories a test never touches
func (m *MockUnitOfWork) SetRepositories(
	match MatchRepository,
	innings InningsRepository,
	batsman BatsmanInningsRepository,
	bowler BowlerInningsRepository,
	ball BallRepository,
	statistic PlayerStatisticRepository,
	milestone PlayerMilestoneRepository,
) {
	m.matchRepo = match
	m.inningsRepo = innings
	m.batsmanRepo = batsman
	m.bowlerRepo = bowler
	m.ballRepo = ball
	m.statisticRepo = statistic
	m.milestoneRepo = milestone
}

// SetEventPublisher overrides the default no-op publisher
func (m *MockUnitOfWork) SetEventPublisher(p EventPublisher) {
	m.publisher = p
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// WithSavepoint runs fn directly; savepoint semantics are covered by the
// repository integration tests
func (m *MockUnitOfWork) WithSavepoint(ctx context.Context, fn func() error) error {
	return fn()
}

func (m *MockUnitOfWork) MatchRepository() MatchRepository {
	return m.matchRepo
}

func (m *MockUnitOfWork) InningsRepository() InningsRepository {
	return m.inningsRepo
}

func (m *MockUnitOfWork) BatsmanInningsRepository() BatsmanInningsRepository {
	return m.batsmanRepo
}

func (m *MockUnitOfWork) BowlerInningsRepository() BowlerInningsRepository {
	return m.bowlerRepo
}

func (m *MockUnitOfWork) BallRepository() BallRepository {
	return m.ballRepo
}

func (m *MockUnitOfWork) PlayerStatisticRepository() PlayerStatisticRepository {
	return m.statisticRepo
}

func (m *MockUnitOfWork) PlayerMilestoneRepository() PlayerMilestoneRepository {
	return m.milestoneRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		return nopPublisher{}
	}
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := f.Called()
	return args.Get(0).(UnitOfWork)
}
