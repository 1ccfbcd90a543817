package service

import (
	"context"
	"encoding/json"

	"cricscore/events"
	"cricscore/models"
)

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Create persists a new match in upcoming status
	Create(ctx context.Context, match *models.Match) error

	// GetByID retrieves a match by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Match, error)

	// UpdateStatus sets the match lifecycle status
	UpdateStatus(ctx context.Context, id int64, status models.MatchStatus) error

	// UpdateScore overwrites the running score fields for both teams
	UpdateScore(ctx context.Context, match *models.Match) error

	// UpdateResult records the winner and result description
	UpdateResult(ctx context.Context, id int64, winnerID *int64, resultDescription *string) error
}

// InningsRepository defines the interface for innings data access
type InningsRepository interface {
	// Create persists a new innings
	Create(ctx context.Context, innings *models.Innings) error

	// GetByID retrieves an innings by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Innings, error)

	// GetByIDForUpdate retrieves an innings and takes a row lock on it,
	// serializing concurrent deliveries for the same innings
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Innings, error)

	// GetByMatchAndNumber retrieves an innings by match and innings number
	GetByMatchAndNumber(ctx context.Context, matchID int64, inningsNumber int) (*models.Innings, error)

	// ListByMatch returns all innings of a match ordered by innings number
	ListByMatch(ctx context.Context, matchID int64) ([]*models.Innings, error)

	// Update persists the innings aggregate counters and status
	Update(ctx context.Context, innings *models.Innings) error
}

// BatsmanInningsRepository defines the interface for per-innings batsman rows
type BatsmanInningsRepository interface {
	// Create persists a new batsman innings row
	Create(ctx context.Context, batsman *models.BatsmanInnings) error

	// GetByInningsAndPlayer retrieves a batsman row, nil if absent
	GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BatsmanInnings, error)

	// GetByID retrieves a batsman row by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.BatsmanInnings, error)

	// GetByInningsAndPosition retrieves a batsman row by batting position
	GetByInningsAndPosition(ctx context.Context, inningsID int64, position int) (*models.BatsmanInnings, error)

	// ListByInnings returns all batsman rows ordered by batting position
	ListByInnings(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error)

	// ListBatting returns the batsmen currently at the crease
	ListBatting(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error)

	// Update persists the batsman row counters and status
	Update(ctx context.Context, batsman *models.BatsmanInnings) error
}

// BowlerInningsRepository defines the interface for per-innings bowler rows
type BowlerInningsRepository interface {
	// Create persists a new bowler innings row
	Create(ctx context.Context, bowler *models.BowlerInnings) error

	// GetByInningsAndPlayer retrieves a bowler row, nil if absent
	GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BowlerInnings, error)

	// ListByInnings returns all bowler rows of an innings
	ListByInnings(ctx context.Context, inningsID int64) ([]*models.BowlerInnings, error)

	// Update persists the bowler row counters
	Update(ctx context.Context, bowler *models.BowlerInnings) error
}

// BallRepository defines the interface for the append-only ball log
type BallRepository interface {
	// Create appends a ball to the log; balls are never updated or deleted
	Create(ctx context.Context, ball *models.Ball) error

	// ListByInnings returns the full ball log in over/ball order
	ListByInnings(ctx context.Context, inningsID int64) ([]*models.Ball, error)

	// ListByOver returns the balls of one over in ball order
	ListByOver(ctx context.Context, inningsID int64, overNumber int) ([]*models.Ball, error)

	// GetLast returns the most recent ball of an innings, nil if none
	GetLast(ctx context.Context, inningsID int64) (*models.Ball, error)
}

// PlayerStatisticRepository defines the interface for career aggregates
type PlayerStatisticRepository interface {
	// GetOrCreateForUpdate retrieves the player's statistic row for a
	// format, creating a zeroed row if absent, and locks it for the
	// duration of the transaction
	GetOrCreateForUpdate(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error)

	// GetByPlayerAndFormat retrieves a statistic row without locking,
	// nil if absent
	GetByPlayerAndFormat(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error)

	// Update persists the statistic counters and derived rates
	Update(ctx context.Context, stat *models.PlayerStatistic) error
}

// PlayerMilestoneRepository defines the interface for achievement records
type PlayerMilestoneRepository interface {
	// Create appends a milestone; milestones are never updated or deleted
	Create(ctx context.Context, milestone *models.PlayerMilestone) error

	// Exists reports whether a milestone with the same player, type, value
	// and match has already been recorded
	Exists(ctx context.Context, playerID int64, milestoneType models.MilestoneType, value int, matchID int64) (bool, error)

	// ListByPlayer returns a player's milestones, newest first
	ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.PlayerMilestone, error)
}

// EventPublisher publishes events tied to the current unit of work
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents one atomic transaction over the scoring state
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// WithSavepoint runs fn inside a savepoint on the current transaction.
	// If fn fails, only the savepoint is rolled back; writes made before it
	// stay committable even when fn's failure left the underlying
	// transaction in an aborted state
	WithSavepoint(ctx context.Context, fn func() error) error

	// Repository getters
	MatchRepository() MatchRepository
	InningsRepository() InningsRepository
	BatsmanInningsRepository() BatsmanInningsRepository
	BowlerInningsRepository() BowlerInningsRepository
	BallRepository() BallRepository
	PlayerStatisticRepository() PlayerStatisticRepository
	PlayerMilestoneRepository() PlayerMilestoneRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// DeliveryInput is one proposed delivery as submitted by the scorer
type DeliveryInput struct {
	InningsID      int64
	BowlerID       int64
	StrikerID      int64
	NonStrikerID   int64
	OverNumber     int
	BallNumber     int
	RunsScored     int
	IsWide         bool
	IsNoBall       bool
	IsBye          bool
	IsLegBye       bool
	IsWicket       bool
	WicketType     string
	PlayerOutID    *int64 // defaults to the striker for bowler-credited dismissals
	FielderID      *int64
	Commentary     string
	WagonWheelData json.RawMessage
}

// DeliveryResult carries the updated snapshots returned to the caller
type DeliveryResult struct {
	Ball    *models.Ball
	Innings *models.Innings
	Match   *models.Match
}

// ScoringService applies validated deliveries to the match state
type ScoringService interface {
	// RecordDelivery validates and applies one delivery atomically,
	// returning the updated ball, innings and match snapshots
	RecordDelivery(ctx context.Context, input *DeliveryInput) (*DeliveryResult, error)
}

// BatsmanEntry pairs a player with a batting position for squad assignment
type BatsmanEntry struct {
	PlayerID        int64
	BattingPosition int
}

// LifecycleService governs match and innings state transitions
type LifecycleService interface {
	// CreateMatch persists a new match in upcoming status
	CreateMatch(ctx context.Context, match *models.Match) (*models.Match, error)

	// StartMatch transitions a match from upcoming to live
	StartMatch(ctx context.Context, matchID int64) (*models.Match, error)

	// CompleteMatch transitions a live match to completed with a result
	CompleteMatch(ctx context.Context, matchID int64, winnerID *int64, resultDescription *string) (*models.Match, error)

	// AbandonMatch transitions a live match to abandoned
	AbandonMatch(ctx context.Context, matchID int64) (*models.Match, error)

	// StartInnings creates a new ongoing innings for a live match
	StartInnings(ctx context.Context, matchID, battingTeamID, bowlingTeamID int64, inningsNumber int) (*models.Innings, error)

	// EndInnings completes an ongoing innings and rolls its aggregate up
	// to the match score
	EndInnings(ctx context.Context, inningsID int64) (*models.Innings, error)

	// AddBatsmen registers batsmen with batting positions in an ongoing
	// innings; player or position collisions are rejected
	AddBatsmen(ctx context.Context, inningsID int64, entries []BatsmanEntry) ([]*models.BatsmanInnings, error)

	// AddBowlers registers bowlers in an ongoing innings, skipping players
	// already registered
	AddBowlers(ctx context.Context, inningsID int64, playerIDs []int64) ([]*models.BowlerInnings, error)

	// UpdateBatsmanStatus sets a batsman's status outside a delivery, e.g.
	// a retirement
	UpdateBatsmanStatus(ctx context.Context, batsmanInningsID int64, status models.BatsmanStatus) (*models.BatsmanInnings, error)
}

// PartnershipService rebuilds partnership segments from the ball log
type PartnershipService interface {
	// GetPartnerships replays an innings' ball log and returns its
	// partnership segments in chronological order
	GetPartnerships(ctx context.Context, inningsID int64) ([]*models.Partnership, error)
}

// InningsDetails is a read snapshot of one innings: its aggregate, the
// registered batsmen and bowlers, and the most recent deliveries
type InningsDetails struct {
	Innings     *models.Innings
	Batsmen     []*models.BatsmanInnings
	Bowlers     []*models.BowlerInnings
	RecentBalls []*models.Ball
}

// ScoreboardService exposes read-only scoring snapshots
type ScoreboardService interface {
	// GetInningsDetails returns the full innings snapshot with the most
	// recent deliveries
	GetInningsDetails(ctx context.Context, inningsID int64) (*InningsDetails, error)

	// GetCurrentBatsmen returns the batsmen currently at the crease
	GetCurrentBatsmen(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error)

	// GetCurrentBowler returns the bowler of the most recent ball
	GetCurrentBowler(ctx context.Context, inningsID int64) (*models.BowlerInnings, error)

	// GetOverDetails returns the balls of one over in ball order
	GetOverDetails(ctx context.Context, inningsID int64, overNumber int) ([]*models.Ball, error)

	// GetBatsmanWagonWheel returns a batsman's accumulated shot placements
	GetBatsmanWagonWheel(ctx context.Context, batsmanInningsID int64) ([]json.RawMessage, error)
}
