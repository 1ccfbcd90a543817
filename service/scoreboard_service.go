package service

import (
	"context"
	"encoding/json"
	"fmt"

	"cricscore/models"
)

type scoreboardService struct {
	uowFactory UnitOfWorkFactory
}

// NewScoreboardService creates a new scoreboard service
func NewScoreboardService(uowFactory UnitOfWorkFactory) ScoreboardService {
	return &scoreboardService{uowFactory: uowFactory}
}

// recentBallCount is how many trailing deliveries an innings snapshot carries
const recentBallCount = 12

func (s *scoreboardService) GetInningsDetails(ctx context.Context, inningsID int64) (*InningsDetails, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}

	batsmen, err := uow.BatsmanInningsRepository().ListByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batsmen: %w", err)
	}

	bowlers, err := uow.BowlerInningsRepository().ListByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bowlers: %w", err)
	}

	balls, err := uow.BallRepository().ListByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balls: %w", err)
	}
	if len(balls) > recentBallCount {
		balls = balls[len(balls)-recentBallCount:]
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &InningsDetails{
		Innings:     innings,
		Batsmen:     batsmen,
		Bowlers:     bowlers,
		RecentBalls: balls,
	}, nil
}

func (s *scoreboardService) GetCurrentBatsmen(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}

	batsmen, err := uow.BatsmanInningsRepository().ListBatting(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batting batsmen: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return batsmen, nil
}

// GetCurrentBowler resolves the bowler of the most recent ball on record
func (s *scoreboardService) GetCurrentBowler(ctx context.Context, inningsID int64) (*models.BowlerInnings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	lastBall, err := uow.BallRepository().GetLast(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last ball: %w", err)
	}
	if lastBall == nil {
		return nil, NewNotFoundError("no balls bowled yet in innings %d", inningsID)
	}

	bowler, err := uow.BowlerInningsRepository().GetByInningsAndPlayer(ctx, inningsID, lastBall.BowlerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bowler row: %w", err)
	}
	if bowler == nil {
		return nil, NewIntegrityError(fmt.Sprintf("bowler %d of last ball has no row in innings %d", lastBall.BowlerID, inningsID), nil)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return bowler, nil
}

func (s *scoreboardService) GetOverDetails(ctx context.Context, inningsID int64, overNumber int) ([]*models.Ball, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balls, err := uow.BallRepository().ListByOver(ctx, inningsID, overNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list over %d: %w", overNumber, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return balls, nil
}

func (s *scoreboardService) GetBatsmanWagonWheel(ctx context.Context, batsmanInningsID int64) ([]json.RawMessage, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	batsman, err := uow.BatsmanInningsRepository().GetByID(ctx, batsmanInningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batsman row: %w", err)
	}
	if batsman == nil {
		return nil, NewNotFoundError("batsman innings %d not found", batsmanInningsID)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return batsman.WagonWheelData, nil
}
