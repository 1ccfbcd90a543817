package service

import (
	"context"
	"fmt"

	"cricscore/events"
	"cricscore/models"
)

type lifecycleService struct {
	uowFactory UnitOfWorkFactory
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(uowFactory UnitOfWorkFactory) LifecycleService {
	return &lifecycleService{uowFactory: uowFactory}
}

// matchTransitions is the allowed match state machine
var matchTransitions = map[models.MatchStatus][]models.MatchStatus{
	models.MatchStatusUpcoming: {models.MatchStatusLive},
	models.MatchStatusLive:     {models.MatchStatusCompleted, models.MatchStatusAbandoned},
}

func canTransition(from, to models.MatchStatus) bool {
	for _, allowed := range matchTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *lifecycleService) CreateMatch(ctx context.Context, match *models.Match) (*models.Match, error) {
	if match.Team1ID == match.Team2ID {
		return nil, NewValidationError("a match needs two different teams")
	}
	if match.MatchType == "" {
		return nil, NewValidationError("match type is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match.Status = models.MatchStatusUpcoming
	if err := uow.MatchRepository().Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *lifecycleService) StartMatch(ctx context.Context, matchID int64) (*models.Match, error) {
	return s.transitionMatch(ctx, matchID, models.MatchStatusLive, nil)
}

func (s *lifecycleService) CompleteMatch(ctx context.Context, matchID int64, winnerID *int64, resultDescription *string) (*models.Match, error) {
	return s.transitionMatch(ctx, matchID, models.MatchStatusCompleted, func(ctx context.Context, uow UnitOfWork, match *models.Match) error {
		if err := uow.MatchRepository().UpdateResult(ctx, matchID, winnerID, resultDescription); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}
		match.MatchWinnerID = winnerID
		match.ResultDescription = resultDescription
		return nil
	})
}

func (s *lifecycleService) AbandonMatch(ctx context.Context, matchID int64) (*models.Match, error) {
	return s.transitionMatch(ctx, matchID, models.MatchStatusAbandoned, nil)
}

func (s *lifecycleService) transitionMatch(ctx context.Context, matchID int64, to models.MatchStatus, extra func(context.Context, UnitOfWork, *models.Match) error) (*models.Match, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, NewNotFoundError("match %d not found", matchID)
	}
	if !canTransition(match.Status, to) {
		return nil, NewStateConflictError("match %d cannot go from %s to %s", matchID, match.Status, to)
	}

	oldStatus := match.Status
	if err := uow.MatchRepository().UpdateStatus(ctx, matchID, to); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	match.Status = to

	if extra != nil {
		if err := extra(ctx, uow, match); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.MatchStatusChangeEvent{
		MatchID:   matchID,
		OldStatus: oldStatus,
		NewStatus: to,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *lifecycleService) StartInnings(ctx context.Context, matchID, battingTeamID, bowlingTeamID int64, inningsNumber int) (*models.Innings, error) {
	if battingTeamID == bowlingTeamID {
		return nil, NewValidationError("batting and bowling team must differ")
	}
	if inningsNumber < 1 {
		return nil, NewValidationError("innings number must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, NewNotFoundError("match %d not found", matchID)
	}
	if match.Status != models.MatchStatusLive {
		return nil, NewStateConflictError("match %d must be live to start an innings", matchID)
	}
	if !match.HasTeam(battingTeamID) || !match.HasTeam(bowlingTeamID) {
		return nil, NewValidationError("both teams must be part of match %d", matchID)
	}

	existing, err := uow.InningsRepository().GetByMatchAndNumber(ctx, matchID, inningsNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing innings: %w", err)
	}
	if existing != nil {
		return nil, NewStateConflictError("innings %d already exists for match %d", inningsNumber, matchID)
	}

	innings := &models.Innings{
		MatchID:       matchID,
		BattingTeamID: battingTeamID,
		BowlingTeamID: bowlingTeamID,
		InningsNumber: inningsNumber,
		Status:        models.InningsStatusOngoing,
	}
	if err := uow.InningsRepository().Create(ctx, innings); err != nil {
		return nil, fmt.Errorf("failed to create innings: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return innings, nil
}

// EndInnings completes an ongoing innings. The final aggregate is pushed to
// the match score once more on close, the same rollup the scoring engine runs
// per delivery.
func (s *lifecycleService) EndInnings(ctx context.Context, inningsID int64) (*models.Innings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByIDForUpdate(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}
	if innings.Status != models.InningsStatusOngoing {
		return nil, NewStateConflictError("innings %d must be ongoing to end it", inningsID)
	}

	match, err := uow.MatchRepository().GetByID(ctx, innings.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, NewIntegrityError(fmt.Sprintf("match %d referenced by innings %d is missing", innings.MatchID, inningsID), nil)
	}

	innings.Status = models.InningsStatusCompleted
	if err := uow.InningsRepository().Update(ctx, innings); err != nil {
		return nil, fmt.Errorf("failed to update innings: %w", err)
	}

	match.ApplyInningsScore(innings)
	if err := uow.MatchRepository().UpdateScore(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to roll up match score: %w", err)
	}

	// Batsmen who batted and were never dismissed finish not out; that
	// feeds the career batting average alongside innings batted
	batsmen, err := uow.BatsmanInningsRepository().ListByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batsmen: %w", err)
	}
	for _, batsman := range batsmen {
		if batsman.Status == models.BatsmanStatusYetToBat || batsman.IsOut {
			continue
		}
		stat, err := uow.PlayerStatisticRepository().GetOrCreateForUpdate(ctx, batsman.PlayerID, match.MatchType)
		if err != nil {
			return nil, fmt.Errorf("failed to load batting statistic: %w", err)
		}
		stat.NotOuts++
		stat.RecalculateRates()
		if err := uow.PlayerStatisticRepository().Update(ctx, stat); err != nil {
			return nil, fmt.Errorf("failed to update batting statistic: %w", err)
		}
	}

	uow.EventBus().Publish(events.InningsCompletedEvent{
		InningsID:     innings.ID,
		MatchID:       match.ID,
		InningsNumber: innings.InningsNumber,
		TotalRuns:     innings.TotalRuns,
		TotalWickets:  innings.TotalWickets,
		TotalOvers:    innings.TotalOvers,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return innings, nil
}

func (s *lifecycleService) AddBatsmen(ctx context.Context, inningsID int64, entries []BatsmanEntry) ([]*models.BatsmanInnings, error) {
	if len(entries) == 0 {
		return nil, NewValidationError("at least one batsman is required")
	}
	for _, entry := range entries {
		if entry.BattingPosition < 1 {
			return nil, NewValidationError("batting position must be positive")
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByIDForUpdate(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}
	if innings.Status != models.InningsStatusOngoing {
		return nil, NewStateConflictError("innings %d must be ongoing to add batsmen", inningsID)
	}

	added := make([]*models.BatsmanInnings, 0, len(entries))
	for _, entry := range entries {
		existing, err := uow.BatsmanInningsRepository().GetByInningsAndPlayer(ctx, inningsID, entry.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing batsman: %w", err)
		}
		if existing != nil {
			return nil, NewStateConflictError("player %d already bats in innings %d", entry.PlayerID, inningsID)
		}

		taken, err := uow.BatsmanInningsRepository().GetByInningsAndPosition(ctx, inningsID, entry.BattingPosition)
		if err != nil {
			return nil, fmt.Errorf("failed to check batting position: %w", err)
		}
		if taken != nil {
			return nil, NewStateConflictError("batting position %d is already taken in innings %d", entry.BattingPosition, inningsID)
		}

		batsman := &models.BatsmanInnings{
			InningsID:       inningsID,
			PlayerID:        entry.PlayerID,
			BattingPosition: entry.BattingPosition,
			Status:          models.BatsmanStatusYetToBat,
		}
		if err := uow.BatsmanInningsRepository().Create(ctx, batsman); err != nil {
			return nil, fmt.Errorf("failed to create batsman row: %w", err)
		}
		added = append(added, batsman)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *lifecycleService) AddBowlers(ctx context.Context, inningsID int64, playerIDs []int64) ([]*models.BowlerInnings, error) {
	if len(playerIDs) == 0 {
		return nil, NewValidationError("at least one bowler is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByIDForUpdate(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}
	if innings.Status != models.InningsStatusOngoing {
		return nil, NewStateConflictError("innings %d must be ongoing to add bowlers", inningsID)
	}

	added := make([]*models.BowlerInnings, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		existing, err := uow.BowlerInningsRepository().GetByInningsAndPlayer(ctx, inningsID, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing bowler: %w", err)
		}
		if existing != nil {
			continue
		}

		bowler := &models.BowlerInnings{
			InningsID: inningsID,
			PlayerID:  playerID,
		}
		if err := uow.BowlerInningsRepository().Create(ctx, bowler); err != nil {
			return nil, fmt.Errorf("failed to create bowler row: %w", err)
		}
		added = append(added, bowler)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *lifecycleService) UpdateBatsmanStatus(ctx context.Context, batsmanInningsID int64, status models.BatsmanStatus) (*models.BatsmanInnings, error) {
	switch status {
	case models.BatsmanStatusYetToBat, models.BatsmanStatusBatting,
		models.BatsmanStatusOut, models.BatsmanStatusRetiredHurt, models.BatsmanStatusRetiredNotOut:
	default:
		return nil, NewValidationError("unknown batsman status %q", status)
	}

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

	innings, err := uow.InningsRepository().GetByID(ctx, batsman.InningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get innings: %w", err)
	}
	if innings == nil || innings.Status != models.InningsStatusOngoing {
		return nil, NewStateConflictError("innings %d must be ongoing to update batsman status", batsman.InningsID)
	}

	batsman.Status = status
	switch status {
	case models.BatsmanStatusOut, models.BatsmanStatusRetiredHurt:
		batsman.IsOut = true
	case models.BatsmanStatusRetiredNotOut:
		batsman.IsOut = false
	}

	if err := uow.BatsmanInningsRepository().Update(ctx, batsman); err != nil {
		return nil, fmt.Errorf("failed to update batsman status: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return batsman, nil
}
