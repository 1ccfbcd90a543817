package service

import (
	"context"
	"fmt"

	"cricscore/events"
	"cricscore/models"
	log "github.com/sirupsen/logrus"
)

type scoringService struct {
	uowFactory UnitOfWorkFactory
	detector   *MilestoneDetector
}

// NewScoringService creates a new scoring service
func NewScoringService(uowFactory UnitOfWorkFactory) ScoringService {
	return &scoringService{
		uowFactory: uowFactory,
		detector:   NewMilestoneDetector(),
	}
}

// RecordDelivery applies one delivery atomically: ball append, batsman and
// bowler updates, innings aggregate, match rollup and milestone detection all
// commit or roll back together. The innings row lock taken up front
// serializes concurrent deliveries for the same innings.
func (s *scoringService) RecordDelivery(ctx context.Context, input *DeliveryInput) (*DeliveryResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	innings, err := uow.InningsRepository().GetByIDForUpdate(ctx, input.InningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", input.InningsID)
	}

	match, err := uow.MatchRepository().GetByID(ctx, innings.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, NewIntegrityError(fmt.Sprintf("match %d referenced by innings %d is missing", innings.MatchID, innings.ID), nil)
	}

	striker, err := uow.BatsmanInningsRepository().GetByInningsAndPlayer(ctx, input.InningsID, input.StrikerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get striker: %w", err)
	}
	nonStriker, err := uow.BatsmanInningsRepository().GetByInningsAndPlayer(ctx, input.InningsID, input.NonStrikerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get non-striker: %w", err)
	}
	bowler, err := uow.BowlerInningsRepository().GetByInningsAndPlayer(ctx, input.InningsID, input.BowlerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bowler: %w", err)
	}

	var playerOut *models.BatsmanInnings
	if input.IsWicket {
		playerOutID, resolveErr := ResolvePlayerOutID(input)
		if resolveErr == nil {
			switch playerOutID {
			case input.StrikerID:
				playerOut = striker
			case input.NonStrikerID:
				playerOut = nonStriker
			default:
				playerOut, err = uow.BatsmanInningsRepository().GetByInningsAndPlayer(ctx, input.InningsID, playerOutID)
				if err != nil {
					return nil, fmt.Errorf("failed to get dismissed player: %w", err)
				}
			}
		}
	}

	state := &DeliveryContext{
		Match:      match,
		Innings:    innings,
		Striker:    striker,
		NonStriker: nonStriker,
		Bowler:     bowler,
		PlayerOut:  playerOut,
	}
	if err := ValidateDelivery(input, state); err != nil {
		return nil, err
	}

	ball := buildBall(input)
	if err := uow.BallRepository().Create(ctx, ball); err != nil {
		return nil, fmt.Errorf("failed to record ball: %w", err)
	}

	battingDelta := applyToStriker(striker, input)
	if input.IsWicket {
		applyWicket(playerOut, innings, input)
	}
	bowlingDelta := applyToBowler(bowler, input)
	applyToInnings(innings, input)

	if err := uow.BatsmanInningsRepository().Update(ctx, striker); err != nil {
		return nil, fmt.Errorf("failed to update striker: %w", err)
	}
	if input.IsWicket && playerOut != striker {
		if err := uow.BatsmanInningsRepository().Update(ctx, playerOut); err != nil {
			return nil, fmt.Errorf("failed to update dismissed player: %w", err)
		}
	}
	if err := uow.BowlerInningsRepository().Update(ctx, bowler); err != nil {
		return nil, fmt.Errorf("failed to update bowler: %w", err)
	}
	if err := uow.InningsRepository().Update(ctx, innings); err != nil {
		return nil, fmt.Errorf("failed to update innings: %w", err)
	}

	match.ApplyInningsScore(innings)
	if err := uow.MatchRepository().UpdateScore(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match score: %w", err)
	}

	// Milestone failures never abort an applied scoring update; they are
	// logged and reconciled separately. The savepoint keeps a failed
	// detector statement from leaving the transaction aborted, which would
	// otherwise take the scoring writes down with it at commit.
	if err := uow.WithSavepoint(ctx, func() error {
		return s.detectMilestones(ctx, uow, match, input, battingDelta, bowlingDelta)
	}); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"inningsID": input.InningsID,
			"matchID":   match.ID,
		}).Warn("Milestone detection failed; scoring update kept")
	}

	uow.EventBus().Publish(events.BallRecordedEvent{Ball: ball, Innings: innings, Match: match})
	if input.IsWicket {
		uow.EventBus().Publish(events.WicketFallenEvent{
			InningsID:    innings.ID,
			MatchID:      match.ID,
			PlayerOutID:  playerOut.PlayerID,
			BowlerID:     input.BowlerID,
			WicketType:   input.WicketType,
			TotalWickets: innings.TotalWickets,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &DeliveryResult{Ball: ball, Innings: innings, Match: match}, nil
}

func (s *scoringService) detectMilestones(ctx context.Context, uow UnitOfWork, match *models.Match, input *DeliveryInput, battingDelta BattingDelta, bowlingDelta BowlingDelta) error {
	if err := s.detector.CheckBatsman(ctx, uow, input.StrikerID, match, battingDelta); err != nil {
		return err
	}
	if err := s.detector.CheckBowler(ctx, uow, input.BowlerID, match, bowlingDelta); err != nil {
		return err
	}
	if input.IsWicket && input.FielderID != nil {
		if err := s.detector.CheckFielder(ctx, uow, *input.FielderID, match, input.WicketType); err != nil {
			return err
		}
	}
	return nil
}

// buildBall constructs the immutable ball record from a validated delivery
func buildBall(input *DeliveryInput) *models.Ball {
	ball := &models.Ball{
		InningsID:       input.InningsID,
		BowlerID:        input.BowlerID,
		BatsmanID:       input.StrikerID,
		NonStrikerID:    input.NonStrikerID,
		OverNumber:      input.OverNumber,
		BallNumber:      input.BallNumber,
		RunsScored:      input.RunsScored,
		IsWide:          input.IsWide,
		IsNoBall:        input.IsNoBall,
		IsBye:           input.IsBye,
		IsLegBye:        input.IsLegBye,
		IsWicket:        input.IsWicket,
		WicketFielderID: input.FielderID,
		WagonWheelData:  input.WagonWheelData,
	}
	if input.IsWicket {
		wicketType := input.WicketType
		ball.WicketType = &wicketType
		if playerOutID, err := ResolvePlayerOutID(input); err == nil {
			ball.WicketPlayerOutID = &playerOutID
		}
	}
	if input.Commentary != "" {
		commentary := input.Commentary
		ball.Commentary = &commentary
	}
	return ball
}

// applyToStriker folds one delivery into the striker's figures. Wides, byes
// and leg byes touch neither the ball-faced count nor the run and boundary
// tallies; runs off a no-ball are still credited to the batsman.
func applyToStriker(striker *models.BatsmanInnings, input *DeliveryInput) BattingDelta {
	var delta BattingDelta

	if striker.Status == models.BatsmanStatusYetToBat {
		striker.Status = models.BatsmanStatusBatting
		delta.FirstDelivery = true
	}

	if !input.IsWide && !input.IsBye && !input.IsLegBye {
		striker.RunsScored += input.RunsScored
		striker.BallsFaced++
		delta.Runs = input.RunsScored
		delta.BallsFaced = 1

		if input.RunsScored == 4 {
			striker.Fours++
			delta.Fours = 1
		} else if input.RunsScored == 6 {
			striker.Sixes++
			delta.Sixes = 1
		}
	}

	if len(input.WagonWheelData) > 0 {
		striker.WagonWheelData = append(striker.WagonWheelData, input.WagonWheelData)
	}

	delta.InningsRunsAfter = striker.RunsScored
	return delta
}

// applyWicket marks the dismissed batsman out and counts the wicket against
// the innings
func applyWicket(playerOut *models.BatsmanInnings, innings *models.Innings, input *DeliveryInput) {
	wicketType := input.WicketType
	bowlerID := input.BowlerID

	playerOut.IsOut = true
	playerOut.Status = models.BatsmanStatusOut
	playerOut.DismissalType = &wicketType
	playerOut.BowlerID = &bowlerID
	playerOut.FielderID = input.FielderID

	innings.TotalWickets++
}

// applyToBowler folds one delivery into the bowler's figures. Only legal
// deliveries advance the over counter; the wide/no-ball penalty run and all
// runs taken on the delivery count against the bowler.
func applyToBowler(bowler *models.BowlerInnings, input *DeliveryInput) BowlingDelta {
	var delta BowlingDelta

	if !input.IsWide && !input.IsNoBall {
		bowler.Overs = models.AddLegalBall(bowler.Overs)
		delta.LegalBalls = 1
	}

	switch {
	case input.IsWide:
		bowler.Wides++
		delta.Wides = 1
		delta.RunsConceded = 1 + input.RunsScored
	case input.IsNoBall:
		bowler.NoBalls++
		delta.NoBalls = 1
		delta.RunsConceded = 1 + input.RunsScored
	default:
		delta.RunsConceded = input.RunsScored
	}
	bowler.RunsConceded += delta.RunsConceded

	if input.IsWicket && models.BowlerCreditedWicket(input.WicketType) {
		bowler.Wickets++
		delta.Wickets = 1
	}

	delta.InningsWicketsAfter = bowler.Wickets
	return delta
}

// applyToInnings folds one delivery into the innings aggregate. The over
// counter only moves forward when the delivery's position is ahead of the
// recorded one, so an out-of-order or duplicate submission cannot re-advance
// it.
func applyToInnings(innings *models.Innings, input *DeliveryInput) {
	switch {
	case input.IsWide:
		innings.Wides++
		innings.Extras += 1 + input.RunsScored
		innings.TotalRuns += 1 + input.RunsScored
	case input.IsNoBall:
		innings.NoBalls++
		innings.Extras += 1 + input.RunsScored
		innings.TotalRuns += 1 + input.RunsScored
	case input.IsBye:
		innings.Byes += input.RunsScored
		innings.Extras += input.RunsScored
		innings.TotalRuns += input.RunsScored
	case input.IsLegBye:
		innings.LegByes += input.RunsScored
		innings.Extras += input.RunsScored
		innings.TotalRuns += input.RunsScored
	default:
		innings.TotalRuns += input.RunsScored
	}

	if !input.IsWide && !input.IsNoBall {
		if candidate := models.DeliveryOvers(input.OverNumber, input.BallNumber); candidate > innings.TotalOvers {
			innings.TotalOvers = candidate
		}
	}
}
