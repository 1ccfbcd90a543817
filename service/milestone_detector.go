package service

import (
	"context"
	"fmt"
	"time"

	"cricscore/events"
	"cricscore/models"
)

// Career thresholds that produce a milestone when crossed
var (
	careerRunMilestones      = []int{1000, 5000, 10000}
	careerWicketMilestones   = []int{100, 200, 300, 400, 500}
	careerFieldingMilestones = []int{100, 200, 300}
)

// BattingDelta is the effect one delivery had on the striker's figures.
// FirstDelivery marks the striker's first ball of the innings, which opens a
// new career innings-batted entry.
type BattingDelta struct {
	Runs             int
	BallsFaced       int
	Fours            int
	Sixes            int
	InningsRunsAfter int
	FirstDelivery    bool
}

// BowlingDelta is the effect one delivery had on the bowler's figures
type BowlingDelta struct {
	LegalBalls          int
	RunsConceded        int
	Wides               int
	NoBalls             int
	Wickets             int
	InningsWicketsAfter int
}

// MilestoneDetector updates career statistics after a delivery and records
// threshold crossings exactly once. It always consults existing milestone
// rows before emitting, so re-processing a delivery never double-fires.
type MilestoneDetector struct{}

// NewMilestoneDetector creates a new milestone detector
func NewMilestoneDetector() *MilestoneDetector {
	return &MilestoneDetector{}
}

// CheckBatsman updates the batsman's career statistic and records any batting
// milestones crossed by this delivery
func (d *MilestoneDetector) CheckBatsman(ctx context.Context, uow UnitOfWork, playerID int64, match *models.Match, delta BattingDelta) error {
	stat, err := uow.PlayerStatisticRepository().GetOrCreateForUpdate(ctx, playerID, match.MatchType)
	if err != nil {
		return fmt.Errorf("failed to load batting statistic: %w", err)
	}

	runsBefore := stat.RunsScored
	if delta.FirstDelivery {
		stat.InningsBatted++
	}
	stat.RunsScored += delta.Runs
	stat.BallsFaced += delta.BallsFaced
	stat.Fours += delta.Fours
	stat.Sixes += delta.Sixes
	if delta.InningsRunsAfter > stat.HighestScore {
		stat.HighestScore = delta.InningsRunsAfter
	}

	inningsBefore := delta.InningsRunsAfter - delta.Runs
	if inningsBefore < 50 && delta.InningsRunsAfter >= 50 && delta.InningsRunsAfter < 100 {
		created, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeFifty, 50,
			fmt.Sprintf("Scored %d runs", delta.InningsRunsAfter))
		if err != nil {
			return err
		}
		if created {
			stat.Fifties++
		}
	}
	if inningsBefore < 100 && delta.InningsRunsAfter >= 100 {
		created, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeHundred, 100,
			fmt.Sprintf("Scored %d runs", delta.InningsRunsAfter))
		if err != nil {
			return err
		}
		if created {
			stat.Hundreds++
		}
	}

	for _, threshold := range careerRunMilestones {
		if runsBefore < threshold && stat.RunsScored >= threshold {
			if _, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeRuns, threshold,
				fmt.Sprintf("Reached %d runs in %s", threshold, match.MatchType)); err != nil {
				return err
			}
		}
	}

	stat.RecalculateRates()
	if err := uow.PlayerStatisticRepository().Update(ctx, stat); err != nil {
		return fmt.Errorf("failed to update batting statistic: %w", err)
	}
	return nil
}

// CheckBowler updates the bowler's career statistic and records any bowling
// milestones crossed by this delivery
func (d *MilestoneDetector) CheckBowler(ctx context.Context, uow UnitOfWork, playerID int64, match *models.Match, delta BowlingDelta) error {
	stat, err := uow.PlayerStatisticRepository().GetOrCreateForUpdate(ctx, playerID, match.MatchType)
	if err != nil {
		return fmt.Errorf("failed to load bowling statistic: %w", err)
	}

	wicketsBefore := stat.WicketsTaken
	stat.OversBowled = models.BallsToOvers(models.OversToBalls(stat.OversBowled) + delta.LegalBalls)
	stat.RunsConceded += delta.RunsConceded
	stat.WicketsTaken += delta.Wickets

	inningsBefore := delta.InningsWicketsAfter - delta.Wickets
	if inningsBefore < 4 && delta.InningsWicketsAfter == 4 {
		created, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeFourWickets, 4,
			fmt.Sprintf("Took %d wickets", delta.InningsWicketsAfter))
		if err != nil {
			return err
		}
		if created {
			stat.FourWickets++
		}
	}
	if inningsBefore < 5 && delta.InningsWicketsAfter >= 5 {
		created, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeFiveWickets, 5,
			fmt.Sprintf("Took %d wickets", delta.InningsWicketsAfter))
		if err != nil {
			return err
		}
		if created {
			stat.FiveWickets++
		}
	}

	for _, threshold := range careerWicketMilestones {
		if wicketsBefore < threshold && stat.WicketsTaken >= threshold {
			if _, err := d.record(ctx, uow, playerID, match, models.MilestoneTypeWickets, threshold,
				fmt.Sprintf("Reached %d wickets in %s", threshold, match.MatchType)); err != nil {
				return err
			}
		}
	}

	stat.RecalculateRates()
	if err := uow.PlayerStatisticRepository().Update(ctx, stat); err != nil {
		return fmt.Errorf("failed to update bowling statistic: %w", err)
	}
	return nil
}

// CheckFielder updates the fielder's dismissal counters and records fielding
// milestones crossed by this dismissal
func (d *MilestoneDetector) CheckFielder(ctx context.Context, uow UnitOfWork, playerID int64, match *models.Match, wicketType string) error {
	var milestoneType models.MilestoneType
	switch wicketType {
	case models.WicketTypeCaught:
		milestoneType = models.MilestoneTypeCatches
	case models.WicketTypeStumped:
		milestoneType = models.MilestoneTypeStumpings
	case models.WicketTypeRunOut:
		milestoneType = models.MilestoneTypeRunOuts
	default:
		return nil
	}

	stat, err := uow.PlayerStatisticRepository().GetOrCreateForUpdate(ctx, playerID, match.MatchType)
	if err != nil {
		return fmt.Errorf("failed to load fielding statistic: %w", err)
	}

	var before, after int
	switch milestoneType {
	case models.MilestoneTypeCatches:
		before = stat.Catches
		stat.Catches++
		after = stat.Catches
	case models.MilestoneTypeStumpings:
		before = stat.Stumpings
		stat.Stumpings++
		after = stat.Stumpings
	case models.MilestoneTypeRunOuts:
		before = stat.RunOuts
		stat.RunOuts++
		after = stat.RunOuts
	}

	for _, threshold := range careerFieldingMilestones {
		if before < threshold && after >= threshold {
			if _, err := d.record(ctx, uow, playerID, match, milestoneType, threshold,
				fmt.Sprintf("Reached %d %s in %s", threshold, milestoneType, match.MatchType)); err != nil {
				return err
			}
		}
	}

	if err := uow.PlayerStatisticRepository().Update(ctx, stat); err != nil {
		return fmt.Errorf("failed to update fielding statistic: %w", err)
	}
	return nil
}

// record creates a milestone unless an identical one already exists for this
// player, type, value and match. Returns whether a new row was created.
func (d *MilestoneDetector) record(ctx context.Context, uow UnitOfWork, playerID int64, match *models.Match, milestoneType models.MilestoneType, value int, description string) (bool, error) {
	exists, err := uow.PlayerMilestoneRepository().Exists(ctx, playerID, milestoneType, value, match.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing milestone: %w", err)
	}
	if exists {
		return false, nil
	}

	achievedAt := time.Now().UTC()
	milestone := &models.PlayerMilestone{
		PlayerID:       playerID,
		MilestoneType:  milestoneType,
		MilestoneValue: value,
		MatchID:        &match.ID,
		AchievedAt:     achievedAt,
		Description:    &description,
	}
	if err := uow.PlayerMilestoneRepository().Create(ctx, milestone); err != nil {
		return false, fmt.Errorf("failed to create milestone: %w", err)
	}

	uow.EventBus().Publish(events.MilestoneAchievedEvent{
		PlayerID:       playerID,
		MatchID:        match.ID,
		MilestoneType:  milestoneType,
		MilestoneValue: value,
		AchievedAt:     achievedAt,
	})
	return true, nil
}
