package testutil

import (
	"time"

	"cricscore/models"
)

// CreateTestMatch creates a live T20 match between two teams
func CreateTestMatch(team1ID, team2ID int64) *models.Match {
	return &models.Match{
		Team1ID:       team1ID,
		Team2ID:       team2ID,
		ScheduledDate: time.Now(),
		MatchType:     "T20",
		Status:        models.MatchStatusLive,
	}
}

// CreateTestUpcomingMatch creates a match that has not started yet
func CreateTestUpcomingMatch(team1ID, team2ID int64) *models.Match {
	match := CreateTestMatch(team1ID, team2ID)
	match.Status = models.MatchStatusUpcoming
	return match
}

// CreateTestInnings creates an ongoing innings for a match
func CreateTestInnings(matchID, battingTeamID, bowlingTeamID int64, inningsNumber int) *models.Innings {
	return &models.Innings{
		MatchID:       matchID,
		BattingTeamID: battingTeamID,
		BowlingTeamID: bowlingTeamID,
		InningsNumber: inningsNumber,
		Status:        models.InningsStatusOngoing,
	}
}

// CreateTestBatsman creates a batsman row at the crease
func CreateTestBatsman(inningsID, playerID int64, position int) *models.BatsmanInnings {
	return &models.BatsmanInnings{
		InningsID:       inningsID,
		PlayerID:        playerID,
		BattingPosition: position,
		Status:          models.BatsmanStatusBatting,
	}
}

// CreateTestBowler creates a bowler row for an innings
func CreateTestBowler(inningsID, playerID int64) *models.BowlerInnings {
	return &models.BowlerInnings{
		InningsID: inningsID,
		PlayerID:  playerID,
	}
}

// CreateTestBall creates a legal delivery with the given runs
func CreateTestBall(inningsID, bowlerID, strikerID, nonStrikerID int64, over, ball, runs int) *models.Ball {
	return &models.Ball{
		InningsID:    inningsID,
		BowlerID:     bowlerID,
		BatsmanID:    strikerID,
		NonStrikerID: nonStrikerID,
		OverNumber:   over,
		BallNumber:   ball,
		RunsScored:   runs,
	}
}

// CreateTestWicketBall creates a delivery on which the striker was dismissed
func CreateTestWicketBall(inningsID, bowlerID, strikerID, nonStrikerID int64, over, ball int, wicketType string) *models.Ball {
	b := CreateTestBall(inningsID, bowlerID, strikerID, nonStrikerID, over, ball, 0)
	b.IsWicket = true
	b.WicketType = &wicketType
	b.WicketPlayerOutID = &strikerID
	return b
}

// CreateTestMilestone creates a milestone achieved in a match
func CreateTestMilestone(playerID int64, milestoneType models.MilestoneType, value int, matchID int64) *models.PlayerMilestone {
	return &models.PlayerMilestone{
		PlayerID:       playerID,
		MilestoneType:  milestoneType,
		MilestoneValue: value,
		MatchID:        &matchID,
		AchievedAt:     time.Now(),
	}
}
