package models

import "time"

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusAbandoned MatchStatus = "abandoned"
)

// Match represents a cricket match between two teams
type Match struct {
	ID                int64       `db:"id"`
	TournamentID      *int64      `db:"tournament_id"`
	Team1ID           int64       `db:"team1_id"`
	Team2ID           int64       `db:"team2_id"`
	VenueID           *int64      `db:"venue_id"`
	ScheduledDate     time.Time   `db:"scheduled_date"`
	MatchType         string      `db:"match_type"` // T20, ODI, Test
	Status            MatchStatus `db:"status"`
	TossWinnerID      *int64      `db:"toss_winner_id"`
	TossDecision      *string     `db:"toss_decision"` // bat, bowl
	MatchWinnerID     *int64      `db:"match_winner_id"`
	ResultDescription *string     `db:"result_description"`
	Team1Score        int         `db:"team1_score"`
	Team1Wickets      int         `db:"team1_wickets"`
	Team1Overs        float64     `db:"team1_overs"`
	Team2Score        int         `db:"team2_score"`
	Team2Wickets      int         `db:"team2_wickets"`
	Team2Overs        float64     `db:"team2_overs"`
	ScorerID          *int64      `db:"scorer_id"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

// ApplyInningsScore mirrors an innings aggregate onto the score fields of
// whichever team is batting in that innings. Centralized so the invariant
// (match score equals the innings aggregate) has a single writer.
func (m *Match) ApplyInningsScore(innings *Innings) {
	if innings.BattingTeamID == m.Team1ID {
		m.Team1Score = innings.TotalRuns
		m.Team1Wickets = innings.TotalWickets
		m.Team1Overs = innings.TotalOvers
	} else {
		m.Team2Score = innings.TotalRuns
		m.Team2Wickets = innings.TotalWickets
		m.Team2Overs = innings.TotalOvers
	}
}

// HasTeam reports whether the given team plays in this match
func (m *Match) HasTeam(teamID int64) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
