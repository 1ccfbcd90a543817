package models

import "time"

// PlayerStatistic holds a player's cumulative career figures in one format.
// It accumulates incrementally with every delivery that involves the player;
// it is never rebuilt from scratch on the scoring path.
type PlayerStatistic struct {
	ID                 int64     `db:"id"`
	PlayerID           int64     `db:"player_id"`
	Format             string    `db:"format"` // T20, ODI, Test
	MatchesBatted      int       `db:"matches_batted"`
	InningsBatted      int       `db:"innings_batted"`
	RunsScored         int       `db:"runs_scored"`
	BallsFaced         int       `db:"balls_faced"`
	NotOuts            int       `db:"not_outs"`
	HighestScore       int       `db:"highest_score"`
	BattingAverage     float64   `db:"batting_average"`
	BattingStrikeRate  float64   `db:"batting_strike_rate"`
	Fifties            int       `db:"fifties"`
	Hundreds           int       `db:"hundreds"`
	Fours              int       `db:"fours"`
	Sixes              int       `db:"sixes"`
	MatchesBowled      int       `db:"matches_bowled"`
	InningsBowled      int       `db:"innings_bowled"`
	OversBowled        float64   `db:"overs_bowled"`
	RunsConceded       int       `db:"runs_conceded"`
	WicketsTaken       int       `db:"wickets_taken"`
	BestBowlingFigures *string   `db:"best_bowling_figures"`
	BowlingAverage     float64   `db:"bowling_average"`
	EconomyRate        float64   `db:"economy_rate"`
	BowlingStrikeRate  float64   `db:"bowling_strike_rate"`
	FourWickets        int       `db:"four_wickets"`
	FiveWickets        int       `db:"five_wickets"`
	Catches            int       `db:"catches"`
	Stumpings          int       `db:"stumpings"`
	RunOuts            int       `db:"run_outs"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// RecalculateRates refreshes the derived rate fields from the raw counters
func (s *PlayerStatistic) RecalculateRates() {
	if s.BallsFaced > 0 {
		s.BattingStrikeRate = float64(s.RunsScored) / float64(s.BallsFaced) * 100
	}
	dismissals := s.InningsBatted - s.NotOuts
	if dismissals > 0 {
		s.BattingAverage = float64(s.RunsScored) / float64(dismissals)
	}
	ballsBowled := OversToBalls(s.OversBowled)
	if ballsBowled > 0 {
		s.EconomyRate = float64(s.RunsConceded) / (float64(ballsBowled) / BallsPerOver)
	}
	if s.WicketsTaken > 0 {
		s.BowlingAverage = float64(s.RunsConceded) / float64(s.WicketsTaken)
		s.BowlingStrikeRate = float64(ballsBowled) / float64(s.WicketsTaken)
	}
}
