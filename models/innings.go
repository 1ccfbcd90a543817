package models

import "time"

// InningsStatus represents the lifecycle state of an innings
type InningsStatus string

const (
	InningsStatusUpcoming  InningsStatus = "upcoming"
	InningsStatusOngoing   InningsStatus = "ongoing"
	InningsStatusCompleted InningsStatus = "completed"
)

// MaxWicketsPerInnings is the number of wickets that ends an innings
const MaxWicketsPerInnings = 10

// Innings represents one team's batting turn within a match
type Innings struct {
	ID            int64         `db:"id"`
	MatchID       int64         `db:"match_id"`
	BattingTeamID int64         `db:"batting_team_id"`
	BowlingTeamID int64         `db:"bowling_team_id"`
	InningsNumber int           `db:"innings_number"`
	TotalRuns     int           `db:"total_runs"`
	TotalWickets  int           `db:"total_wickets"`
	TotalOvers    float64       `db:"total_overs"`
	Extras        int           `db:"extras"`
	Byes          int           `db:"byes"`
	LegByes       int           `db:"leg_byes"`
	Wides         int           `db:"wides"`
	NoBalls       int           `db:"no_balls"`
	PenaltyRuns   int           `db:"penalty_runs"`
	Status        InningsStatus `db:"status"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}
