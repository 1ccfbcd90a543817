package models

import "time"

// BowlerInnings tracks one bowler's figures within a single innings. Overs
// use the whole-overs-plus-tenths encoding (see overs.go).
type BowlerInnings struct {
	ID           int64     `db:"id"`
	InningsID    int64     `db:"innings_id"`
	PlayerID     int64     `db:"player_id"`
	Overs        float64   `db:"overs"`
	Maidens      int       `db:"maidens"`
	RunsConceded int       `db:"runs_conceded"`
	Wickets      int       `db:"wickets"`
	Wides        int       `db:"wides"`
	NoBalls      int       `db:"no_balls"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// EconomyRate returns runs conceded per over bowled
func (b *BowlerInnings) EconomyRate() float64 {
	balls := OversToBalls(b.Overs)
	if balls == 0 {
		return 0
	}
	return float64(b.RunsConceded) / (float64(balls) / BallsPerOver)
}
