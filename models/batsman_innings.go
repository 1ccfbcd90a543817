package models

import (
	"encoding/json"
	"time"
)

// BatsmanStatus represents a batsman's state within an innings
type BatsmanStatus string

const (
	BatsmanStatusYetToBat      BatsmanStatus = "yet_to_bat"
	BatsmanStatusBatting       BatsmanStatus = "batting"
	BatsmanStatusOut           BatsmanStatus = "out"
	BatsmanStatusRetiredHurt   BatsmanStatus = "retired_hurt"
	BatsmanStatusRetiredNotOut BatsmanStatus = "retired_not_out"
)

// BatsmanInnings tracks one batsman's figures within a single innings
type BatsmanInnings struct {
	ID              int64             `db:"id"`
	InningsID       int64             `db:"innings_id"`
	PlayerID        int64             `db:"player_id"`
	RunsScored      int               `db:"runs_scored"`
	BallsFaced      int               `db:"balls_faced"`
	Fours           int               `db:"fours"`
	Sixes           int               `db:"sixes"`
	DismissalType   *string           `db:"dismissal_type"`
	BowlerID        *int64            `db:"bowler_id"`
	FielderID       *int64            `db:"fielder_id"`
	BattingPosition int               `db:"batting_position"`
	IsOut           bool              `db:"is_out"`
	Status          BatsmanStatus     `db:"status"`
	WagonWheelData  []json.RawMessage `db:"wagon_wheel_data"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// StrikeRate returns runs per hundred balls faced
func (b *BatsmanInnings) StrikeRate() float64 {
	if b.BallsFaced == 0 {
		return 0
	}
	return float64(b.RunsScored) / float64(b.BallsFaced) * 100
}
