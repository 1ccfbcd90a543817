package models

import (
	"encoding/json"
	"time"
)

// Wicket types. Bowled, lbw, caught, hit wicket and stumped are credited to
// the bowler; run outs never are.
const (
	WicketTypeBowled    = "bowled"
	WicketTypeLBW       = "lbw"
	WicketTypeCaught    = "caught"
	WicketTypeHitWicket = "hit wicket"
	WicketTypeStumped   = "stumped"
	WicketTypeRunOut    = "run out"
)

// BowlerCreditedWicket reports whether a dismissal of the given type counts
// toward the bowler's wickets
func BowlerCreditedWicket(wicketType string) bool {
	switch wicketType {
	case WicketTypeBowled, WicketTypeLBW, WicketTypeCaught, WicketTypeHitWicket, WicketTypeStumped:
		return true
	}
	return false
}

// Ball is one immutable delivery event in an innings. Balls are append-only;
// the ball log is the source of truth from which partnerships are rebuilt.
type Ball struct {
	ID                int64           `db:"id"`
	InningsID         int64           `db:"innings_id"`
	BowlerID          int64           `db:"bowler_id"`
	BatsmanID         int64           `db:"batsman_id"`
	NonStrikerID      int64           `db:"non_striker_id"`
	OverNumber        int             `db:"over_number"`
	BallNumber        int             `db:"ball_number"`
	RunsScored        int             `db:"runs_scored"`
	IsWide            bool            `db:"is_wide"`
	IsNoBall          bool            `db:"is_no_ball"`
	IsBye             bool            `db:"is_bye"`
	IsLegBye          bool            `db:"is_leg_bye"`
	IsWicket          bool            `db:"is_wicket"`
	WicketType        *string         `db:"wicket_type"`
	WicketPlayerOutID *int64          `db:"wicket_player_out_id"`
	WicketFielderID   *int64          `db:"wicket_fielder_id"`
	Commentary        *string         `db:"commentary"`
	WagonWheelData    json.RawMessage `db:"wagon_wheel_data"`
	CreatedAt         time.Time       `db:"created_at"`
}

// IsLegal reports whether the delivery counts toward the over (wides and
// no-balls are re-bowled and never advance the over counter)
func (b *Ball) IsLegal() bool {
	return !b.IsWide && !b.IsNoBall
}

// InningsRuns returns the runs credited to the innings for this delivery:
// all runs on the ball plus the mandatory one-run penalty for a wide or
// no-ball
func (b *Ball) InningsRuns() int {
	runs := b.RunsScored
	if b.IsWide || b.IsNoBall {
		runs++
	}
	return runs
}
