package models

import "time"

// MilestoneType identifies the statistical threshold a milestone records
type MilestoneType string

const (
	MilestoneTypeFifty       MilestoneType = "fifty"
	MilestoneTypeHundred     MilestoneType = "hundred"
	MilestoneTypeRuns        MilestoneType = "runs"
	MilestoneTypeFourWickets MilestoneType = "four_wickets"
	MilestoneTypeFiveWickets MilestoneType = "five_wickets"
	MilestoneTypeWickets     MilestoneType = "wickets"
	MilestoneTypeCatches     MilestoneType = "catches"
	MilestoneTypeStumpings   MilestoneType = "stumpings"
	MilestoneTypeRunOuts     MilestoneType = "run_outs"
)

// PlayerMilestone is an immutable achievement record, created exactly once
// per player, type, value and match
type PlayerMilestone struct {
	ID             int64         `db:"id"`
	PlayerID       int64         `db:"player_id"`
	MilestoneType  MilestoneType `db:"milestone_type"`
	MilestoneValue int           `db:"milestone_value"`
	MatchID        *int64        `db:"match_id"`
	AchievedAt     time.Time     `db:"achieved_at"`
	Description    *string       `db:"description"`
	CreatedAt      time.Time     `db:"created_at"`
}
