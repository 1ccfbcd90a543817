package service

import (
	"cricscore/models"
)

// DeliveryContext bundles the current state rows a delivery is checked
// against. Nil row pointers mean the participant has no row in this innings.
type DeliveryContext struct {
	Match      *models.Match
	Innings    *models.Innings
	Striker    *models.BatsmanInnings
	NonStriker *models.BatsmanInnings
	Bowler     *models.BowlerInnings
	PlayerOut  *models.BatsmanInnings // row of the nominated dismissed player, if any
}

// ResolvePlayerOutID determines which batsman a wicket dismisses. Bowler-
// credited dismissals default to the striker; a run out must nominate either
// the striker or the non-striker explicitly.
func ResolvePlayerOutID(input *DeliveryInput) (int64, error) {
	if !input.IsWicket {
		return 0, nil
	}
	if models.BowlerCreditedWicket(input.WicketType) {
		if input.PlayerOutID != nil {
			return *input.PlayerOutID, nil
		}
		return input.StrikerID, nil
	}
	if input.WicketType == models.WicketTypeRunOut {
		if input.PlayerOutID == nil {
			return 0, NewValidationError("run out requires the dismissed player to be nominated")
		}
		if *input.PlayerOutID != input.StrikerID && *input.PlayerOutID != input.NonStrikerID {
			return 0, NewValidationError("dismissed player %d is neither the striker nor the non-striker", *input.PlayerOutID)
		}
		return *input.PlayerOutID, nil
	}
	return 0, NewValidationError("unknown wicket type %q", input.WicketType)
}

// ValidateDelivery checks a proposed delivery against current state. It is a
// pure check with no side effects; the caller never applies a delivery that
// fails here.
func ValidateDelivery(input *DeliveryInput, state *DeliveryContext) error {
	if input.OverNumber < 0 {
		return NewValidationError("over number must not be negative")
	}
	if input.BallNumber < 1 || input.BallNumber > models.BallsPerOver {
		return NewValidationError("ball number must be between 1 and %d", models.BallsPerOver)
	}
	if input.RunsScored < 0 {
		return NewValidationError("runs scored must not be negative")
	}
	if input.IsWide && input.IsNoBall {
		return NewValidationError("a delivery cannot be both a wide and a no-ball")
	}
	if input.StrikerID == input.NonStrikerID {
		return NewValidationError("striker and non-striker must be different players")
	}

	if state.Match.Status != models.MatchStatusLive {
		return NewStateConflictError("match %d is not live", state.Match.ID)
	}
	if state.Innings.Status != models.InningsStatusOngoing {
		return NewStateConflictError("innings %d is not ongoing", state.Innings.ID)
	}

	if state.Striker == nil {
		return NewNotFoundError("striker %d has no batsman row in innings %d", input.StrikerID, input.InningsID)
	}
	if state.NonStriker == nil {
		return NewNotFoundError("non-striker %d has no batsman row in innings %d", input.NonStrikerID, input.InningsID)
	}
	if state.Striker.IsOut {
		return NewStateConflictError("striker %d is already out", input.StrikerID)
	}
	if state.NonStriker.IsOut {
		return NewStateConflictError("non-striker %d is already out", input.NonStrikerID)
	}
	if state.Bowler == nil {
		return NewNotFoundError("bowler %d has no bowler row in innings %d", input.BowlerID, input.InningsID)
	}

	if input.IsWicket {
		if input.WicketType == "" {
			return NewValidationError("wicket type is required when a wicket falls")
		}
		if _, err := ResolvePlayerOutID(input); err != nil {
			return err
		}
		if state.PlayerOut == nil {
			return NewNotFoundError("dismissed player has no batsman row in innings %d", input.InningsID)
		}
		if state.PlayerOut.IsOut {
			return NewStateConflictError("dismissed player %d is already out", state.PlayerOut.PlayerID)
		}
		if state.Innings.TotalWickets >= models.MaxWicketsPerInnings {
			return NewStateConflictError("innings %d has no wickets remaining", state.Innings.ID)
		}
	}

	return nil
}
