package service

import (
	"context"
	"fmt"

	"cricscore/models"
)

type partnershipService struct {
	uowFactory UnitOfWorkFactory
}

// NewPartnershipService creates a new partnership service
func NewPartnershipService(uowFactory UnitOfWorkFactory) PartnershipService {
	return &partnershipService{uowFactory: uowFactory}
}

// GetPartnerships replays the innings' ball log in over/ball order and
// segments it into partnerships. The computation is derived and restartable;
// the ball log stays the only source of truth.
func (s *partnershipService) GetPartnerships(ctx context.Context, inningsID int64) ([]*models.Partnership, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	innings, err := uow.InningsRepository().GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get innings: %w", err)
	}
	if innings == nil {
		return nil, NewNotFoundError("innings %d not found", inningsID)
	}

	balls, err := uow.BallRepository().ListByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balls: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return ReconstructPartnerships(balls), nil
}

// ReconstructPartnerships segments an ordered ball log into partnerships. A
// new partnership begins whenever the unordered batsman pair changes, and the
// running one closes on any wicket. Runs accrue at delivery granularity and
// include the innings-credited extras; only legal deliveries count as balls
// faced.
func ReconstructPartnerships(balls []*models.Ball) []*models.Partnership {
	partnerships := make([]*models.Partnership, 0)
	var current *models.Partnership

	for _, ball := range balls {
		first, second := orderedPair(ball.BatsmanID, ball.NonStrikerID)

		if current == nil || current.Batsman1ID != first || current.Batsman2ID != second {
			if current != nil {
				partnerships = append(partnerships, current)
			}
			current = &models.Partnership{
				Batsman1ID: first,
				Batsman2ID: second,
			}
		}

		current.Runs += ball.InningsRuns()
		if ball.IsLegal() {
			current.Balls++
		}

		if ball.IsWicket {
			current.EndedBy = ball.WicketType
			partnerships = append(partnerships, current)
			current = nil
		}
	}

	if current != nil {
		partnerships = append(partnerships, current)
	}

	return partnerships
}

func orderedPair(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
