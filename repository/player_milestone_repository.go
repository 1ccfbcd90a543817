package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// PlayerMilestoneRepository implements the service.PlayerMilestoneRepository
// interface. Milestones are append-only achievement records.
type PlayerMilestoneRepository struct {
	q queryable
}

// NewPlayerMilestoneRepository creates a new player milestone repository
func NewPlayerMilestoneRepository(db *database.DB) *PlayerMilestoneRepository {
	return &PlayerMilestoneRepository{q: db.Pool}
}

// newPlayerMilestoneRepositoryWithTx creates a new player milestone repository with a transaction
func newPlayerMilestoneRepositoryWithTx(tx queryable) *PlayerMilestoneRepository {
	return &PlayerMilestoneRepository{q: tx}
}

const playerMilestoneColumns = `
	id, player_id, milestone_type, milestone_value, match_id, achieved_at,
	description, created_at
`

func scanPlayerMilestone(row pgx.Row) (*models.PlayerMilestone, error) {
	var milestone models.PlayerMilestone
	err := row.Scan(
		&milestone.ID,
		&milestone.PlayerID,
		&milestone.MilestoneType,
		&milestone.MilestoneValue,
		&milestone.MatchID,
		&milestone.AchievedAt,
		&milestone.Description,
		&milestone.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// Create appends a milestone record
func (r *PlayerMilestoneRepository) Create(ctx context.Context, milestone *models.PlayerMilestone) error {
	query := `
		INSERT INTO player_milestones (player_id, milestone_type, milestone_value, match_id, achieved_at, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		milestone.PlayerID,
		milestone.MilestoneType,
		milestone.MilestoneValue,
		milestone.MatchID,
		milestone.AchievedAt,
		milestone.Description,
	).Scan(&milestone.ID, &milestone.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", translateError(err))
	}
	return nil
}

// Exists reports whether a milestone with the same player, type, value and
// match has already been recorded
func (r *PlayerMilestoneRepository) Exists(ctx context.Context, playerID int64, milestoneType models.MilestoneType, value int, matchID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM player_milestones
			WHERE player_id = $1 AND milestone_type = $2 AND milestone_value = $3 AND match_id = $4
		)
	`

	var exists bool
	err := r.q.QueryRow(ctx, query, playerID, milestoneType, value, matchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check milestone existence: %w", translateError(err))
	}
	return exists, nil
}

// ListByPlayer returns a player's milestones, newest first
func (r *PlayerMilestoneRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.PlayerMilestone, error) {
	query := `
		SELECT ` + playerMilestoneColumns + `
		FROM player_milestones
		WHERE player_id = $1
		ORDER BY achieved_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones for player %d: %w", playerID, translateError(err))
	}
	defer rows.Close()

	var result []*models.PlayerMilestone
	for rows.Next() {
		milestone, err := scanPlayerMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		result = append(result, milestone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestones: %w", translateError(err))
	}
	return result, nil
}
