package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// BowlerInningsRepository implements the service.BowlerInningsRepository interface
type BowlerInningsRepository struct {
	q queryable
}

// NewBowlerInningsRepository creates a new bowler innings repository
func NewBowlerInningsRepository(db *database.DB) *BowlerInningsRepository {
	return &BowlerInningsRepository{q: db.Pool}
}

// newBowlerInningsRepositoryWithTx creates a new bowler innings repository with a transaction
func newBowlerInningsRepositoryWithTx(tx queryable) *BowlerInningsRepository {
	return &BowlerInningsRepository{q: tx}
}

const bowlerInningsColumns = `
	id, innings_id, player_id, overs, maidens, runs_conceded, wickets,
	wides, no_balls, created_at, updated_at
`

func scanBowlerInnings(row pgx.Row) (*models.BowlerInnings, error) {
	var bowler models.BowlerInnings
	err := row.Scan(
		&bowler.ID,
		&bowler.InningsID,
		&bowler.PlayerID,
		&bowler.Overs,
		&bowler.Maidens,
		&bowler.RunsConceded,
		&bowler.Wickets,
		&bowler.Wides,
		&bowler.NoBalls,
		&bowler.CreatedAt,
		&bowler.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bowler, nil
}

// Create persists a new bowler innings row
func (r *BowlerInningsRepository) Create(ctx context.Context, bowler *models.BowlerInnings) error {
	query := `
		INSERT INTO bowler_innings (innings_id, player_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, bowler.InningsID, bowler.PlayerID).
		Scan(&bowler.ID, &bowler.CreatedAt, &bowler.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bowler innings: %w", translateError(err))
	}
	return nil
}

// GetByInningsAndPlayer retrieves a bowler row, nil if absent
func (r *BowlerInningsRepository) GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BowlerInnings, error) {
	query := `SELECT ` + bowlerInningsColumns + ` FROM bowler_innings WHERE innings_id = $1 AND player_id = $2`

	bowler, err := scanBowlerInnings(r.q.QueryRow(ctx, query, inningsID, playerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bowler %d in innings %d: %w", playerID, inningsID, translateError(err))
	}
	return bowler, nil
}

// ListByInnings returns all bowler rows of an innings
func (r *BowlerInningsRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.BowlerInnings, error) {
	query := `SELECT ` + bowlerInningsColumns + ` FROM bowler_innings WHERE innings_id = $1 ORDER BY id`

	rows, err := r.q.Query(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bowlers for innings %d: %w", inningsID, translateError(err))
	}
	defer rows.Close()

	var result []*models.BowlerInnings
	for rows.Next() {
		bowler, err := scanBowlerInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bowler innings: %w", err)
		}
		result = append(result, bowler)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bowler innings: %w", translateError(err))
	}
	return result, nil
}

// Update persists the bowler row counters
func (r *BowlerInningsRepository) Update(ctx context.Context, bowler *models.BowlerInnings) error {
	query := `
		UPDATE bowler_innings
		SET overs = $1, maidens = $2, runs_conceded = $3, wickets = $4,
		    wides = $5, no_balls = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.q.Exec(ctx, query,
		bowler.Overs,
		bowler.Maidens,
		bowler.RunsConceded,
		bowler.Wickets,
		bowler.Wides,
		bowler.NoBalls,
		bowler.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bowler innings %d: %w", bowler.ID, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bowler innings %d not found", bowler.ID)
	}
	return nil
}
