package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// BatsmanInningsRepository implements the service.BatsmanInningsRepository interface
type BatsmanInningsRepository struct {
	q queryable
}

// NewBatsmanInningsRepository creates a new batsman innings repository
func NewBatsmanInningsRepository(db *database.DB) *BatsmanInningsRepository {
	return &BatsmanInningsRepository{q: db.Pool}
}

// newBatsmanInningsRepositoryWithTx creates a new batsman innings repository with a transaction
func newBatsmanInningsRepositoryWithTx(tx queryable) *BatsmanInningsRepository {
	return &BatsmanInningsRepository{q: tx}
}

const batsmanInningsColumns = `
	id, innings_id, player_id, runs_scored, balls_faced, fours, sixes,
	dismissal_type, bowler_id, fielder_id, batting_position, is_out,
	status, wagon_wheel_data, created_at, updated_at
`

func scanBatsmanInnings(row pgx.Row) (*models.BatsmanInnings, error) {
	var batsman models.BatsmanInnings
	err := row.Scan(
		&batsman.ID,
		&batsman.InningsID,
		&batsman.PlayerID,
		&batsman.RunsScored,
		&batsman.BallsFaced,
		&batsman.Fours,
		&batsman.Sixes,
		&batsman.DismissalType,
		&batsman.BowlerID,
		&batsman.FielderID,
		&batsman.BattingPosition,
		&batsman.IsOut,
		&batsman.Status,
		&batsman.WagonWheelData,
		&batsman.CreatedAt,
		&batsman.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &batsman, nil
}

// Create persists a new batsman innings row
func (r *BatsmanInningsRepository) Create(ctx context.Context, batsman *models.BatsmanInnings) error {
	query := `
		INSERT INTO batsman_innings (innings_id, player_id, batting_position, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		batsman.InningsID,
		batsman.PlayerID,
		batsman.BattingPosition,
		batsman.Status,
	).Scan(&batsman.ID, &batsman.CreatedAt, &batsman.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create batsman innings: %w", translateError(err))
	}
	return nil
}

// GetByInningsAndPlayer retrieves a batsman row, nil if absent
func (r *BatsmanInningsRepository) GetByInningsAndPlayer(ctx context.Context, inningsID, playerID int64) (*models.BatsmanInnings, error) {
	query := `SELECT ` + batsmanInningsColumns + ` FROM batsman_innings WHERE innings_id = $1 AND player_id = $2`

	batsman, err := scanBatsmanInnings(r.q.QueryRow(ctx, query, inningsID, playerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batsman %d in innings %d: %w", playerID, inningsID, translateError(err))
	}
	return batsman, nil
}

// GetByID retrieves a batsman row by its ID
func (r *BatsmanInningsRepository) GetByID(ctx context.Context, id int64) (*models.BatsmanInnings, error) {
	query := `SELECT ` + batsmanInningsColumns + ` FROM batsman_innings WHERE id = $1`

	batsman, err := scanBatsmanInnings(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batsman innings %d: %w", id, translateError(err))
	}
	return batsman, nil
}

// GetByInningsAndPosition retrieves a batsman row by batting position
func (r *BatsmanInningsRepository) GetByInningsAndPosition(ctx context.Context, inningsID int64, position int) (*models.BatsmanInnings, error) {
	query := `SELECT ` + batsmanInningsColumns + ` FROM batsman_innings WHERE innings_id = $1 AND batting_position = $2`

	batsman, err := scanBatsmanInnings(r.q.QueryRow(ctx, query, inningsID, position))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batsman at position %d in innings %d: %w", position, inningsID, translateError(err))
	}
	return batsman, nil
}

func (r *BatsmanInningsRepository) list(ctx context.Context, query string, args ...any) ([]*models.BatsmanInnings, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []*models.BatsmanInnings
	for rows.Next() {
		batsman, err := scanBatsmanInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batsman innings: %w", err)
		}
		result = append(result, batsman)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batsman innings: %w", translateError(err))
	}
	return result, nil
}

// ListByInnings returns all batsman rows ordered by batting position
func (r *BatsmanInningsRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error) {
	query := `SELECT ` + batsmanInningsColumns + ` FROM batsman_innings WHERE innings_id = $1 ORDER BY batting_position`

	result, err := r.list(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batsmen for innings %d: %w", inningsID, err)
	}
	return result, nil
}

// ListBatting returns the batsmen currently at the crease
func (r *BatsmanInningsRepository) ListBatting(ctx context.Context, inningsID int64) ([]*models.BatsmanInnings, error) {
	query := `SELECT ` + batsmanInningsColumns + ` FROM batsman_innings WHERE innings_id = $1 AND status = 'batting' ORDER BY batting_position`

	result, err := r.list(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batting batsmen for innings %d: %w", inningsID, err)
	}
	return result, nil
}

// Update persists the batsman row counters and status
func (r *BatsmanInningsRepository) Update(ctx context.Context, batsman *models.BatsmanInnings) error {
	query := `
		UPDATE batsman_innings
		SET runs_scored = $1, balls_faced = $2, fours = $3, sixes = $4,
		    dismissal_type = $5, bowler_id = $6, fielder_id = $7,
		    is_out = $8, status = $9, wagon_wheel_data = $10,
		    updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.q.Exec(ctx, query,
		batsman.RunsScored,
		batsman.BallsFaced,
		batsman.Fours,
		batsman.Sixes,
		batsman.DismissalType,
		batsman.BowlerID,
		batsman.FielderID,
		batsman.IsOut,
		batsman.Status,
		batsman.WagonWheelData,
		batsman.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update batsman innings %d: %w", batsman.ID, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("batsman innings %d not found", batsman.ID)
	}
	return nil
}
