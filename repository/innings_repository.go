package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// InningsRepository implements the service.InningsRepository interface
type InningsRepository struct {
	q queryable
}

// NewInningsRepository creates a new innings repository
func NewInningsRepository(db *database.DB) *InningsRepository {
	return &InningsRepository{q: db.Pool}
}

// newInningsRepositoryWithTx creates a new innings repository with a transaction
func newInningsRepositoryWithTx(tx queryable) *InningsRepository {
	return &InningsRepository{q: tx}
}

const inningsColumns = `
	id, match_id, batting_team_id, bowling_team_id, innings_number,
	total_runs, total_wickets, total_overs, extras, byes, leg_byes,
	wides, no_balls, penalty_runs, status, created_at, updated_at
`

func scanInnings(row pgx.Row) (*models.Innings, error) {
	var innings models.Innings
	err := row.Scan(
		&innings.ID,
		&innings.MatchID,
		&innings.BattingTeamID,
		&innings.BowlingTeamID,
		&innings.InningsNumber,
		&innings.TotalRuns,
		&innings.TotalWickets,
		&innings.TotalOvers,
		&innings.Extras,
		&innings.Byes,
		&innings.LegByes,
		&innings.Wides,
		&innings.NoBalls,
		&innings.PenaltyRuns,
		&innings.Status,
		&innings.CreatedAt,
		&innings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &innings, nil
}

// Create persists a new innings
func (r *InningsRepository) Create(ctx context.Context, innings *models.Innings) error {
	query := `
		INSERT INTO innings (match_id, batting_team_id, bowling_team_id, innings_number, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		innings.MatchID,
		innings.BattingTeamID,
		innings.BowlingTeamID,
		innings.InningsNumber,
		innings.Status,
	).Scan(&innings.ID, &innings.CreatedAt, &innings.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create innings: %w", translateError(err))
	}
	return nil
}

// GetByID retrieves an innings by its ID
func (r *InningsRepository) GetByID(ctx context.Context, id int64) (*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE id = $1`

	innings, err := scanInnings(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get innings %d: %w", id, translateError(err))
	}
	return innings, nil
}

// GetByIDForUpdate retrieves an innings and takes a row lock on it. Concurrent
// deliveries for the same innings serialize on this lock.
func (r *InningsRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE id = $1 FOR UPDATE`

	innings, err := scanInnings(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock innings %d: %w", id, translateError(err))
	}
	return innings, nil
}

// GetByMatchAndNumber retrieves an innings by match and innings number
func (r *InningsRepository) GetByMatchAndNumber(ctx context.Context, matchID int64, inningsNumber int) (*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = $1 AND innings_number = $2`

	innings, err := scanInnings(r.q.QueryRow(ctx, query, matchID, inningsNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get innings %d of match %d: %w", inningsNumber, matchID, translateError(err))
	}
	return innings, nil
}

// ListByMatch returns all innings of a match ordered by innings number
func (r *InningsRepository) ListByMatch(ctx context.Context, matchID int64) ([]*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = $1 ORDER BY innings_number`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list innings for match %d: %w", matchID, translateError(err))
	}
	defer rows.Close()

	var result []*models.Innings
	for rows.Next() {
		innings, err := scanInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan innings: %w", err)
		}
		result = append(result, innings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating innings: %w", translateError(err))
	}
	return result, nil
}

// Update persists the innings aggregate counters and status
func (r *InningsRepository) Update(ctx context.Context, innings *models.Innings) error {
	query := `
		UPDATE innings
		SET total_runs = $1, total_wickets = $2, total_overs = $3,
		    extras = $4, byes = $5, leg_byes = $6, wides = $7,
		    no_balls = $8, penalty_runs = $9, status = $10,
		    updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.q.Exec(ctx, query,
		innings.TotalRuns,
		innings.TotalWickets,
		innings.TotalOvers,
		innings.Extras,
		innings.Byes,
		innings.LegByes,
		innings.Wides,
		innings.NoBalls,
		innings.PenaltyRuns,
		innings.Status,
		innings.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update innings %d: %w", innings.ID, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("innings %d not found", innings.ID)
	}
	return nil
}
