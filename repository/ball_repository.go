package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// BallRepository implements the service.BallRepository interface. The ball
// log is append-only; there are no update or delete operations.
type BallRepository struct {
	q queryable
}

// NewBallRepository creates a new ball repository
func NewBallRepository(db *database.DB) *BallRepository {
	return &BallRepository{q: db.Pool}
}

// newBallRepositoryWithTx creates a new ball repository with a transaction
func newBallRepositoryWithTx(tx queryable) *BallRepository {
	return &BallRepository{q: tx}
}

const ballColumns = `
	id, innings_id, bowler_id, batsman_id, non_striker_id, over_number,
	ball_number, runs_scored, is_wide, is_no_ball, is_bye, is_leg_bye,
	is_wicket, wicket_type, wicket_player_out_id, wicket_fielder_id,
	commentary, wagon_wheel_data, created_at
`

func scanBall(row pgx.Row) (*models.Ball, error) {
	var ball models.Ball
	err := row.Scan(
		&ball.ID,
		&ball.InningsID,
		&ball.BowlerID,
		&ball.BatsmanID,
		&ball.NonStrikerID,
		&ball.OverNumber,
		&ball.BallNumber,
		&ball.RunsScored,
		&ball.IsWide,
		&ball.IsNoBall,
		&ball.IsBye,
		&ball.IsLegBye,
		&ball.IsWicket,
		&ball.WicketType,
		&ball.WicketPlayerOutID,
		&ball.WicketFielderID,
		&ball.Commentary,
		&ball.WagonWheelData,
		&ball.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ball, nil
}

// Create appends a ball to the log
func (r *BallRepository) Create(ctx context.Context, ball *models.Ball) error {
	query := `
		INSERT INTO balls (
			innings_id, bowler_id, batsman_id, non_striker_id, over_number,
			ball_number, runs_scored, is_wide, is_no_ball, is_bye, is_leg_bye,
			is_wicket, wicket_type, wicket_player_out_id, wicket_fielder_id,
			commentary, wagon_wheel_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		ball.InningsID,
		ball.BowlerID,
		ball.BatsmanID,
		ball.NonStrikerID,
		ball.OverNumber,
		ball.BallNumber,
		ball.RunsScored,
		ball.IsWide,
		ball.IsNoBall,
		ball.IsBye,
		ball.IsLegBye,
		ball.IsWicket,
		ball.WicketType,
		ball.WicketPlayerOutID,
		ball.WicketFielderID,
		ball.Commentary,
		ball.WagonWheelData,
	).Scan(&ball.ID, &ball.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create ball: %w", translateError(err))
	}
	return nil
}

func (r *BallRepository) list(ctx context.Context, query string, args ...any) ([]*models.Ball, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []*models.Ball
	for rows.Next() {
		ball, err := scanBall(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ball: %w", err)
		}
		result = append(result, ball)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balls: %w", translateError(err))
	}
	return result, nil
}

// ListByInnings returns the full ball log in over/ball order. Ties on the
// same over and ball (re-bowled wides and no-balls) break on insertion order.
func (r *BallRepository) ListByInnings(ctx context.Context, inningsID int64) ([]*models.Ball, error) {
	query := `
		SELECT ` + ballColumns + `
		FROM balls
		WHERE innings_id = $1
		ORDER BY over_number, ball_number, id
	`

	result, err := r.list(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balls for innings %d: %w", inningsID, err)
	}
	return result, nil
}

// ListByOver returns the balls of one over in ball order
func (r *BallRepository) ListByOver(ctx context.Context, inningsID int64, overNumber int) ([]*models.Ball, error) {
	query := `
		SELECT ` + ballColumns + `
		FROM balls
		WHERE innings_id = $1 AND over_number = $2
		ORDER BY ball_number, id
	`

	result, err := r.list(ctx, query, inningsID, overNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list balls for over %d of innings %d: %w", overNumber, inningsID, err)
	}
	return result, nil
}

// GetLast returns the most recent ball of an innings, nil if none
func (r *BallRepository) GetLast(ctx context.Context, inningsID int64) (*models.Ball, error) {
	query := `
		SELECT ` + ballColumns + `
		FROM balls
		WHERE innings_id = $1
		ORDER BY over_number DESC, ball_number DESC, id DESC
		LIMIT 1
	`

	ball, err := scanBall(r.q.QueryRow(ctx, query, inningsID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last ball for innings %d: %w", inningsID, translateError(err))
	}
	return ball, nil
}
