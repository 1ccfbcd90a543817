package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// PlayerStatisticRepository implements the service.PlayerStatisticRepository interface
type PlayerStatisticRepository struct {
	q queryable
}

// NewPlayerStatisticRepository creates a new player statistic repository
func NewPlayerStatisticRepository(db *database.DB) *PlayerStatisticRepository {
	return &PlayerStatisticRepository{q: db.Pool}
}

// newPlayerStatisticRepositoryWithTx creates a new player statistic repository with a transaction
func newPlayerStatisticRepositoryWithTx(tx queryable) *PlayerStatisticRepository {
	return &PlayerStatisticRepository{q: tx}
}

const playerStatisticColumns = `
	id, player_id, format, matches_batted, innings_batted, runs_scored,
	balls_faced, not_outs, highest_score, batting_average,
	batting_strike_rate, fifties, hundreds, fours, sixes, matches_bowled,
	innings_bowled, overs_bowled, runs_conceded, wickets_taken,
	best_bowling_figures, bowling_average, economy_rate,
	bowling_strike_rate, four_wickets, five_wickets, catches, stumpings,
	run_outs, created_at, updated_at
`

func scanPlayerStatistic(row pgx.Row) (*models.PlayerStatistic, error) {
	var stat models.PlayerStatistic
	err := row.Scan(
		&stat.ID,
		&stat.PlayerID,
		&stat.Format,
		&stat.MatchesBatted,
		&stat.InningsBatted,
		&stat.RunsScored,
		&stat.BallsFaced,
		&stat.NotOuts,
		&stat.HighestScore,
		&stat.BattingAverage,
		&stat.BattingStrikeRate,
		&stat.Fifties,
		&stat.Hundreds,
		&stat.Fours,
		&stat.Sixes,
		&stat.MatchesBowled,
		&stat.InningsBowled,
		&stat.OversBowled,
		&stat.RunsConceded,
		&stat.WicketsTaken,
		&stat.BestBowlingFigures,
		&stat.BowlingAverage,
		&stat.EconomyRate,
		&stat.BowlingStrikeRate,
		&stat.FourWickets,
		&stat.FiveWickets,
		&stat.Catches,
		&stat.Stumpings,
		&stat.RunOuts,
		&stat.CreatedAt,
		&stat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// GetOrCreateForUpdate retrieves the player's statistic row for a format,
// creating a zeroed row if absent, and locks it for the duration of the
// transaction. The insert races with concurrent transactions on the
// (player_id, format) unique constraint; losers retry the locked select.
func (r *PlayerStatisticRepository) GetOrCreateForUpdate(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error) {
	selectQuery := `SELECT ` + playerStatisticColumns + ` FROM player_statistics WHERE player_id = $1 AND format = $2 FOR UPDATE`

	stat, err := scanPlayerStatistic(r.q.QueryRow(ctx, selectQuery, playerID, format))
	if err == nil {
		return stat, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to lock statistics for player %d: %w", playerID, translateError(err))
	}

	insertQuery := `
		INSERT INTO player_statistics (player_id, format)
		VALUES ($1, $2)
		ON CONFLICT (player_id, format) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insertQuery, playerID, format); err != nil {
		return nil, fmt.Errorf("failed to create statistics for player %d: %w", playerID, translateError(err))
	}

	stat, err = scanPlayerStatistic(r.q.QueryRow(ctx, selectQuery, playerID, format))
	if err != nil {
		return nil, fmt.Errorf("failed to lock statistics for player %d: %w", playerID, translateError(err))
	}
	return stat, nil
}

// GetByPlayerAndFormat retrieves a statistic row without locking, nil if absent
func (r *PlayerStatisticRepository) GetByPlayerAndFormat(ctx context.Context, playerID int64, format string) (*models.PlayerStatistic, error) {
	query := `SELECT ` + playerStatisticColumns + ` FROM player_statistics WHERE player_id = $1 AND format = $2`

	stat, err := scanPlayerStatistic(r.q.QueryRow(ctx, query, playerID, format))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics for player %d: %w", playerID, translateError(err))
	}
	return stat, nil
}

// Update persists the statistic counters and derived rates
func (r *PlayerStatisticRepository) Update(ctx context.Context, stat *models.PlayerStatistic) error {
	query := `
		UPDATE player_statistics
		SET matches_batted = $1, innings_batted = $2, runs_scored = $3,
		    balls_faced = $4, not_outs = $5, highest_score = $6,
		    batting_average = $7, batting_strike_rate = $8, fifties = $9,
		    hundreds = $10, fours = $11, sixes = $12, matches_bowled = $13,
		    innings_bowled = $14, overs_bowled = $15, runs_conceded = $16,
		    wickets_taken = $17, best_bowling_figures = $18,
		    bowling_average = $19, economy_rate = $20,
		    bowling_strike_rate = $21, four_wickets = $22,
		    five_wickets = $23, catches = $24, stumpings = $25,
		    run_outs = $26, updated_at = NOW()
		WHERE id = $27
	`

	result, err := r.q.Exec(ctx, query,
		stat.MatchesBatted,
		stat.InningsBatted,
		stat.RunsScored,
		stat.BallsFaced,
		stat.NotOuts,
		stat.HighestScore,
		stat.BattingAverage,
		stat.BattingStrikeRate,
		stat.Fifties,
		stat.Hundreds,
		stat.Fours,
		stat.Sixes,
		stat.MatchesBowled,
		stat.InningsBowled,
		stat.OversBowled,
		stat.RunsConceded,
		stat.WicketsTaken,
		stat.BestBowlingFigures,
		stat.BowlingAverage,
		stat.EconomyRate,
		stat.BowlingStrikeRate,
		stat.FourWickets,
		stat.FiveWickets,
		stat.Catches,
		stat.Stumpings,
		stat.RunOuts,
		stat.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update statistics %d: %w", stat.ID, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("statistics %d not found", stat.ID)
	}
	return nil
}
