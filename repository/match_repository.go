package repository

import (
	"context"
	"fmt"

	"cricscore/database"
	"cricscore/models"
	"github.com/jackc/pgx/v5"
)

// MatchRepository implements the service.MatchRepository interface
type MatchRepository struct {
	q queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

// newMatchRepositoryWithTx creates a new match repository with a transaction
func newMatchRepositoryWithTx(tx queryable) *MatchRepository {
	return &MatchRepository{q: tx}
}

const matchColumns = `
	id, tournament_id, team1_id, team2_id, venue_id, scheduled_date,
	match_type, status, toss_winner_id, toss_decision, match_winner_id,
	result_description, team1_score, team1_wickets, team1_overs,
	team2_score, team2_wickets, team2_overs, scorer_id, created_at, updated_at
`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.Team1ID,
		&match.Team2ID,
		&match.VenueID,
		&match.ScheduledDate,
		&match.MatchType,
		&match.Status,
		&match.TossWinnerID,
		&match.TossDecision,
		&match.MatchWinnerID,
		&match.ResultDescription,
		&match.Team1Score,
		&match.Team1Wickets,
		&match.Team1Overs,
		&match.Team2Score,
		&match.Team2Wickets,
		&match.Team2Overs,
		&match.ScorerID,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Create persists a new match
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (
			tournament_id, team1_id, team2_id, venue_id, scheduled_date,
			match_type, status, toss_winner_id, toss_decision, scorer_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		match.TournamentID,
		match.Team1ID,
		match.Team2ID,
		match.VenueID,
		match.ScheduledDate,
		match.MatchType,
		match.Status,
		match.TossWinnerID,
		match.TossDecision,
		match.ScorerID,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create match: %w", translateError(err))
	}
	return nil
}

// GetByID retrieves a match by its ID
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, translateError(err))
	}
	return match, nil
}

// UpdateStatus sets the match lifecycle status
func (r *MatchRepository) UpdateStatus(ctx context.Context, id int64, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for match %d: %w", id, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", id)
	}
	return nil
}

// UpdateScore overwrites the running score fields for both teams
func (r *MatchRepository) UpdateScore(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET team1_score = $1, team1_wickets = $2, team1_overs = $3,
		    team2_score = $4, team2_wickets = $5, team2_overs = $6,
		    updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.q.Exec(ctx, query,
		match.Team1Score,
		match.Team1Wickets,
		match.Team1Overs,
		match.Team2Score,
		match.Team2Wickets,
		match.Team2Overs,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update score for match %d: %w", match.ID, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", match.ID)
	}
	return nil
}

// UpdateResult records the winner and result description
func (r *MatchRepository) UpdateResult(ctx context.Context, id int64, winnerID *int64, resultDescription *string) error {
	query := `
		UPDATE matches
		SET match_winner_id = $1, result_description = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, winnerID, resultDescription, id)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", id, translateError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", id)
	}
	return nil
}
