package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// MatchRepository handles match database operations
type MatchRepository struct {
	db *Database
}

const matchColumns = `
	id, external_key, season_id, home_team_id, away_team_id,
	toss_winner_team_id, toss_decision, result_type, winner_team_id,
	venue, city, match_date, dl_applied, umpire1, umpire2,
	created_at, updated_at
`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.ExternalKey, &m.SeasonID, &m.HomeTeamID, &m.AwayTeamID,
		&m.TossWinnerTeamID, &m.TossDecision, &m.ResultType, &m.WinnerTeamID,
		&m.Venue, &m.City, &m.MatchDate, &m.DLApplied, &m.Umpire1, &m.Umpire2,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateTx inserts a new match inside an open transaction. The external key
// is globally unique; a duplicate insert fails rather than silently merging.
func (r *MatchRepository) CreateTx(ctx context.Context, tx pgx.Tx, match *models.Match) error {
	query := `
		INSERT INTO matches (
			external_key, season_id, home_team_id, away_team_id,
			toss_winner_team_id, toss_decision, result_type, winner_team_id,
			venue, city, match_date, dl_applied, umpire1, umpire2
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		ctx, query,
		match.ExternalKey, match.SeasonID, match.HomeTeamID, match.AwayTeamID,
		match.TossWinnerTeamID, match.TossDecision, match.ResultType, match.WinnerTeamID,
		match.Venue, match.City, match.MatchDate, match.DLApplied, match.Umpire1, match.Umpire2,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	log.Debug().
		Int("id", match.ID).
		Str("external_key", match.ExternalKey).
		Msg("Match created")

	return nil
}

// FindByExternalKey retrieves a match by its source match identifier, or nil
// when the key has never been imported.
func (r *MatchRepository) FindByExternalKey(ctx context.Context, externalKey string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE external_key = $1`

	match, err := scanMatch(r.db.Pool.QueryRow(ctx, query, externalKey))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetByID retrieves a match by its database ID
func (r *MatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("match not found: id=%d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// ListBySeason retrieves all matches in a season ordered by date
func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE season_id = $1 ORDER BY match_date`

	rows, err := r.db.Pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// Count returns the total number of matches
func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM matches`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}

	return count, nil
}
