package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"
)

// StatsRepository serves the aggregate views the dashboard API reads from the
// normalized schema. Read-only.
type StatsRepository struct {
	db *Database
}

// TopBatsmen ranks players by total runs scored off the bat.
func (r *StatsRepository) TopBatsmen(ctx context.Context, limit int) ([]*models.TopBatsman, error) {
	query := `
		SELECT d.striker_id, p.name, COALESCE(SUM(d.runs_batsman), 0) AS total_runs
		FROM deliveries d
		JOIN players p ON p.id = d.striker_id
		GROUP BY d.striker_id, p.name
		ORDER BY total_runs DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top batsmen: %w", err)
	}
	defer rows.Close()

	var batsmen []*models.TopBatsman
	for rows.Next() {
		var b models.TopBatsman
		if err := rows.Scan(&b.PlayerID, &b.PlayerName, &b.TotalRuns); err != nil {
			return nil, fmt.Errorf("failed to scan top batsman: %w", err)
		}
		batsmen = append(batsmen, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top batsmen: %w", err)
	}

	return batsmen, nil
}

// TopBowlers ranks bowlers by deliveries credited with a dismissal.
func (r *StatsRepository) TopBowlers(ctx context.Context, limit int) ([]*models.TopBowler, error) {
	query := `
		SELECT d.bowler_id, p.name, COUNT(d.dismissal_kind) AS wickets
		FROM deliveries d
		JOIN players p ON p.id = d.bowler_id
		WHERE d.dismissal_kind IS NOT NULL
		GROUP BY d.bowler_id, p.name
		ORDER BY wickets DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top bowlers: %w", err)
	}
	defer rows.Close()

	var bowlers []*models.TopBowler
	for rows.Next() {
		var b models.TopBowler
		if err := rows.Scan(&b.PlayerID, &b.PlayerName, &b.Wickets); err != nil {
			return nil, fmt.Errorf("failed to scan top bowler: %w", err)
		}
		bowlers = append(bowlers, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top bowlers: %w", err)
	}

	return bowlers, nil
}

// TeamPerformance summarizes played/won/lost/tied/no-result per team across
// all imported matches.
func (r *StatsRepository) TeamPerformance(ctx context.Context) ([]*models.TeamPerformance, error) {
	query := `
		SELECT t.id,
		       t.name,
		       COUNT(m.id) AS matches_played,
		       COUNT(*) FILTER (WHERE m.winner_team_id = t.id) AS wins,
		       COUNT(*) FILTER (WHERE m.result_type = 'NORMAL' AND m.winner_team_id IS NOT NULL AND m.winner_team_id <> t.id) AS losses,
		       COUNT(*) FILTER (WHERE m.result_type = 'TIE') AS ties,
		       COUNT(*) FILTER (WHERE m.result_type = 'NO_RESULT') AS no_results
		FROM teams t
		JOIN matches m ON m.home_team_id = t.id OR m.away_team_id = t.id
		GROUP BY t.id, t.name
		ORDER BY wins DESC, t.name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team performance: %w", err)
	}
	defer rows.Close()

	var teams []*models.TeamPerformance
	for rows.Next() {
		var t models.TeamPerformance
		err := rows.Scan(
			&t.TeamID, &t.TeamName, &t.MatchesPlayed,
			&t.Wins, &t.Losses, &t.Ties, &t.NoResults,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team performance: %w", err)
		}
		teams = append(teams, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team performance: %w", err)
	}

	return teams, nil
}
