package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// DeliveryRepository handles delivery database operations
type DeliveryRepository struct {
	db *Database
}

const deliveryUpsertQuery = `
	INSERT INTO deliveries (
		match_id, inning_number, over_number, ball_in_over,
		batting_team_id, bowling_team_id, striker_id, non_striker_id, bowler_id,
		runs_batsman, runs_extras, runs_total,
		is_wide, is_no_ball, is_bye, is_leg_bye, is_penalty,
		dismissal_kind, dismissed_player_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (match_id, inning_number, over_number, ball_in_over) DO UPDATE SET
		batting_team_id = EXCLUDED.batting_team_id,
		bowling_team_id = EXCLUDED.bowling_team_id,
		striker_id = EXCLUDED.striker_id,
		non_striker_id = EXCLUDED.non_striker_id,
		bowler_id = EXCLUDED.bowler_id,
		runs_batsman = EXCLUDED.runs_batsman,
		runs_extras = EXCLUDED.runs_extras,
		runs_total = EXCLUDED.runs_total,
		is_wide = EXCLUDED.is_wide,
		is_no_ball = EXCLUDED.is_no_ball,
		is_bye = EXCLUDED.is_bye,
		is_leg_bye = EXCLUDED.is_leg_bye,
		is_penalty = EXCLUDED.is_penalty,
		dismissal_kind = EXCLUDED.dismissal_kind,
		dismissed_player_id = EXCLUDED.dismissed_player_id,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
`

// UpsertTx inserts or updates a delivery inside an open transaction, keyed by
// (match, inning, over, ball). Re-imports update in place, so final stored
// state is independent of write order.
func (r *DeliveryRepository) UpsertTx(ctx context.Context, tx pgx.Tx, d *models.Delivery) error {
	err := tx.QueryRow(
		ctx, deliveryUpsertQuery,
		d.MatchID, d.InningNumber, d.OverNumber, d.BallInOver,
		d.BattingTeamID, d.BowlingTeamID, d.StrikerID, d.NonStrikerID, d.BowlerID,
		d.RunsBatsman, d.RunsExtras, d.RunsTotal,
		d.IsWide, d.IsNoBall, d.IsBye, d.IsLegBye, d.IsPenalty,
		d.DismissalKind, d.DismissedPlayerID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert delivery: %w", err)
	}

	return nil
}

// Upsert inserts or updates a delivery outside a transaction
func (r *DeliveryRepository) Upsert(ctx context.Context, d *models.Delivery) error {
	err := r.db.Pool.QueryRow(
		ctx, deliveryUpsertQuery,
		d.MatchID, d.InningNumber, d.OverNumber, d.BallInOver,
		d.BattingTeamID, d.BowlingTeamID, d.StrikerID, d.NonStrikerID, d.BowlerID,
		d.RunsBatsman, d.RunsExtras, d.RunsTotal,
		d.IsWide, d.IsNoBall, d.IsBye, d.IsLegBye, d.IsPenalty,
		d.DismissalKind, d.DismissedPlayerID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert delivery: %w", err)
	}

	return nil
}

// ExistsForMatch reports whether a match has at least one delivery attached.
// This is the idempotency short-circuit: a match with deliveries is treated
// as fully imported.
func (r *DeliveryRepository) ExistsForMatch(ctx context.Context, matchID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM deliveries WHERE match_id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, matchID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check deliveries: %w", err)
	}

	return exists, nil
}

// CountByMatch returns the number of deliveries stored for a match
func (r *DeliveryRepository) CountByMatch(ctx context.Context, matchID int) (int, error) {
	query := `SELECT COUNT(*) FROM deliveries WHERE match_id = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, matchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return count, nil
}

// Count returns the total number of deliveries
func (r *DeliveryRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM deliveries`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return count, nil
}

// ListByMatch retrieves all deliveries for a match in innings/over/ball order
func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Delivery, error) {
	query := `
		SELECT id, match_id, inning_number, over_number, ball_in_over,
		       batting_team_id, bowling_team_id, striker_id, non_striker_id, bowler_id,
		       runs_batsman, runs_extras, runs_total,
		       is_wide, is_no_ball, is_bye, is_leg_bye, is_penalty,
		       dismissal_kind, dismissed_player_id,
		       created_at, updated_at
		FROM deliveries
		WHERE match_id = $1
		ORDER BY inning_number, over_number, ball_in_over
	`

	rows, err := r.db.Pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		var d models.Delivery
		err := rows.Scan(
			&d.ID, &d.MatchID, &d.InningNumber, &d.OverNumber, &d.BallInOver,
			&d.BattingTeamID, &d.BowlingTeamID, &d.StrikerID, &d.NonStrikerID, &d.BowlerID,
			&d.RunsBatsman, &d.RunsExtras, &d.RunsTotal,
			&d.IsWide, &d.IsNoBall, &d.IsBye, &d.IsLegBye, &d.IsPenalty,
			&d.DismissalKind, &d.DismissedPlayerID,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deliveries: %w", err)
	}

	return deliveries, nil
}
