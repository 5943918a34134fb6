package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"
)

// Store-facing methods consumed by the importer. Database satisfies
// importer.Store; the importer never sees pgx directly.

// GetOrCreateSeason resolves a season year to its row id.
func (db *Database) GetOrCreateSeason(ctx context.Context, year int, name string) (int, error) {
	season, err := db.Seasons.GetOrCreate(ctx, year, name)
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}

// GetOrCreateTeam resolves a normalized team name to its row id.
func (db *Database) GetOrCreateTeam(ctx context.Context, name string) (int, error) {
	team, err := db.Teams.GetOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	return team.ID, nil
}

// FindOrCreatePlayer resolves a normalized player name to a row id.
func (db *Database) FindOrCreatePlayer(ctx context.Context, name string) (int, error) {
	player, err := db.Players.FindOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	return player.ID, nil
}

// FindMatchByExternalKey returns the match for a source key, or nil.
func (db *Database) FindMatchByExternalKey(ctx context.Context, externalKey string) (*models.Match, error) {
	return db.Matches.FindByExternalKey(ctx, externalKey)
}

// MatchHasDeliveries reports whether a match already has deliveries attached.
func (db *Database) MatchHasDeliveries(ctx context.Context, matchID int) (bool, error) {
	return db.Deliveries.ExistsForMatch(ctx, matchID)
}

// ImportMatch writes a match and all of its deliveries in one transaction.
// A zero match ID means the row does not exist yet and is created first;
// deliveries are then upserted in slice order. Any failure rolls back the
// whole file, so a failed run never leaves a match with a subset of its
// deliveries.
func (db *Database) ImportMatch(ctx context.Context, match *models.Match, deliveries []*models.Delivery) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	// Rollback is a no-op once the transaction committed
	defer func() { _ = tx.Rollback(ctx) }()

	if match.ID == 0 {
		if err := db.Matches.CreateTx(ctx, tx, match); err != nil {
			return err
		}
	}

	for _, d := range deliveries {
		d.MatchID = match.ID
		if err := db.Deliveries.UpsertTx(ctx, tx, d); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}

	return nil
}
