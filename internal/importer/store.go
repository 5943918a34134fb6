package importer

import (
	"context"

	"boundary_insights/ingestion/internal/models"
)

// Store is the persistence contract the importer depends on. It is satisfied
// by *repository.Database in production and by an in-memory fake in tests;
// the importer never talks to the storage technology directly.
type Store interface {
	// GetOrCreateSeason resolves a season year to its row id, creating the
	// season or refreshing its display name.
	GetOrCreateSeason(ctx context.Context, year int, name string) (int, error)

	// GetOrCreateTeam resolves a normalized team name to its row id.
	GetOrCreateTeam(ctx context.Context, name string) (int, error)

	// FindOrCreatePlayer resolves a normalized player name to a row id by
	// find-first lookup, creating a row when no match exists.
	FindOrCreatePlayer(ctx context.Context, name string) (int, error)

	// FindMatchByExternalKey returns the match for a source key, or nil when
	// the key has never been imported.
	FindMatchByExternalKey(ctx context.Context, externalKey string) (*models.Match, error)

	// MatchHasDeliveries reports whether a match has deliveries attached.
	MatchHasDeliveries(ctx context.Context, matchID int) (bool, error)

	// ImportMatch atomically creates the match (when its ID is zero) and
	// upserts every delivery, all-or-nothing.
	ImportMatch(ctx context.Context, match *models.Match, deliveries []*models.Delivery) error
}
