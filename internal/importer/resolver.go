package importer

import (
	"context"

	"boundary_insights/ingestion/internal/feed"
	"boundary_insights/ingestion/internal/models"
)

// Resolver maps free-text entity references (season year, team name, player
// name) to stable row ids with get-or-create semantics. Every operation is
// idempotent and substitutes a documented sentinel for missing input instead
// of failing; storage errors propagate unchanged.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Season resolves a year-like value. Non-finite or absent values become year
// 0 ("Unknown Season"). The display name is refreshed on every resolve, so a
// later run with a better season string repairs the name.
func (r *Resolver) Season(ctx context.Context, year feed.FlexInt) (int, error) {
	resolved := year.Or(0)
	return r.store.GetOrCreateSeason(ctx, resolved, models.SeasonName(resolved))
}

// Team resolves a name-like value, trimmed and defaulted to "Unknown Team".
// The name is immutable once the team exists.
func (r *Resolver) Team(ctx context.Context, name string) (int, error) {
	return r.store.GetOrCreateTeam(ctx, models.NormalizeTeamName(name))
}

// Player resolves a name-like value, trimmed and defaulted to
// "Unknown Player", by find-first lookup. Player names are not
// unique-constrained, so two concurrent runs can create duplicate rows for
// one name; within a single sequential run that cannot happen.
func (r *Resolver) Player(ctx context.Context, name string) (int, error) {
	return r.store.FindOrCreatePlayer(ctx, models.NormalizePlayerName(name))
}
