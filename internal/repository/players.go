package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PlayerRepository handles player database operations.
//
// Unlike teams, player names carry no uniqueness constraint, so resolution is
// find-first-then-create rather than an upsert. Two concurrent importer runs
// can therefore create duplicate rows for the same name; the single-run
// precondition is enforced by the importer's run lock, not here.
type PlayerRepository struct {
	db *Database
}

// FindFirstByName retrieves the lowest-id player with the given name, or nil
// when none exists.
func (r *PlayerRepository) FindFirstByName(ctx context.Context, name string) (*models.Player, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM players
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, name).Scan(
		&player.ID, &player.Name, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	return &player, nil
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query, player.Name).Scan(
		&player.ID, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	log.Debug().
		Int("id", player.ID).
		Str("name", player.Name).
		Msg("Player created")

	return nil
}

// FindOrCreate resolves a player name to an existing row or creates one.
func (r *PlayerRepository) FindOrCreate(ctx context.Context, name string) (*models.Player, error) {
	existing, err := r.FindFirstByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	player := &models.Player{Name: name}
	if err := r.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// GetByID retrieves a player by its database ID
func (r *PlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player not found: id=%d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// Count returns the total number of players
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM players`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}

	return count, nil
}
