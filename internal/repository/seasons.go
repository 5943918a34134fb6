package repository

import (
	"context"
	"fmt"

	"boundary_insights/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// SeasonRepository handles season database operations
type SeasonRepository struct {
	db *Database
}

// GetOrCreate inserts a season by its unique year, or refreshes the display
// name of the existing row. The name update lets a later run with a better
// season string repair an "Unknown Season" created earlier.
func (r *SeasonRepository) GetOrCreate(ctx context.Context, year int, name string) (*models.Season, error) {
	query := `
		INSERT INTO seasons (year, name)
		VALUES ($1, $2)
		ON CONFLICT (year) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING id, year, name, created_at, updated_at
	`

	var season models.Season
	err := r.db.Pool.QueryRow(ctx, query, year, name).Scan(
		&season.ID, &season.Year, &season.Name, &season.CreatedAt, &season.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create season: %w", err)
	}

	log.Debug().
		Int("id", season.ID).
		Int("year", season.Year).
		Str("name", season.Name).
		Msg("Season resolved")

	return &season, nil
}

// GetByYear retrieves a season by year
func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (*models.Season, error) {
	query := `
		SELECT id, year, name, created_at, updated_at
		FROM seasons
		WHERE year = $1
	`

	var season models.Season
	err := r.db.Pool.QueryRow(ctx, query, year).Scan(
		&season.ID, &season.Year, &season.Name, &season.CreatedAt, &season.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("season not found: year=%d", year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &season, nil
}

// List retrieves all seasons ordered by year
func (r *SeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	query := `
		SELECT id, year, name, created_at, updated_at
		FROM seasons
		ORDER BY year
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		var season models.Season
		if err := rows.Scan(&season.ID, &season.Year, &season.Name, &season.CreatedAt, &season.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, &season)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seasons: %w", err)
	}

	return seasons, nil
}

// Count returns the total number of seasons
func (r *SeasonRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM seasons`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count seasons: %w", err)
	}

	return count, nil
}
