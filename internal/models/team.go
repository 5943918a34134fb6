package models

import (
	"strings"
	"time"
)

// UnknownTeam is the sentinel name substituted when a team reference is
// absent or blank.
const UnknownTeam = "Unknown Team"

// Team represents a cricket team, unique by normalized display name. Two
// differently-spelled references to the same real team become two rows; the
// bundled dataset spells consistently so this is tolerated.
type Team struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NormalizeTeamName trims a raw team name, substituting the sentinel when
// nothing remains.
func NormalizeTeamName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return UnknownTeam
	}
	return name
}
