package models

import (
	"strings"
	"time"
)

// UnknownPlayer is the sentinel name substituted when a player reference is
// absent or blank.
const UnknownPlayer = "Unknown Player"

// Player represents a cricket player. Name is deliberately not
// unique-constrained at the storage layer: resolution is find-first-by-name,
// so duplicate rows are possible if a second importer runs concurrently.
type Player struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NormalizePlayerName trims a raw player name, substituting the sentinel when
// nothing remains.
func NormalizePlayerName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return UnknownPlayer
	}
	return name
}
