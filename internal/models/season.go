package models

import (
	"fmt"
	"time"
)

// Season represents one IPL season, unique by year. Year 0 is the sentinel
// for records whose season could not be determined.
type Season struct {
	ID        int       `db:"id"`
	Year      int       `db:"year"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SeasonName returns the display name for a season year.
func SeasonName(year int) string {
	if year == 0 {
		return "Unknown Season"
	}
	return fmt.Sprintf("IPL %d", year)
}
