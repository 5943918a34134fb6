package models

import (
	"database/sql"
	"time"
)

// TossDecision is what the toss winner chose to do first.
type TossDecision string

const (
	TossBat  TossDecision = "BAT"
	TossBowl TossDecision = "BOWL"
)

// ParseTossDecision maps the source's numeric toss decision code. Codes
// outside the mapping yield false (stored as NULL).
func ParseTossDecision(code int) (TossDecision, bool) {
	switch code {
	case 1:
		return TossBat, true
	case 2:
		return TossBowl, true
	default:
		return "", false
	}
}

// ResultType classifies how a match concluded.
type ResultType string

const (
	ResultNormal   ResultType = "NORMAL"
	ResultTie      ResultType = "TIE"
	ResultNoResult ResultType = "NO_RESULT"
)

// ParseResultType maps the source's numeric result code. The mapping is
// acknowledged-incomplete in the source domain: only 2/3/4 are documented,
// every other code yields false (stored as NULL) so gaps stay visible.
func ParseResultType(code int) (ResultType, bool) {
	switch code {
	case 2:
		return ResultNormal, true
	case 3:
		return ResultTie, true
	case 4:
		return ResultNoResult, true
	default:
		return "", false
	}
}

// Match is the unit of a single game. ExternalKey is the string form of the
// source's numeric match identifier and the sole idempotency anchor: a match
// is created once per key, and a re-run that finds the key with deliveries
// attached skips the file.
type Match struct {
	ID               int            `db:"id"`
	ExternalKey      string         `db:"external_key"`
	SeasonID         int            `db:"season_id"`
	HomeTeamID       int            `db:"home_team_id"`
	AwayTeamID       int            `db:"away_team_id"`
	TossWinnerTeamID sql.NullInt32  `db:"toss_winner_team_id"`
	TossDecision     sql.NullString `db:"toss_decision"`
	ResultType       sql.NullString `db:"result_type"`
	WinnerTeamID     sql.NullInt32  `db:"winner_team_id"`
	Venue            sql.NullString `db:"venue"`
	City             sql.NullString `db:"city"`
	MatchDate        time.Time      `db:"match_date"`
	DLApplied        bool           `db:"dl_applied"`
	Umpire1          sql.NullString `db:"umpire1"`
	Umpire2          sql.NullString `db:"umpire2"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}
