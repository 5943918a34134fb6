package models

import (
	"database/sql"
	"strings"
	"time"
)

// DismissalKind classifies how a batsman got out.
type DismissalKind string

const (
	DismissalBowled           DismissalKind = "BOWLED"
	DismissalCaught           DismissalKind = "CAUGHT"
	DismissalLBW              DismissalKind = "LBW"
	DismissalRunOut           DismissalKind = "RUN_OUT"
	DismissalStumped          DismissalKind = "STUMPED"
	DismissalHitWicket        DismissalKind = "HIT_WICKET"
	DismissalRetiredHurt      DismissalKind = "RETIRED_HURT"
	DismissalObstructingField DismissalKind = "OBSTRUCTING_FIELD"
	DismissalHitBallTwice     DismissalKind = "HIT_BALL_TWICE"
)

// ParseDismissalKind classifies a free-text "how out" string by
// case-insensitive substring matching against a fixed vocabulary. lbw is an
// exact match only, so that e.g. "not out (lbw appeal)" never classifies.
// Unrecognized or absent text yields false (no dismissal).
func ParseDismissalKind(raw string) (DismissalKind, bool) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	if kind == "" {
		return "", false
	}
	switch {
	case strings.Contains(kind, "bowled"):
		return DismissalBowled, true
	case strings.Contains(kind, "caught"):
		return DismissalCaught, true
	case kind == "lbw":
		return DismissalLBW, true
	case strings.Contains(kind, "run out"), strings.Contains(kind, "runout"):
		return DismissalRunOut, true
	case strings.Contains(kind, "stumped"):
		return DismissalStumped, true
	case strings.Contains(kind, "hit wicket"):
		return DismissalHitWicket, true
	case strings.Contains(kind, "retired hurt"):
		return DismissalRetiredHurt, true
	case strings.Contains(kind, "obstructing"):
		return DismissalObstructingField, true
	case strings.Contains(kind, "hit ball twice"):
		return DismissalHitBallTwice, true
	default:
		return "", false
	}
}

// Delivery is one ball bowled within one innings of one match, the
// finest-grained fact record in the schema. (MatchID, InningNumber,
// OverNumber, BallInOver) is the natural key; writes are upserts on it, so
// re-imports update in place. Rows are owned by their Match and only removed
// by cascade.
type Delivery struct {
	ID                int            `db:"id"`
	MatchID           int            `db:"match_id"`
	InningNumber      int            `db:"inning_number"`
	OverNumber        int            `db:"over_number"`
	BallInOver        int            `db:"ball_in_over"`
	BattingTeamID     int            `db:"batting_team_id"`
	BowlingTeamID     int            `db:"bowling_team_id"`
	StrikerID         int            `db:"striker_id"`
	NonStrikerID      int            `db:"non_striker_id"`
	BowlerID          int            `db:"bowler_id"`
	RunsBatsman       int            `db:"runs_batsman"`
	RunsExtras        int            `db:"runs_extras"`
	RunsTotal         int            `db:"runs_total"`
	IsWide            bool           `db:"is_wide"`
	IsNoBall          bool           `db:"is_no_ball"`
	IsBye             bool           `db:"is_bye"`
	IsLegBye          bool           `db:"is_leg_bye"`
	IsPenalty         bool           `db:"is_penalty"`
	DismissalKind     sql.NullString `db:"dismissal_kind"`
	DismissedPlayerID sql.NullInt32  `db:"dismissed_player_id"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}
