package models

// Aggregated read models consumed by the dashboard API.

// TopBatsman ranks a player by total runs scored off the bat.
type TopBatsman struct {
	PlayerID   int    `db:"player_id"`
	PlayerName string `db:"player_name"`
	TotalRuns  int    `db:"total_runs"`
}

// TopBowler ranks a bowler by deliveries credited with a dismissal.
type TopBowler struct {
	PlayerID   int    `db:"player_id"`
	PlayerName string `db:"player_name"`
	Wickets    int    `db:"wickets"`
}

// TeamPerformance summarizes a team's results across all imported matches.
type TeamPerformance struct {
	TeamID        int    `db:"team_id"`
	TeamName      string `db:"team_name"`
	MatchesPlayed int    `db:"matches_played"`
	Wins          int    `db:"wins"`
	Losses        int    `db:"losses"`
	Ties          int    `db:"ties"`
	NoResults     int    `db:"no_results"`
}
