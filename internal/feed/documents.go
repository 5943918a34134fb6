package feed

import (
	"strings"
	"time"
)

// MatchInfo is the raw match metadata document stored under
// <data-root>/match_info/. One document per match. All fields are optional;
// consumers apply explicit fallbacks.
type MatchInfo struct {
	MatchID     FlexInt `json:"match_id"`
	Title       string  `json:"title"`
	ShortTitle  string  `json:"short_title"`
	Competition struct {
		Season FlexInt `json:"season"`
		Abbr   string  `json:"abbr"`
		Title  string  `json:"title"`
	} `json:"competition"`
	TeamA          TeamDescriptor `json:"teama"`
	TeamB          TeamDescriptor `json:"teamb"`
	DateStart      string         `json:"date_start"`
	TimestampStart FlexInt        `json:"timestamp_start"`
	Venue          struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"venue"`
	Toss struct {
		Winner   FlexInt `json:"winner"`
		Decision FlexInt `json:"decision"`
		Text     string  `json:"text"`
	} `json:"toss"`
	WinningTeamID    FlexInt  `json:"winning_team_id"`
	ResultType       FlexInt  `json:"result_type"`
	StatusNote       string   `json:"status_note"`
	MatchDLSAffected FlexBool `json:"match_dls_affected"`
	Umpires          string   `json:"umpires"`
}

// TeamDescriptor is a team reference inside a match-info document.
type TeamDescriptor struct {
	TeamID    FlexInt `json:"team_id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
}

// TeamNameByID resolves a source team id against teama/teamb. Match-info is
// the canonical source for team identity; team names in the commentary
// payload are second choice.
func (m *MatchInfo) TeamNameByID(id int) (string, bool) {
	if id == 0 {
		return "", false
	}
	for _, t := range []TeamDescriptor{m.TeamA, m.TeamB} {
		name := strings.TrimSpace(t.Name)
		if t.TeamID.Valid && t.TeamID.Value == id && name != "" {
			return name, true
		}
	}
	return "", false
}

// StartTime derives the match start from date_start ("2023-04-12 19:30:00",
// wall-clock UTC) or, failing that, the epoch-seconds timestamp_start. The
// second return is false when neither field yields a usable time; the caller
// decides the fallback.
func (m *MatchInfo) StartTime() (time.Time, bool) {
	if m.DateStart != "" {
		s := strings.Replace(strings.TrimSpace(m.DateStart), " ", "T", 1) + "Z"
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	if m.TimestampStart.Valid && m.TimestampStart.Value > 0 {
		return time.Unix(int64(m.TimestampStart.Value), 0).UTC(), true
	}
	return time.Time{}, false
}

// UmpireNames splits the comma-separated umpires string; only the first two
// entries are kept.
func (m *MatchInfo) UmpireNames() (string, string) {
	if m.Umpires == "" {
		return "", ""
	}
	parts := strings.Split(m.Umpires, ",")
	var u1, u2 string
	if len(parts) > 0 {
		u1 = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		u2 = strings.TrimSpace(parts[1])
	}
	return u1, u2
}

// CommentaryInnings is the raw ball-by-ball document stored under
// <data-root>/match_innings_commentary/. One document per match-innings.
type CommentaryInnings struct {
	Inning struct {
		Number         FlexInt `json:"number"`
		BattingTeamID  FlexInt `json:"batting_team_id"`
		FieldingTeamID FlexInt `json:"fielding_team_id"`
	} `json:"inning"`
	Teams        []CommentaryTeam   `json:"teams"`
	Players      []CommentaryPlayer `json:"players"`
	Commentaries []BallRecord       `json:"commentaries"`
}

// CommentaryTeam is an entry in the document's own team roster.
type CommentaryTeam struct {
	TID   FlexInt `json:"tid"`
	Title string  `json:"title"`
	Abbr  string  `json:"abbr"`
}

// CommentaryPlayer is an entry in the document's player roster.
type CommentaryPlayer struct {
	PID   FlexInt `json:"pid"`
	Title string  `json:"title"`
	Role  string  `json:"role"`
}

// BallRecord is one ball bowled, as the source reports it.
type BallRecord struct {
	Over            FlexInt  `json:"over"`
	Ball            FlexInt  `json:"ball"`
	BatsmanID       FlexInt  `json:"batsman_id"`
	BowlerID        FlexInt  `json:"bowler_id"`
	Run             FlexInt  `json:"run"`
	BatRun          FlexInt  `json:"bat_run"`
	Wideball        FlexBool `json:"wideball"`
	Noball          FlexBool `json:"noball"`
	ByeRun          FlexInt  `json:"bye_run"`
	LegbyeRun       FlexInt  `json:"legbye_run"`
	PenaltyRun      FlexInt  `json:"penalty_run"`
	WicketBatsmanID FlexInt  `json:"wicket_batsman_id"`
	HowOut          string   `json:"how_out"`
	Batsmen         []struct {
		BatsmanID FlexInt `json:"batsman_id"`
	} `json:"batsmen"`
}

// PlayerNames builds the player-id to display-name roster map.
func (c *CommentaryInnings) PlayerNames() map[int]string {
	names := make(map[int]string, len(c.Players))
	for _, p := range c.Players {
		if p.PID.Valid {
			names[p.PID.Value] = strings.TrimSpace(p.Title)
		}
	}
	return names
}

// TeamTitle resolves a team id against the document's own team list.
func (c *CommentaryInnings) TeamTitle(tid int) (string, bool) {
	if tid == 0 {
		return "", false
	}
	for _, t := range c.Teams {
		title := strings.TrimSpace(t.Title)
		if t.TID.Valid && t.TID.Value == tid && title != "" {
			return title, true
		}
	}
	return "", false
}
