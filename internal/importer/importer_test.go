package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"boundary_insights/ingestion/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with the same resolution semantics as the
// Postgres repositories: seasons unique by year with refreshed names, teams
// unique by name, players find-first-by-name, delivery upserts keyed by
// (match, inning, over, ball).
type fakeStore struct {
	seasons    map[int]*models.Season
	teams      map[string]int
	players    []*models.Player
	matches    map[string]*models.Match
	deliveries map[int]map[string]*models.Delivery
	nextID     int
	failImport error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seasons:    make(map[int]*models.Season),
		teams:      make(map[string]int),
		matches:    make(map[string]*models.Match),
		deliveries: make(map[int]map[string]*models.Delivery),
	}
}

func (s *fakeStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) GetOrCreateSeason(ctx context.Context, year int, name string) (int, error) {
	if season, ok := s.seasons[year]; ok {
		season.Name = name
		return season.ID, nil
	}
	season := &models.Season{ID: s.id(), Year: year, Name: name}
	s.seasons[year] = season
	return season.ID, nil
}

func (s *fakeStore) GetOrCreateTeam(ctx context.Context, name string) (int, error) {
	if id, ok := s.teams[name]; ok {
		return id, nil
	}
	id := s.id()
	s.teams[name] = id
	return id, nil
}

func (s *fakeStore) FindOrCreatePlayer(ctx context.Context, name string) (int, error) {
	for _, p := range s.players {
		if p.Name == name {
			return p.ID, nil
		}
	}
	p := &models.Player{ID: s.id(), Name: name}
	s.players = append(s.players, p)
	return p.ID, nil
}

func (s *fakeStore) FindMatchByExternalKey(ctx context.Context, externalKey string) (*models.Match, error) {
	return s.matches[externalKey], nil
}

func (s *fakeStore) MatchHasDeliveries(ctx context.Context, matchID int) (bool, error) {
	return len(s.deliveries[matchID]) > 0, nil
}

func (s *fakeStore) ImportMatch(ctx context.Context, match *models.Match, deliveries []*models.Delivery) error {
	if s.failImport != nil {
		return s.failImport
	}
	if match.ID == 0 {
		match.ID = s.id()
		s.matches[match.ExternalKey] = match
	}
	balls := s.deliveries[match.ID]
	if balls == nil {
		balls = make(map[string]*models.Delivery)
		s.deliveries[match.ID] = balls
	}
	for _, d := range deliveries {
		d.MatchID = match.ID
		key := fmt.Sprintf("%d/%d/%d", d.InningNumber, d.OverNumber, d.BallInOver)
		balls[key] = d
	}
	return nil
}

func (s *fakeStore) teamName(id int) string {
	for name, tid := range s.teams {
		if tid == id {
			return name
		}
	}
	return ""
}

func (s *fakeStore) playerName(id int) string {
	for _, p := range s.players {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (s *fakeStore) matchDeliveries(matchID int) []*models.Delivery {
	var out []*models.Delivery
	for _, d := range s.deliveries[matchID] {
		out = append(out, d)
	}
	return out
}

// writeDataRoot lays out the fixed dataset structure and returns the root.
func writeDataRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, MatchInfoDir), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, CommentaryDir), 0o755))
	return root
}

func writeInfo(t *testing.T, root, base, content string) {
	t.Helper()
	path := filepath.Join(root, MatchInfoDir, base+"_info.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeCommentary(t *testing.T, root, base string, inning int, content string) {
	t.Helper()
	name := fmt.Sprintf("innings_%d_%s_match_innings_%d_commentary.json", inning, base, inning)
	path := filepath.Join(root, CommentaryDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const matchInfo501 = `{
	"match_id": 501,
	"competition": {"season": 2023},
	"teama": {"team_id": 10, "name": "Mumbai Indians"},
	"teamb": {"team_id": 20, "name": "Chennai Super Kings"},
	"date_start": "2023-04-12 19:30:00",
	"venue": {"name": "Wankhede Stadium", "location": "Mumbai"},
	"toss": {"winner": 10, "decision": 1},
	"winning_team_id": 20,
	"result_type": 2,
	"match_dls_affected": false,
	"umpires": "Nitin Menon, Anil Chaudhary"
}`

const commentary501 = `{
	"inning": {"number": 1, "batting_team_id": 10, "fielding_team_id": 20},
	"teams": [
		{"tid": 10, "title": "Mumbai Indians"},
		{"tid": 20, "title": "Chennai Super Kings"}
	],
	"players": [
		{"pid": 101, "title": "Rohit Sharma"},
		{"pid": 102, "title": "Ishan Kishan"},
		{"pid": 201, "title": "Deepak Chahar"}
	],
	"commentaries": [
		{
			"over": 0, "ball": 1,
			"batsman_id": 101, "bowler_id": 201,
			"run": 1, "bat_run": 0,
			"wideball": false, "noball": false,
			"bye_run": 0, "legbye_run": 1, "penalty_run": 0,
			"batsmen": [{"batsman_id": 101}, {"batsman_id": 102}]
		},
		{
			"over": 0, "ball": 2,
			"batsman_id": 101, "bowler_id": 201,
			"run": 4, "bat_run": 4,
			"wideball": false, "noball": false,
			"batsmen": [{"batsman_id": 101}, {"batsman_id": 102}]
		}
	]
}`

func runImport(t *testing.T, store Store, root string) Summary {
	t.Helper()
	summary, err := ImportDataRoot(context.Background(), store, root, zerolog.Nop())
	require.NoError(t, err)
	return summary
}

func TestImportDataRoot(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, commentary501)

	store := newFakeStore()
	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.FilesFound)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.DeliveriesUpserted)
	assert.Equal(t, 0, summary.DeliveriesDropped)
	assert.Equal(t, 0, summary.Failed)

	match := store.matches["501"]
	require.NotNil(t, match, "The external key is the string form of match_id")

	assert.Equal(t, "Mumbai Indians", store.teamName(match.HomeTeamID))
	assert.Equal(t, "Chennai Super Kings", store.teamName(match.AwayTeamID))
	assert.Equal(t, "IPL 2023", store.seasons[2023].Name)

	require.True(t, match.TossWinnerTeamID.Valid)
	assert.Equal(t, match.HomeTeamID, int(match.TossWinnerTeamID.Int32))
	assert.Equal(t, "BAT", match.TossDecision.String)
	assert.Equal(t, "NORMAL", match.ResultType.String)
	require.True(t, match.WinnerTeamID.Valid)
	assert.Equal(t, match.AwayTeamID, int(match.WinnerTeamID.Int32))

	assert.Equal(t, "Wankhede Stadium", match.Venue.String)
	assert.Equal(t, "Mumbai", match.City.String)
	assert.Equal(t, "2023-04-12T19:30:00Z", match.MatchDate.UTC().Format("2006-01-02T15:04:05Z"))
	assert.False(t, match.DLApplied)
	assert.Equal(t, "Nitin Menon", match.Umpire1.String)
	assert.Equal(t, "Anil Chaudhary", match.Umpire2.String)

	deliveries := store.matchDeliveries(match.ID)
	require.Len(t, deliveries, 2)

	for _, d := range deliveries {
		assert.Equal(t, 1, d.InningNumber)
		assert.Equal(t, "Rohit Sharma", store.playerName(d.StrikerID))
		assert.Equal(t, "Ishan Kishan", store.playerName(d.NonStrikerID))
		assert.Equal(t, "Deepak Chahar", store.playerName(d.BowlerID))
		assert.Equal(t, match.HomeTeamID, d.BattingTeamID)
		assert.Equal(t, match.AwayTeamID, d.BowlingTeamID)

		if d.BallInOver == 1 {
			assert.Equal(t, 1, d.RunsTotal)
			assert.Equal(t, 0, d.RunsBatsman)
			assert.Equal(t, 1, d.RunsExtras)
			assert.True(t, d.IsLegBye)
			assert.False(t, d.IsBye)
		} else {
			assert.Equal(t, 4, d.RunsTotal)
			assert.Equal(t, 4, d.RunsBatsman)
			assert.Equal(t, 0, d.RunsExtras)
		}
		assert.False(t, d.IsWide)
		assert.False(t, d.IsNoBall)
		assert.False(t, d.DismissalKind.Valid)
	}
}

func TestImportDataRoot_Idempotent(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, commentary501)

	store := newFakeStore()
	runImport(t, store, root)

	playerCount := len(store.players)
	teamCount := len(store.teams)
	match := store.matches["501"]

	summary := runImport(t, store, root)

	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 1, summary.SkippedImported)
	assert.Equal(t, 0, summary.DeliveriesUpserted)

	assert.Len(t, store.players, playerCount, "A re-run must not create players")
	assert.Len(t, store.teams, teamCount, "A re-run must not create teams")
	assert.Same(t, match, store.matches["501"], "A re-run must not replace the match")
	assert.Len(t, store.matchDeliveries(match.ID), 2)
}

func TestImportFile_ReusesMatchWithoutDeliveries(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, commentary501)

	// A previous run created the match but failed before any delivery stuck
	store := newFakeStore()
	seeded := &models.Match{ID: 77, ExternalKey: "501"}
	store.matches["501"] = seeded

	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.Imported)
	assert.Same(t, seeded, store.matches["501"], "The existing match row is reused, not recreated")
	assert.Len(t, store.matchDeliveries(77), 2)
}

func TestImportFile_SkipsWithoutMatchInfoJoin(t *testing.T) {
	root := writeDataRoot(t)
	writeCommentary(t, root, "orphan", 1, commentary501)

	store := newFakeStore()
	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.SkippedNoJoin)
	assert.Equal(t, 0, summary.Imported)
	assert.Empty(t, store.matches)
	assert.Empty(t, store.players, "No entities may be created for an unjoined file")
}

func TestImportFile_DropsMalformedOvers(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, `{
		"inning": {"number": 1, "batting_team_id": 10, "fielding_team_id": 20},
		"players": [{"pid": 101, "title": "Rohit Sharma"}, {"pid": 201, "title": "Deepak Chahar"}],
		"commentaries": [
			{"over": "abandoned", "ball": 1, "batsman_id": 101, "bowler_id": 201, "run": 4, "bat_run": 4},
			{"over": 0, "ball": 3, "batsman_id": 101, "bowler_id": 201, "run": 6, "bat_run": 6},
			{"over": 0, "batsman_id": 101, "bowler_id": 201, "run": 1, "bat_run": 1}
		]
	}`)

	store := newFakeStore()
	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.DeliveriesUpserted, "Well-formed siblings still import")
	assert.Equal(t, 2, summary.DeliveriesDropped, "Non-numeric over and missing ball are both dropped")

	match := store.matches["501"]
	require.NotNil(t, match)
	deliveries := store.matchDeliveries(match.ID)
	require.Len(t, deliveries, 1)
	assert.Equal(t, 6, deliveries[0].RunsTotal)
}

func TestImportFile_ExtrasNeverNegative(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, `{
		"inning": {"number": 1, "batting_team_id": 10, "fielding_team_id": 20},
		"players": [{"pid": 101, "title": "Rohit Sharma"}, {"pid": 201, "title": "Deepak Chahar"}],
		"commentaries": [
			{"over": 0, "ball": 1, "batsman_id": 101, "bowler_id": 201, "run": 1, "bat_run": 4}
		]
	}`)

	store := newFakeStore()
	runImport(t, store, root)

	match := store.matches["501"]
	require.NotNil(t, match)
	deliveries := store.matchDeliveries(match.ID)
	require.Len(t, deliveries, 1)

	assert.Equal(t, 1, deliveries[0].RunsTotal)
	assert.Equal(t, 4, deliveries[0].RunsBatsman)
	assert.Equal(t, 0, deliveries[0].RunsExtras, "bat_run > run clamps extras to zero")
}

func TestImportFile_DefaultSubstitution(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mystery", `{"match_id": 900}`)
	writeCommentary(t, root, "mystery", 1, `{
		"inning": {"number": 1},
		"commentaries": [
			{"over": 0, "ball": 1, "run": 1, "bat_run": 1}
		]
	}`)

	store := newFakeStore()
	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.Imported)

	match := store.matches["900"]
	require.NotNil(t, match)

	season := store.seasons[0]
	require.NotNil(t, season)
	assert.Equal(t, "Unknown Season", season.Name)

	assert.Equal(t, models.UnknownTeam, store.teamName(match.HomeTeamID))
	assert.Equal(t, match.HomeTeamID, match.AwayTeamID, "Both blank team names resolve to the same sentinel row")

	deliveries := store.matchDeliveries(match.ID)
	require.Len(t, deliveries, 1)
	assert.Equal(t, models.UnknownPlayer, store.playerName(deliveries[0].StrikerID))
	assert.Equal(t, deliveries[0].StrikerID, deliveries[0].BowlerID)
}

func TestImportFile_Dismissal(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 2, `{
		"inning": {"number": 2, "batting_team_id": 20, "fielding_team_id": 10},
		"players": [
			{"pid": 202, "title": "Ruturaj Gaikwad"},
			{"pid": 103, "title": "Jasprit Bumrah"}
		],
		"commentaries": [
			{
				"over": 5, "ball": 4,
				"batsman_id": 202, "bowler_id": 103,
				"run": 0, "bat_run": 0,
				"how_out": "Caught by Rohit Sharma",
				"wicket_batsman_id": 202
			}
		]
	}`)

	store := newFakeStore()
	runImport(t, store, root)

	match := store.matches["501"]
	require.NotNil(t, match)
	deliveries := store.matchDeliveries(match.ID)
	require.Len(t, deliveries, 1)

	d := deliveries[0]
	assert.Equal(t, 2, d.InningNumber)
	require.True(t, d.DismissalKind.Valid)
	assert.Equal(t, string(models.DismissalCaught), d.DismissalKind.String)
	require.True(t, d.DismissedPlayerID.Valid)
	assert.Equal(t, d.StrikerID, int(d.DismissedPlayerID.Int32))
	assert.Equal(t, "Chennai Super Kings", store.teamName(d.BattingTeamID))
}

func TestRun_FileFailureDoesNotAbortRun(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "bad_json", 1, `{not json at all`)
	writeCommentary(t, root, "mi_vs_csk", 1, commentary501)

	store := newFakeStore()
	summary := runImport(t, store, root)

	assert.Equal(t, 2, summary.FilesFound)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Imported)
	assert.NotNil(t, store.matches["501"], "A failing file must not block its siblings")
}

func TestRun_StoreFailureCountsFile(t *testing.T) {
	root := writeDataRoot(t)
	writeInfo(t, root, "mi_vs_csk", matchInfo501)
	writeCommentary(t, root, "mi_vs_csk", 1, commentary501)

	store := newFakeStore()
	store.failImport = fmt.Errorf("connection reset")

	summary := runImport(t, store, root)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Imported)
	assert.Empty(t, store.matches)
	assert.NotEmpty(t, store.players, "Entities resolved before the write survive the failure")
}

func TestImportDataRoot_MissingMatchInfoDirIsFatal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, CommentaryDir), 0o755))

	_, err := ImportDataRoot(context.Background(), newFakeStore(), root, zerolog.Nop())
	assert.Error(t, err)
}
