package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mi_vs_csk_info.json", `{"match_id": 501, "teama": {"team_id": 10, "name": "Mumbai Indians"}}`)
	writeFile(t, dir, "rcb_vs_kkr_info.json", `{"match_id": "502"}`)
	writeFile(t, dir, "broken_info.json", `{not json`)
	writeFile(t, dir, "no_id_info.json", `{"title": "abandoned fixture"}`)
	writeFile(t, dir, "not_an_info_file.json", `{"match_id": 503}`)

	ix, err := BuildIndex(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, 3, ix.Skipped())

	info, ok := ix.Lookup("mi_vs_csk")
	require.True(t, ok)
	assert.Equal(t, 501, info.MatchID.Value)
	assert.Equal(t, "Mumbai Indians", info.TeamA.Name)

	// String-typed match_id still indexes
	info, ok = ix.Lookup("rcb_vs_kkr")
	require.True(t, ok)
	assert.Equal(t, 502, info.MatchID.Value)

	_, ok = ix.Lookup("no_id")
	assert.False(t, ok, "Documents without a match_id must not be indexed")
}

func TestBuildIndex_MissingDir(t *testing.T) {
	_, err := BuildIndex(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err, "An unreadable match-info directory fails the whole run")
}

func TestMatchInfoDocumentParsing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "full_info.json", `{
		"match_id": 900,
		"competition": {"season": "2023"},
		"teama": {"team_id": 1, "name": " Mumbai Indians "},
		"teamb": {"team_id": 2, "name": "Chennai Super Kings"},
		"date_start": "2023-04-12 19:30:00",
		"venue": {"name": "Wankhede Stadium", "location": "Mumbai"},
		"toss": {"winner": 1, "decision": 2},
		"winning_team_id": 2,
		"result_type": 2,
		"match_dls_affected": "TRUE",
		"umpires": "Nitin Menon, Anil Chaudhary, Chris Gaffaney"
	}`)

	ix, err := BuildIndex(dir)
	require.NoError(t, err)

	info, ok := ix.Lookup("full")
	require.True(t, ok)

	assert.Equal(t, 2023, info.Competition.Season.Value)
	assert.True(t, info.MatchDLSAffected.Value)

	name, ok := info.TeamNameByID(2)
	require.True(t, ok)
	assert.Equal(t, "Chennai Super Kings", name)

	_, ok = info.TeamNameByID(99)
	assert.False(t, ok, "Unknown team ids must not resolve")

	start, ok := info.StartTime()
	require.True(t, ok)
	assert.Equal(t, "2023-04-12T19:30:00Z", start.Format("2006-01-02T15:04:05Z"))

	u1, u2 := info.UmpireNames()
	assert.Equal(t, "Nitin Menon", u1)
	assert.Equal(t, "Anil Chaudhary", u2, "Only the first two umpires are kept")
}

func TestMatchInfoStartTimeFallbacks(t *testing.T) {
	var info MatchInfo
	_, ok := info.StartTime()
	assert.False(t, ok, "No date fields means no start time")

	info.TimestampStart = FlexInt{Value: 1681327800, Valid: true}
	start, ok := info.StartTime()
	require.True(t, ok)
	assert.Equal(t, int64(1681327800), start.Unix())

	info.DateStart = "2023-04-12 19:30:00"
	start, ok = info.StartTime()
	require.True(t, ok)
	assert.Equal(t, "2023-04-12T19:30:00Z", start.UTC().Format("2006-01-02T15:04:05Z"), "date_start wins over timestamp_start")
}
