package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"boundary_insights/ingestion/internal/feed"
	"boundary_insights/ingestion/internal/models"

	"github.com/rs/zerolog"
)

// Fixed dataset layout under the data root.
const (
	MatchInfoDir  = "match_info"
	CommentaryDir = "match_innings_commentary"
)

// Outcome is the terminal state of one commentary file.
type Outcome int

const (
	// OutcomeImported means the match row and every normalized delivery
	// were committed.
	OutcomeImported Outcome = iota
	// OutcomeSkippedNoJoin means no match-info record joined to the file's
	// derived basename. Expected given the dataset's completeness gaps.
	OutcomeSkippedNoJoin
	// OutcomeSkippedAlreadyImported means the external key already has
	// deliveries attached, so the file was a no-op.
	OutcomeSkippedAlreadyImported
)

// FileReport describes what one file contributed.
type FileReport struct {
	Outcome    Outcome
	Deliveries int
	Dropped    int
}

// Summary aggregates a full run.
type Summary struct {
	FilesFound         int
	Imported           int
	SkippedNoJoin      int
	SkippedImported    int
	Failed             int
	DeliveriesUpserted int
	DeliveriesDropped  int
}

// Importer drives the per-file import state machine: join commentary to
// match-info via the filename-derived key, short-circuit already-imported
// matches, resolve entities, normalize deliveries, and commit each file as
// one atomic unit. Files are processed strictly sequentially; concurrent
// importer runs are unsafe (see Resolver.Player) and are fenced off by the
// caller's run lock.
type Importer struct {
	store    Store
	index    *feed.Index
	resolver *Resolver
	log      zerolog.Logger
	now      func() time.Time
}

// New creates an importer over a read-only match-info index.
func New(store Store, index *feed.Index, logger zerolog.Logger) *Importer {
	return &Importer{
		store:    store,
		index:    index,
		resolver: NewResolver(store),
		log:      logger,
		now:      time.Now,
	}
}

// ImportDataRoot builds the match-info index under dataRoot and imports every
// commentary file found there. Index-build and directory-scan failures are
// returned (run-fatal); per-file failures are logged and counted.
func ImportDataRoot(ctx context.Context, store Store, dataRoot string, logger zerolog.Logger) (Summary, error) {
	index, err := feed.BuildIndex(filepath.Join(dataRoot, MatchInfoDir))
	if err != nil {
		return Summary{}, err
	}

	imp := New(store, index, logger)
	return imp.Run(ctx, filepath.Join(dataRoot, CommentaryDir))
}

// Run imports every commentary file under commentaryDir, one at a time, in
// discovery order. A failing file is logged and skipped; the run continues.
func (imp *Importer) Run(ctx context.Context, commentaryDir string) (Summary, error) {
	files, err := feed.WalkJSONFiles(commentaryDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to scan commentary directory: %w", err)
	}

	summary := Summary{FilesFound: len(files)}
	imp.log.Info().Int("count", len(files)).Str("dir", commentaryDir).Msg("Commentary files discovered")

	for _, path := range files {
		report, err := imp.ImportFile(ctx, path)
		if err != nil {
			imp.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("Failed to import commentary file")
			summary.Failed++
			continue
		}

		summary.DeliveriesUpserted += report.Deliveries
		summary.DeliveriesDropped += report.Dropped

		switch report.Outcome {
		case OutcomeImported:
			summary.Imported++
		case OutcomeSkippedNoJoin:
			summary.SkippedNoJoin++
		case OutcomeSkippedAlreadyImported:
			summary.SkippedImported++
		}
	}

	imp.log.Info().
		Int("files", summary.FilesFound).
		Int("imported", summary.Imported).
		Int("skipped_no_join", summary.SkippedNoJoin).
		Int("skipped_already_imported", summary.SkippedImported).
		Int("failed", summary.Failed).
		Int("deliveries", summary.DeliveriesUpserted).
		Msg("Import run complete")

	return summary, nil
}

// ImportFile runs the state machine for a single commentary file.
func (imp *Importer) ImportFile(ctx context.Context, path string) (FileReport, error) {
	fileName := filepath.Base(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("failed to read commentary file: %w", err)
	}

	var doc feed.CommentaryInnings
	if err := json.Unmarshal(raw, &doc); err != nil {
		return FileReport{}, fmt.Errorf("failed to parse commentary file: %w", err)
	}

	var info *feed.MatchInfo
	if base, ok := feed.CommentaryBase(fileName); ok {
		info, _ = imp.index.Lookup(base)
	}
	if info == nil {
		imp.log.Warn().Str("file", fileName).Msg("Skipping commentary file: no match-info join")
		return FileReport{Outcome: OutcomeSkippedNoJoin}, nil
	}

	externalKey := strconv.Itoa(info.MatchID.Value)

	existing, err := imp.store.FindMatchByExternalKey(ctx, externalKey)
	if err != nil {
		return FileReport{}, err
	}
	if existing != nil {
		imported, err := imp.store.MatchHasDeliveries(ctx, existing.ID)
		if err != nil {
			return FileReport{}, err
		}
		if imported {
			return FileReport{Outcome: OutcomeSkippedAlreadyImported}, nil
		}
	}

	// A match without deliveries is reused; its deliveries are (re)written
	match := existing
	if match == nil {
		match, err = imp.buildMatch(ctx, externalKey, info)
		if err != nil {
			return FileReport{}, err
		}
	}

	scope, err := imp.inningsScope(ctx, info, &doc)
	if err != nil {
		return FileReport{}, err
	}

	var deliveries []*models.Delivery
	dropped := 0
	for i := range doc.Commentaries {
		d, ok, err := imp.normalizeDelivery(ctx, scope, doc.Commentaries[i])
		if err != nil {
			return FileReport{}, err
		}
		if !ok {
			dropped++
			continue
		}
		deliveries = append(deliveries, d)
	}

	if err := imp.store.ImportMatch(ctx, match, deliveries); err != nil {
		return FileReport{}, err
	}

	imp.log.Info().
		Str("file", fileName).
		Str("external_key", externalKey).
		Int("inning", scope.inningNumber).
		Int("deliveries", len(deliveries)).
		Int("dropped", dropped).
		Msg("Commentary file imported")

	return FileReport{Outcome: OutcomeImported, Deliveries: len(deliveries), Dropped: dropped}, nil
}

// buildMatch resolves every entity a new match row references and assembles
// the row. Resolution happens before the write transaction opens, so entity
// rows created here survive even if the file later fails.
func (imp *Importer) buildMatch(ctx context.Context, externalKey string, info *feed.MatchInfo) (*models.Match, error) {
	seasonID, err := imp.resolver.Season(ctx, info.Competition.Season)
	if err != nil {
		return nil, err
	}

	homeTeamID, err := imp.resolver.Team(ctx, info.TeamA.Name)
	if err != nil {
		return nil, err
	}
	awayTeamID, err := imp.resolver.Team(ctx, info.TeamB.Name)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		ExternalKey: externalKey,
		SeasonID:    seasonID,
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		Venue:       nullString(info.Venue.Name),
		City:        nullString(info.Venue.Location),
		DLApplied:   info.MatchDLSAffected.Value,
	}

	// toss.winner and winning_team_id are source team ids; an id that does
	// not resolve against teama/teamb leaves the column NULL
	if name, ok := info.TeamNameByID(info.Toss.Winner.Or(0)); ok {
		id, err := imp.resolver.Team(ctx, name)
		if err != nil {
			return nil, err
		}
		match.TossWinnerTeamID = sql.NullInt32{Int32: int32(id), Valid: true}
	}
	if decision, ok := models.ParseTossDecision(info.Toss.Decision.Or(0)); ok {
		match.TossDecision = nullString(string(decision))
	}

	if result, ok := models.ParseResultType(info.ResultType.Or(0)); ok {
		match.ResultType = nullString(string(result))
	}
	if name, ok := info.TeamNameByID(info.WinningTeamID.Or(0)); ok {
		id, err := imp.resolver.Team(ctx, name)
		if err != nil {
			return nil, err
		}
		match.WinnerTeamID = sql.NullInt32{Int32: int32(id), Valid: true}
	}

	date, ok := info.StartTime()
	if !ok {
		// Known weak fallback, preserved pending product guidance
		date = imp.now()
	}
	match.MatchDate = date

	u1, u2 := info.UmpireNames()
	match.Umpire1 = nullString(u1)
	match.Umpire2 = nullString(u2)

	return match, nil
}

// inningsScope resolves the innings-level batting/bowling team ids, preferring
// match-info team names over the commentary document's own team list.
func (imp *Importer) inningsScope(ctx context.Context, info *feed.MatchInfo, doc *feed.CommentaryInnings) (inningsScope, error) {
	battingTid := doc.Inning.BattingTeamID.Or(0)
	bowlingTid := doc.Inning.FieldingTeamID.Or(0)

	battingName, ok := info.TeamNameByID(battingTid)
	if !ok {
		battingName, _ = doc.TeamTitle(battingTid)
	}
	bowlingName, ok := info.TeamNameByID(bowlingTid)
	if !ok {
		bowlingName, _ = doc.TeamTitle(bowlingTid)
	}

	battingTeamID, err := imp.resolver.Team(ctx, battingName)
	if err != nil {
		return inningsScope{}, err
	}
	bowlingTeamID, err := imp.resolver.Team(ctx, bowlingName)
	if err != nil {
		return inningsScope{}, err
	}

	return inningsScope{
		inningNumber:  doc.Inning.Number.Or(0),
		battingTeamID: battingTeamID,
		bowlingTeamID: bowlingTeamID,
		roster:        doc.PlayerNames(),
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
