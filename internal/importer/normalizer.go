package importer

import (
	"context"
	"database/sql"

	"boundary_insights/ingestion/internal/feed"
	"boundary_insights/ingestion/internal/models"
)

// inningsScope carries the per-innings context every ball in a commentary
// document shares: the innings number, the resolved batting/bowling team
// ids, and the player roster map.
type inningsScope struct {
	inningNumber  int
	battingTeamID int
	bowlingTeamID int
	roster        map[int]string
}

// normalizeDelivery converts one raw ball record into a delivery row. The
// second return is false when the record's over or ball is not a finite
// number: partial delivery data is worse than a gap, so such records are
// dropped entirely (and silently, to keep a bad file from flooding the log).
func (imp *Importer) normalizeDelivery(ctx context.Context, scope inningsScope, rec feed.BallRecord) (*models.Delivery, bool, error) {
	if !rec.Over.Valid || !rec.Ball.Valid {
		return nil, false, nil
	}

	strikerPid := rec.BatsmanID.Or(0)
	strikerID, err := imp.resolver.Player(ctx, scope.roster[strikerPid])
	if err != nil {
		return nil, false, err
	}

	bowlerID, err := imp.resolver.Player(ctx, scope.roster[rec.BowlerID.Or(0)])
	if err != nil {
		return nil, false, err
	}

	// Non-striker: the other batsman in the ball's batsmen array. Roster
	// misses (and an absent array) fall back to the default player.
	var nonStrikerName string
	for _, b := range rec.Batsmen {
		if pid := b.BatsmanID.Or(0); pid != 0 && pid != strikerPid {
			nonStrikerName = scope.roster[pid]
			break
		}
	}
	nonStrikerID, err := imp.resolver.Player(ctx, nonStrikerName)
	if err != nil {
		return nil, false, err
	}

	runsTotal := rec.Run.Or(0)
	runsBatsman := rec.BatRun.Or(0)
	// Extras are never negative, even when the source reports bat_run > run
	runsExtras := max(0, runsTotal-runsBatsman)

	d := &models.Delivery{
		InningNumber:  scope.inningNumber,
		OverNumber:    rec.Over.Value,
		BallInOver:    rec.Ball.Value,
		BattingTeamID: scope.battingTeamID,
		BowlingTeamID: scope.bowlingTeamID,
		StrikerID:     strikerID,
		NonStrikerID:  nonStrikerID,
		BowlerID:      bowlerID,
		RunsBatsman:   runsBatsman,
		RunsExtras:    runsExtras,
		RunsTotal:     runsTotal,
		IsWide:        rec.Wideball.Value,
		IsNoBall:      rec.Noball.Value,
		IsBye:         rec.ByeRun.Or(0) > 0,
		IsLegBye:      rec.LegbyeRun.Or(0) > 0,
		IsPenalty:     rec.PenaltyRun.Or(0) > 0,
	}

	if kind, ok := models.ParseDismissalKind(rec.HowOut); ok {
		d.DismissalKind = sql.NullString{String: string(kind), Valid: true}
	}

	if pid := rec.WicketBatsmanID.Or(0); pid != 0 {
		dismissedID, err := imp.resolver.Player(ctx, scope.roster[pid])
		if err != nil {
			return nil, false, err
		}
		d.DismissedPlayerID = sql.NullInt32{Int32: int32(dismissedID), Valid: true}
	}

	return d, true, nil
}
