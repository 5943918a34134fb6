package scheduler

import (
	"context"
	"fmt"
	"time"

	"boundary_insights/ingestion/internal/config"
	"boundary_insights/ingestion/internal/importer"
	"boundary_insights/ingestion/internal/lock"
	"boundary_insights/ingestion/internal/metrics"
	"boundary_insights/ingestion/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler re-runs the import on a cron schedule. Re-running is safe because
// the import is idempotent: fully-imported matches are skipped and delivery
// writes are upserts. The match-info index is rebuilt for every run so files
// added to the data root between runs are picked up.
type Scheduler struct {
	cfg     *config.Config
	db      *repository.Database
	runLock *lock.RunLock
	cron    *cron.Cron
}

// NewScheduler creates a new scheduler instance. runLock may be nil, in which
// case runs proceed unfenced.
func NewScheduler(cfg *config.Config, db *repository.Database, runLock *lock.RunLock) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		db:      db,
		runLock: runLock,
		// A run that outlasts its cron interval must not overlap itself
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the periodic import and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.ImportCron, func() {
		log.Info().Msg("Running scheduled import...")
		s.RunImport(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule import: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.ImportCron).
		Msg("Periodic import scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Info().Msg("Scheduler stopped")
}

// RunImport executes one full import run and records its metrics. Run
// failures are logged, not propagated: a failed scheduled run waits for the
// next tick.
func (s *Scheduler) RunImport(ctx context.Context) {
	if s.runLock != nil {
		acquired, err := s.runLock.Acquire(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Run lock unavailable, continuing without it")
		} else if !acquired {
			log.Warn().Msg("Another import run holds the lock, skipping this run")
			return
		} else {
			defer func() {
				if err := s.runLock.Release(context.Background()); err != nil {
					log.Warn().Err(err).Msg("Failed to release run lock")
				}
			}()
		}
	}

	start := time.Now()

	summary, err := importer.ImportDataRoot(ctx, s.db, s.cfg.DataRoot, log.Logger)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordImportRun("failure", duration.Seconds())
		log.Error().Err(err).Dur("duration", duration).Msg("Import run failed")
		return
	}

	metrics.RecordImportRun("success", duration.Seconds())
	metrics.RecordFileOutcomes(summary.Imported, summary.SkippedNoJoin, summary.SkippedImported, summary.Failed)
	metrics.RecordDeliveries(summary.DeliveriesUpserted, summary.DeliveriesDropped)

	s.refreshIngestionStats(ctx)

	log.Info().
		Int("imported", summary.Imported).
		Int("failed", summary.Failed).
		Dur("duration", duration).
		Msg("Scheduled import complete")
}

// refreshIngestionStats updates the entity-count gauges after a run
func (s *Scheduler) refreshIngestionStats(ctx context.Context) {
	matches, err := s.db.Matches.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count matches")
		return
	}
	teams, err := s.db.Teams.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count teams")
		return
	}
	players, err := s.db.Players.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count players")
		return
	}

	metrics.UpdateIngestionStats(int64(matches), int64(teams), int64(players))

	stat := s.db.Pool.Stat()
	metrics.UpdateDBConnectionStats(stat.AcquiredConns(), stat.IdleConns())
}
