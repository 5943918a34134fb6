package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion service

var (
	// Import run metrics
	ImportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boundary_import_runs_total",
			Help: "Total number of import runs",
		},
		[]string{"status"},
	)

	ImportRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boundary_import_run_duration_seconds",
			Help:    "Duration of full import runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	LastSuccessfulImport = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_last_successful_import_timestamp",
			Help: "Timestamp of the last successful import run",
		},
	)

	// Per-file outcome metrics
	CommentaryFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boundary_commentary_files_total",
			Help: "Commentary files processed, by terminal state",
		},
		[]string{"outcome"},
	)

	// Delivery metrics
	DeliveriesUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boundary_deliveries_upserted_total",
			Help: "Total number of delivery rows written",
		},
	)

	DeliveriesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boundary_deliveries_dropped_total",
			Help: "Ball records dropped for unparseable over/ball numbers",
		},
	)

	// Database metrics
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Ingested totals (refreshed after each run)
	MatchesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_matches_ingested_total",
			Help: "Total number of matches in database",
		},
	)

	TeamsIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_teams_ingested_total",
			Help: "Total number of teams in database",
		},
	)

	PlayersIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_players_ingested_total",
			Help: "Total number of players in database",
		},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boundary_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)
)

// File outcome label values
const (
	OutcomeImported        = "imported"
	OutcomeSkippedNoJoin   = "skipped_no_join"
	OutcomeSkippedImported = "skipped_already_imported"
	OutcomeFailed          = "failed"
)

// RecordImportRun records the result of a full import run
func RecordImportRun(status string, duration float64) {
	ImportRunsTotal.WithLabelValues(status).Inc()
	ImportRunDuration.Observe(duration)

	if status == "success" {
		LastSuccessfulImport.SetToCurrentTime()
	}
}

// RecordFileOutcomes records per-file terminal state counts from a run
func RecordFileOutcomes(imported, skippedNoJoin, skippedImported, failed int) {
	CommentaryFilesTotal.WithLabelValues(OutcomeImported).Add(float64(imported))
	CommentaryFilesTotal.WithLabelValues(OutcomeSkippedNoJoin).Add(float64(skippedNoJoin))
	CommentaryFilesTotal.WithLabelValues(OutcomeSkippedImported).Add(float64(skippedImported))
	CommentaryFilesTotal.WithLabelValues(OutcomeFailed).Add(float64(failed))
}

// RecordDeliveries records delivery-level counts from a run
func RecordDeliveries(upserted, dropped int) {
	DeliveriesUpserted.Add(float64(upserted))
	DeliveriesDropped.Add(float64(dropped))
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// UpdateIngestionStats updates ingested entity totals
func UpdateIngestionStats(matches, teams, players int64) {
	MatchesIngested.Set(float64(matches))
	TeamsIngested.Set(float64(teams))
	PlayersIngested.Set(float64(players))
}
