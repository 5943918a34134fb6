package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"boundary_insights/ingestion/internal/config"
	"boundary_insights/ingestion/internal/importer"
	"boundary_insights/ingestion/internal/lock"
	"boundary_insights/ingestion/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	setupLogger()

	log.Info().Msg("Starting Boundary Insights IPL Importer")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("data_root", cfg.DataRoot).
		Msg("Configuration loaded")

	ctx := context.Background()

	// Initialize database connection
	dbConfig := repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Take the run lock so two imports cannot interleave entity creation
	if cfg.RunLockEnabled {
		runLock, err := lock.New(ctx, lock.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RunLockKey,
			TTL:      cfg.RunLockTTL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without run lock")
		} else {
			defer runLock.Close()

			acquired, err := runLock.Acquire(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Run lock unavailable - continuing without it")
			} else if !acquired {
				log.Fatal().Str("key", cfg.RunLockKey).Msg("Another import run holds the lock")
			} else {
				log.Info().Str("key", cfg.RunLockKey).Msg("Run lock acquired")
				defer func() {
					if err := runLock.Release(context.Background()); err != nil {
						log.Warn().Err(err).Msg("Failed to release run lock")
					}
				}()
			}
		}
	}

	start := time.Now()

	summary, err := importer.ImportDataRoot(ctx, db, cfg.DataRoot, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Import run failed")
	}

	log.Info().
		Int("files_found", summary.FilesFound).
		Int("imported", summary.Imported).
		Int("skipped_no_join", summary.SkippedNoJoin).
		Int("skipped_already_imported", summary.SkippedImported).
		Int("failed", summary.Failed).
		Int("deliveries_upserted", summary.DeliveriesUpserted).
		Int("deliveries_dropped", summary.DeliveriesDropped).
		Dur("duration", time.Since(start)).
		Msg("Import run complete")

	if summary.Failed > 0 {
		log.Warn().Int("failed", summary.Failed).Msg("Some commentary files failed; re-run after fixing them")
	}
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
