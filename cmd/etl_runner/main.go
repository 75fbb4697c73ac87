package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/salesops/sales_etl_app/internal/adapters/database/pgsql"
	"github.com/salesops/sales_etl_app/internal/adapters/extract"
	"github.com/salesops/sales_etl_app/internal/adapters/ledger"
	"github.com/salesops/sales_etl_app/internal/adapters/ratesource"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/services"
	"github.com/salesops/sales_etl_app/pkg/config"
	"github.com/salesops/sales_etl_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		os.Exit(1)
	}

	files, err := filepath.Glob(cfg.SalesCSVGlob)
	if err != nil {
		logger.Error("Invalid extract glob", slog.String("glob", cfg.SalesCSVGlob), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("No extract files matched", slog.String("glob", cfg.SalesCSVGlob))
		return
	}

	pipeline := services.NewPipelineService(
		extract.NewCSVExtractReader(),
		services.NewRateResolverService(ratesource.NewFrankfurterClient(cfg.RateAPIBaseURL, cfg.RateAPITimeout), logger),
		services.NewNormalizerService(logger),
		pgsql.NewPgxSalesStore(dbPool, logger),
		ledger.NewFileStore(cfg.LedgerPath),
		logger,
	)

	failed := 0
	for _, file := range files {
		result, err := pipeline.Run(ctx, file)
		if err != nil {
			failed++
			logger.Error("Run failed",
				slog.String("file", file),
				slog.String("error", err.Error()),
			)
			continue
		}
		if result.State == domain.RunSkipped {
			continue
		}
		counts := result.Load.Counts()
		logger.Info("Run finished",
			slog.String("run_id", result.RunID),
			slog.String("file", result.File.Name),
			slog.String("state", string(result.State)),
			slog.Int("inserted", counts[domain.LoadInserted]),
			slog.Int("skipped_duplicate", counts[domain.LoadSkippedDuplicate]),
			slog.Int("skipped_unresolved_rate", counts[domain.LoadSkippedUnresolvedRate]),
		)
	}

	if failed > 0 {
		logger.Error("Some runs failed", slog.Int("failed", failed), slog.Int("total", len(files)))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// stdlib connection compatible with the main pool.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
