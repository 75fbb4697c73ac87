package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesops/sales_etl_app/internal/adapters/database/pgsql"
	"github.com/salesops/sales_etl_app/internal/core/services"
	"github.com/salesops/sales_etl_app/internal/handlers"
	"github.com/salesops/sales_etl_app/internal/middleware"
	"github.com/salesops/sales_etl_app/pkg/config"
	"github.com/salesops/sales_etl_app/pkg/database"
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

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/", handlers.GetHome)
	setupAPIV1Routes(r, dbPool)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupAPIV1Routes(r *gin.Engine, dbPool *pgxpool.Pool) {
	v1 := r.Group("/api/v1")

	reportingService := services.NewReportingService(pgsql.NewPgxReportingRepository(dbPool))
	reportingHandler := handlers.NewReportingHandler(reportingService)

	reports := v1.Group("/reports")
	reports.GET("/affiliate-category", reportingHandler.GetAffiliateCategoryTotals)
	reports.GET("/monthly", reportingHandler.GetMonthlySummary)
}
