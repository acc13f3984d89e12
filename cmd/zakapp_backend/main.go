package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/slimatic/zakapp-sub006/internal/adapters/pricing"
	"github.com/slimatic/zakapp-sub006/internal/core/services"
	"github.com/slimatic/zakapp-sub006/internal/handlers"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
	"github.com/slimatic/zakapp-sub006/internal/platform/config"
	"github.com/slimatic/zakapp-sub006/internal/platform/crypto"
	"github.com/slimatic/zakapp-sub006/internal/repositories/database/pgsql"
	"github.com/slimatic/zakapp-sub006/internal/utils"
	"github.com/slimatic/zakapp-sub006/pkg/database"
)

// @title ZakApp Backend API
// @version 1.0
// @description Zakat calculation and snapshot engine.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.FieldEncryptionKey == "" && !cfg.IsProduction {
		// Dev convenience only: snapshots written with an ephemeral key are
		// unreadable after restart.
		ephemeralKey, kerr := utils.GenerateSecureRandomString(32)
		if kerr != nil {
			logger.Error("Failed to generate ephemeral field key", slog.String("error", kerr.Error()))
			os.Exit(1)
		}
		cfg.FieldEncryptionKey = ephemeralKey
		logger.Warn("FIELD_ENCRYPTION_KEY not set, using an ephemeral key for this process")
	}

	fieldCipher, err := crypto.NewFieldCipher(cfg.FieldEncryptionKey)
	if err != nil {
		logger.Error("Failed to initialize field cipher", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool, fieldCipher)
	priceOracle := pricing.NewMetalPriceClient(cfg)
	serviceContainer := services.NewServiceContainer(cfg, repos, priceOracle)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
