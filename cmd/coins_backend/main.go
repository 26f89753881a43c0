package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/yoddle/coins_backend/internal/core/ports"
	"github.com/yoddle/coins_backend/internal/core/services"
	"github.com/yoddle/coins_backend/internal/handlers"
	"github.com/yoddle/coins_backend/internal/middleware"
	"github.com/yoddle/coins_backend/internal/platform/config"
	"github.com/yoddle/coins_backend/internal/repositories/database/pgsql"
	"github.com/yoddle/coins_backend/pkg/cache"
	"github.com/yoddle/coins_backend/pkg/database"

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

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Optional Redis cache for the reporting aggregations
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis cache connected.")
	} else {
		logger.Info("Redis cache disabled.")
	}

	repos := ports.RepositoryProvider{
		BalanceRepo:   pgsql.NewBalanceRepository(dbPool),
		TxnRepo:       pgsql.NewTransactionRepository(dbPool),
		CompanyRepo:   pgsql.NewCompanyRepository(dbPool),
		UserRepo:      pgsql.NewUserRepository(dbPool),
		ReportingRepo: pgsql.NewReportingRepository(dbPool),
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, redisClient)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register custom validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics, rate limit)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(newIPLimiter(cfg)))

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

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	if sourceErr, dbErr := m.Close(); sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	} else if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = !cfg.IsProduction
	if cfg.IsProduction {
		corsCfg.AllowOrigins = []string{"https://app.yoddle.io"}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

func newIPLimiter(cfg *config.Config) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(fmt.Sprintf("%d-M", cfg.RateLimitRPM))
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}
	return limiter.New(memory.NewStore(), rate)
}
