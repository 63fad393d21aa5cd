package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"restorativeLandsAPI/handlers"
	"restorativeLandsAPI/internal/cache"
	"restorativeLandsAPI/internal/config"
	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/internal/migration"
	"restorativeLandsAPI/internal/notification"
	"restorativeLandsAPI/internal/workers"
	"restorativeLandsAPI/middleware"
	"restorativeLandsAPI/services"

	_ "net/http/pprof"
)

var CLI struct {
	EnvFile  string `help:"Path to a .env file loaded before reading the environment." default:".env" type:"path"`
	LogLevel string `help:"Override LOG_LEVEL (debug, info, warn, error)."`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Apply pending database migrations and exit."`
	Seed    SeedCmd    `cmd:"" help:"Seed the achievement and course catalogs if empty."`
}

type appContext struct {
	cfg config.Config
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("restorative-lands-api"),
		kong.Description("Restorative Lands breathing and rewards API"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.EnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	if err := kctx.Run(&appContext{cfg: cfg}); err != nil {
		logger.Fatal("command failed", "command", kctx.Command(), "err", err)
	}
}

func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to database", "max_conns", poolConfig.MaxConns)
	return pool, nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(app *appContext) error {
	ctx := context.Background()

	pool, err := openPool(ctx, app.cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	_, err = migration.NewRunner(pool).Apply(ctx)
	return err
}

type SeedCmd struct{}

func (c *SeedCmd) Run(app *appContext) error {
	ctx := context.Background()

	pool, err := openPool(ctx, app.cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return services.NewCatalogService(pool).Seed(ctx)
}

type ServeCmd struct {
	SkipMigrate bool `help:"Do not apply pending migrations on start."`
}

func (c *ServeCmd) Run(app *appContext) error {
	cfg := app.cfg
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("closing database connection pool")
		pool.Close()
	}()

	if !c.SkipMigrate {
		if _, err := migration.NewRunner(pool).Apply(ctx); err != nil {
			return err
		}
	}

	catalogService := services.NewCatalogService(pool)
	if err := catalogService.Seed(ctx); err != nil {
		return err
	}
	achievements, err := catalogService.LoadAchievements(ctx)
	if err != nil {
		return err
	}
	courses, err := catalogService.LoadCourses(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "achievements", len(achievements), "courses", len(courses))

	dispatcher := services.NewNotificationDispatcher(pushProvider(ctx, cfg), cfg.NotifierWorkers)
	defer dispatcher.Stop()

	var leaderboardCache services.LeaderboardCache
	if rdb := connectRedis(ctx, cfg); rdb != nil {
		defer rdb.Close()
		leaderboardCache = cache.NewLeaderboardCache(rdb)
	}

	middleware.InitPrometheus(prometheus.DefaultRegisterer)
	services.RegisterMetrics(prometheus.DefaultRegisterer)

	achievementService := services.NewAchievementService(pool, achievements, dispatcher)
	donationService := services.NewDonationService(pool)

	cleanupDone := workers.StartCleanupWorker(ctx, "donation-expiry", cfg.CleanupInterval, func(ctx context.Context) (int64, error) {
		return donationService.ExpirePending(ctx, cfg.DonationTTL)
	})

	router := newRouter(cfg, pool, routeHandlers{
		users:        handlers.NewUserHandler(services.NewUserService(pool, achievementService)),
		sessions:     handlers.NewSessionHandler(services.NewSessionService(pool, achievementService)),
		rewards:      handlers.NewRewardHandler(services.NewRewardService(pool)),
		achievements: handlers.NewAchievementHandler(achievementService),
		courses:      handlers.NewCourseHandler(services.NewCourseService(pool, courses, achievementService)),
		moods:        handlers.NewMoodHandler(services.NewMoodService(pool, achievementService)),
		leaderboard:  handlers.NewLeaderboardHandler(services.NewLeaderboardService(pool, leaderboardCache)),
		donations:    handlers.NewDonationHandler(donationService),
		status:       handlers.NewStatusHandler(services.NewStatusService(pool)),
	})

	server := http.Server{
		Addr:         cfg.Addr(),
		Handler:      withCORSAndRecovery(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("got signal", "signal", sig)
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	stop()
	<-cleanupDone

	logger.Info("server shutdown complete")
	return nil
}

// pushProvider returns FCM when credentials are available and the logging
// mock otherwise.
func pushProvider(ctx context.Context, cfg config.Config) services.PushNotificationProvider {
	fcm, err := notification.NewFCMService(ctx, cfg.FCMServiceAccountJSON, cfg.FCMCredentialsFile)
	if err != nil {
		logger.Warn("could not initialize FCM, using mock push provider", "err", err)
		return &services.MockPushProvider{}
	}

	logger.Info("FCM push provider initialized")
	return fcm
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; the
// leaderboard then reads straight from Postgres.
func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, leaderboard cache disabled", "err", err)
		return nil
	}

	logger.Info("connected to redis")
	return rdb
}
