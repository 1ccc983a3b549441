package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordballs/internal/config"
	"wordballs/internal/engine"
	"wordballs/internal/handler"
	"wordballs/internal/middleware"
	"wordballs/internal/repository"
	"wordballs/internal/repository/file"
	"wordballs/internal/repository/postgres"
	"wordballs/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Word Balls Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	playerRepo := postgres.NewPlayerRepo(db)
	vocabRepo, err := openVocabulary(cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to open vocabulary", zap.Error(err))
	}

	// Initialize services
	scheduler := engine.ClockScheduler{}
	playerService := service.NewPlayerService(playerRepo, vocabRepo, cfg.Game.DefaultLanguage)
	gameService := service.NewGameService(playerService, vocabRepo, scheduler, engine.Options{
		AutoCommit:     cfg.Game.AutoCommit,
		AutofillDelay:  cfg.Game.AutofillDelay(),
		AutoClearDelay: cfg.Game.AutoClearDelay(),
	}, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.EnsurePlayer(playerService, logger))
	h := handler.NewHandler(bot, playerService, gameService, scheduler, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start idle game reaper in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runReaper(ctx, gameService, cfg.Game.IdleTimeout(), logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()
	gameService.EndAll()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// Run migrations
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// openVocabulary picks the vocabulary file when one is configured, the database otherwise
func openVocabulary(cfg *config.Config, db *sql.DB, logger *zap.Logger) (repository.VocabularyRepository, error) {
	if cfg.VocabFile == "" {
		logger.Info("Using database vocabulary")
		return postgres.NewVocabularyRepo(db), nil
	}

	repo, err := file.Open(cfg.VocabFile)
	if err != nil {
		return nil, err
	}

	logger.Info("Using vocabulary file",
		zap.String("path", cfg.VocabFile),
		zap.Int("words", len(repo.All())),
	)
	return repo, nil
}

// runReaper periodically ends games nobody touched for maxIdle
func runReaper(ctx context.Context, gameService *service.GameService, maxIdle time.Duration, logger *zap.Logger) {
	interval := maxIdle / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Idle game reaper stopped")
			return
		case <-ticker.C:
			reaped := gameService.ReapIdle(maxIdle)
			logger.Debug("Idle game sweep",
				zap.Int("reaped", reaped),
				zap.Int("active", gameService.ActiveGames()),
			)
		}
	}
}
