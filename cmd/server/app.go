package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/domain/sm2"
	"github.com/lingoflow/lingoflow-api/internal/generation"
	"github.com/lingoflow/lingoflow-api/internal/platform/gemini"
	"github.com/lingoflow/lingoflow-api/internal/platform/postgres"
	platformredis "github.com/lingoflow/lingoflow-api/internal/platform/redis"
	"github.com/lingoflow/lingoflow-api/internal/service"
	"github.com/lingoflow/lingoflow-api/internal/service/auth"
	"github.com/lingoflow/lingoflow-api/internal/service/review"
	"github.com/lingoflow/lingoflow-api/internal/store"

	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	// Stores
	userStore       store.UserStore
	wordStore       store.WordStore
	vocabularyStore store.VocabularyStore
	recordStore     store.ReviewRecordStore
	queueCache      store.Cache

	// Services
	jwtService        auth.JWTService
	userService       service.UserService
	wordService       service.WordService
	vocabularyService service.VocabularyService
	reviewService     review.ReviewService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.redis, err = platformredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("redis connection established", "addr", cfg.Redis.Addr)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.vocabularyStore = postgres.NewPostgresVocabularyStore(db, logger)
	app.recordStore = postgres.NewPostgresReviewRecordStore(db, logger)
	app.queueCache = platformredis.NewRedisCache(app.redis, logger)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	verifier := auth.NewBcryptVerifier()

	app.userService = service.NewUserService(app.userStore, hasher, verifier, db, logger)

	generator, err := setupGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	app.wordService = service.NewWordService(app.wordStore, generator, logger)

	app.vocabularyService = service.NewVocabularyService(
		app.vocabularyStore,
		app.wordStore,
		db,
		logger,
	)

	app.reviewService = review.NewReviewService(
		review.NewSQLTxRunner(db),
		app.vocabularyStore,
		app.wordStore,
		app.recordStore,
		sm2.NewService(),
		app.queueCache,
		cfg.Review,
		nil, // time.Now
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupGenerator builds the example-sentence generator. An empty API key
// disables the feature rather than failing startup.
func setupGenerator(
	ctx context.Context,
	cfg config.LLMConfig,
	logger *slog.Logger,
) (generation.Generator, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Info("example sentence generation disabled, no Gemini API key configured")
		return nil, nil
	}

	generator, err := gemini.NewGeminiGenerator(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize example sentence generator: %w", err)
	}
	logger.Info("example sentence generator initialized", "model", cfg.ModelName)
	return generator, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
