package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quillworks/quill-api/internal/config"
	"github.com/quillworks/quill-api/internal/generation"
	"github.com/quillworks/quill-api/internal/platform/gemini"
	"github.com/quillworks/quill-api/internal/platform/postgres"
	"github.com/quillworks/quill-api/internal/service"
	"github.com/quillworks/quill-api/internal/service/auth"
	"github.com/quillworks/quill-api/internal/store"
	"github.com/quillworks/quill-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	postStore store.PostStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	postService      service.PostService

	taskRunner *task.TaskRunner
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

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, auth.NewBcryptHasher(), logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully")

	app.taskRunner = task.NewTaskRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	// The task factory writes results back through the store directly so
	// the service layer can depend on the factory without a cycle.
	postWriter, err := task.NewPostWriterAdapter(app.postStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create post writer adapter: %w", err)
	}

	taskFactory := task.NewPostGenerationTaskFactory(
		postWriter,
		app.generator,
		cfg.LLM.GenerationTimeout(),
		logger,
	)

	app.postService, err = service.NewPostService(
		db,
		app.postStore,
		app.taskRunner,
		taskFactory,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
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
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
