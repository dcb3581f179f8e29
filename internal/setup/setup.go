package setup

import (
	"context"

	"github.com/coopmed/coopmed/internal/database"
	"github.com/coopmed/coopmed/internal/setup/config"
	"github.com/coopmed/coopmed/internal/setup/logging"
	"go.uber.org/zap"
)

// App bundles the core dependencies every entrypoint needs.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DBLogger *zap.Logger
	DB       database.Client
}

// InitializeApp bootstraps all application dependencies in the correct
// order, ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context) (*App, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, dbLogger, err := logging.NewLoggers(&cfg.Debug)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger, true)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		DBLogger: dbLogger,
		DB:       db,
	}, nil
}

// Cleanup releases all resources held by the application.
func (a *App) Cleanup() {
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database", zap.Error(err))
	}

	_ = a.Logger.Sync()
	_ = a.DBLogger.Sync()
}
