// Package cli holds the dependencies and host loop of the nativewindow
// command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/cli/styles"
	"github.com/bnema/nativewindow/internal/domain/build"
	"github.com/bnema/nativewindow/internal/infrastructure/config"
	"github.com/bnema/nativewindow/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/nativewindow/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// DB is opened on first use so commands that never touch window state
	// do not create the database file.
	DB           *sqlite.LazyDB
	WindowStates port.WindowStateRepository

	ctx context.Context
}

// NewApp creates the CLI application from a loaded configuration manager.
func NewApp(manager *config.Manager) (*App, error) {
	if manager == nil {
		return nil, errors.New("config manager is nil")
	}
	cfg := manager.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	logger.Debug().
		Str("config", manager.GetConfigFile()).
		Str("db_path", cfg.Database.Path).
		Msg("cli initialized")

	return &App{
		Config:       cfg,
		Manager:      manager,
		Theme:        styles.NewTheme(),
		DB:           db,
		WindowStates: sqlite.NewLazyWindowStateRepository(db),
		ctx:          ctx,
	}, nil
}

// Close releases resources.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Ctx returns the application context carrying the configured logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
