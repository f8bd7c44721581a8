// Package app wires the application together: it builds the isolated
// logger, loads the plan through a config.Loader, and runs the generation
// pass for every dataset the plan declares.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hydroclim/climgen/internal/config"
	"github.com/hydroclim/climgen/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded plan
// model. A failure to load the plan is a fatal startup error and panics;
// the entrypoint recovers to present a clean message.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plan: %w", err))
	}
	logger.Debug("Plan loaded.", "datasets", len(model.Datasets))

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		model:  model,
	}
}

// Model returns the loaded plan model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
