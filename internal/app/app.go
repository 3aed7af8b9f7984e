// Package app ties configuration, the scan history store, and the HTTP
// server together for the serve command.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"hubscan/internal/config"
	"hubscan/internal/frontend"
	"hubscan/internal/server"
	"hubscan/internal/storage/sqlite"
)

// App is the assembled serve-mode application.
type App struct {
	cfg    config.Config
	store  *sqlite.Store
	server *server.Server
}

// New constructs an App from the provided configuration.
func New(cfg config.Config) (*App, error) {
	renderer, err := frontend.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load frontend: %w", err)
	}

	store, err := sqlite.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	srv := server.New(cfg.HubCacheDir(), store, cfg.History.Keep, renderer)
	return &App{cfg: cfg, store: store, server: srv}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	return a.store.Close()
}

// Run performs the initial scan and serves HTTP until the context is
// cancelled. A cache root that cannot be read aborts startup; later scan
// failures only fail the request that triggered them.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.server.Refresh(ctx); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	slog.Info("starting server", "addr", a.cfg.Server.Listen)
	if err := a.server.Start(ctx, a.cfg.Server.Listen); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
