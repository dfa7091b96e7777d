// Package app is the application layer between the CLI and the kanban
// service. It constructs all dependencies from config and manages their
// lifecycle on Close.
package app

import (
	"fmt"
	"os"
	"time"

	"kanban/internal/config"
	"kanban/internal/core"
	"kanban/internal/history"
	"kanban/internal/kanban"
	"kanban/internal/store"
	"kanban/internal/watch"
)

// App wires the store, history, watcher, and service from config.
// The caller must call Close when done.
type App struct {
	cfg     *config.Config
	service *kanban.Service
	logFile *os.File
}

// New creates a fully wired App from the given config and loads the
// snapshot. operation identifies the CLI command being run (e.g.
// "CreateCard", "Undo").
func New(cfg *config.Config, operation string) (*App, error) {
	opID := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405Z"), operation)
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	clock := core.RealClock{}
	st := store.NewFileStore(cfg.DataFile, clock)
	hist := history.NewManager(cfg.History.Limit)
	watcher := watch.New(cfg.DataFile, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, logger)

	svc := kanban.NewService(st, hist, store.LastWriteWins{}, watcher, logger, clock, core.UUIDGenerator{}, cfg)
	if err := svc.Load(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("loading data file: %w", err)
	}

	return &App{cfg: cfg, service: svc, logFile: logFile}, nil
}

// Service exposes the wired kanban service.
func (a *App) Service() *kanban.Service { return a.service }

// Config exposes the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Close flushes pending changes and releases resources.
func (a *App) Close() error {
	err := a.service.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
