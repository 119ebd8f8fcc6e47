// Package app assembles the store, catalog, engine and services described by
// a loaded configuration.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/config"
	"github.com/alexanderramin/buildcost/internal/db"
	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/alexanderramin/buildcost/internal/repository"
	"github.com/alexanderramin/buildcost/internal/service"
)

// App holds the wired services. Close releases a database opened by Open.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Engine    *estimator.Engine
	Estimates service.EstimateService
	Saved     service.SavedEstimateService

	db *sql.DB
}

// Open wires an App from cfg. The catalog file is loaded when one is
// configured; otherwise the built-in catalog prices estimates.
func Open(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cat, err := LoadCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	engine := estimator.NewEngine(cat, cfg.EngineOptions()...)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := New(cfg, logger, engine, database)
	a.db = database
	return a, nil
}

// LoadCatalog returns the configured catalog file, or the built-in catalog
// when none is configured. Warnings found in a catalog file are logged.
func LoadCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if logger != nil {
		for _, f := range catalog.Check(c) {
			logger.Warn("catalog finding", "trade", string(f.Trade), "message", f.Message)
		}
	}
	return c, nil
}

// New wires services over an already opened database. The caller keeps
// ownership of database; Close on the returned App leaves it open.
func New(cfg *config.Config, logger *slog.Logger, engine *estimator.Engine, database *sql.DB) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	observer := service.NewSlogUseCaseObserver(logger)

	estimates := repository.NewSQLiteSavedEstimateRepo(database)
	categories := repository.NewSQLiteEstimateCategoryRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Engine:    engine,
		Estimates: service.NewEstimateService(engine, observer),
		Saved:     service.NewSavedEstimateService(estimates, categories, uow, engine, observer),
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
