package app

import (
	"context"
	"fmt"

	"github.com/abdulachik/scribe/internal/catalog"
	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/db"
	"github.com/abdulachik/scribe/internal/pipeline"
	"github.com/abdulachik/scribe/internal/tracker"
)

// App is the main application container holding all dependencies.
type App struct {
	Config   *config.Config
	Store    *db.Store
	Tracker  tracker.Tracker
	Catalog  *catalog.Catalog
	Registry *pipeline.Registry
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	registry, err := pipeline.NewRegistryFromCatalog(cat)
	if err != nil {
		return nil, err
	}

	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Store:    store,
		Tracker:  tracker.NewSQLite(store),
		Catalog:  cat,
		Registry: registry,
	}, nil
}

// LoadCatalog returns the catalog named by CATALOG_PATH, or the embedded
// default.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// Pipeline creates a pipeline over the configured directories.
func (a *App) Pipeline(workers int, force bool) *pipeline.Pipeline {
	if workers <= 0 {
		workers = a.Config.Workers
	}
	return pipeline.New(pipeline.Config{
		SourceDir: a.Config.SourceDir,
		OutputDir: a.Config.ProcessedDir,
		Registry:  a.Registry,
		Tracker:   a.Tracker,
		Workers:   workers,
		Force:     force,
	})
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
