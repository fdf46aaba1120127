package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/config"
	"github.com/abhisek/mockmentor/internal/logger"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/store"
)

// app bundles the dependencies a command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *coach.Service
	user   string
}

// appOption customizes the coach dependencies before the service is built.
type appOption func(*coach.Deps)

// setup loads configuration, opens the store and builds the coach service.
// Callers must Close the returned app.
func setup(cmd *cobra.Command, opts ...appOption) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		log.Info("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("questions", cat.Len()))
	}

	dbPath, err := resolveDBPath(cmd, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sel := selection.NewSeeded(cfg.Selection.Seed)
	sel.RecentWindow = cfg.Selection.RecentWindow

	deps := coach.Deps{
		Catalog:  cat,
		Profiles: st.ProfileRepo(),
		Events:   st.EventRepo(),
		Sessions: st.SessionRepo(),
		Selector: sel,
		Logger:   log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &app{
		cfg:    cfg,
		logger: log,
		store:  st,
		svc:    coach.New(deps),
		user:   resolveUser(cmd, cfg.Profile.UserID),
	}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}
