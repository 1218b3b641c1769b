package di

import (
	"github.com/samber/do/v2"

	"github.com/sebastiantruijens/popkornpick/internal/catalog"
	"github.com/sebastiantruijens/popkornpick/internal/config"
	"github.com/sebastiantruijens/popkornpick/internal/favorites"
	"github.com/sebastiantruijens/popkornpick/internal/logger"
)

// ProvideLogger provides the file logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log, err := logger.NewFile(cfg.Logger.File, logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Starting PopkornPick",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.App.DataDir,
		"ephemeral", cfg.Favorites.Ephemeral,
	)
	return log, nil
}

// StoreHandle wraps the favorites store with shutdown capability.
type StoreHandle struct {
	*favorites.BadgerStore
}

// Shutdown implements do.ShutdownerWithError.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideFavoritesStore provides the profile's key-value store.
func ProvideFavoritesStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		store *favorites.BadgerStore
		err   error
	)
	if cfg.Favorites.Ephemeral {
		store, err = favorites.OpenInMemory(log.Logger)
	} else {
		store, err = favorites.Open(cfg.Favorites.Path, log.Logger)
	}
	if err != nil {
		return nil, err
	}
	return &StoreHandle{BadgerStore: store}, nil
}

// ProvideFavorites provides the single favorites manager, already loaded.
func ProvideFavorites(i do.Injector) (*favorites.Manager, error) {
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*StoreHandle](i)

	m := favorites.NewManager(store, log.Logger.With("component", "favorites"))
	ids := m.Load()
	log.Info("Favorites loaded", "count", len(ids))
	return m, nil
}

// ProvideCatalog provides the TMDB client.
func ProvideCatalog(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.New(catalog.Options{
		BaseURL:      cfg.Catalog.BaseURL,
		ImageBaseURL: cfg.Catalog.ImageBaseURL,
		Token:        cfg.Catalog.Token,
		Language:     cfg.Catalog.Language,
		Timeout:      cfg.Catalog.Timeout,
		RPS:          cfg.Catalog.RPS,
		Burst:        cfg.Catalog.Burst,
		Logger:       log.Logger.With("component", "catalog"),
	}), nil
}
