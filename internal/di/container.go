// Package di wires PopkornPick's components together.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/sebastiantruijens/popkornpick/internal/catalog"
	"github.com/sebastiantruijens/popkornpick/internal/config"
	"github.com/sebastiantruijens/popkornpick/internal/favorites"
)

// NewContainer creates the DI container. args are the command-line arguments
// without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, func(do.Injector) (*config.Config, error) {
		return config.LoadConfig(args)
	})
	do.Provide(injector, ProvideLogger)

	// Favorites
	do.Provide(injector, ProvideFavoritesStore)
	do.Provide(injector, ProvideFavorites)

	// Catalog
	do.Provide(injector, ProvideCatalog)

	return injector
}

// Bootstrap resolves everything the UI needs so startup errors surface
// before the terminal is taken over.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*favorites.Manager](injector); err != nil {
		return fmt.Errorf("favorites: %w", err)
	}
	if _, err := do.Invoke[*catalog.Client](injector); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}
