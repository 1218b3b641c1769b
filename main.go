// Package main provides the entry point for the PopkornPick terminal app.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"

	"github.com/sebastiantruijens/popkornpick/internal/browse"
	"github.com/sebastiantruijens/popkornpick/internal/catalog"
	"github.com/sebastiantruijens/popkornpick/internal/config"
	"github.com/sebastiantruijens/popkornpick/internal/di"
	"github.com/sebastiantruijens/popkornpick/internal/favorites"
	"github.com/sebastiantruijens/popkornpick/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer(os.Args[1:])

	// Bootstrap all services before the terminal is taken over
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start PopkornPick: %v\n", err)
		os.Exit(1)
	}

	cfg := do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)

	m := NewModel(Options{
		Catalog:         do.MustInvoke[*catalog.Client](injector),
		Favorites:       do.MustInvoke[*favorites.Manager](injector),
		Clock:           browse.SystemClock{},
		Debounce:        cfg.Browse.Debounce,
		ScrollThreshold: cfg.Browse.ScrollThreshold,
		Logger:          log.Logger.With("component", "ui"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()
	if runErr != nil {
		log.Error("UI exited with error", "error", runErr)
	}

	log.Info("Shutting down...")

	// The container closes the favorites store, then the log file.
	if err := injector.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
