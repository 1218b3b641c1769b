package di

import (
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/popkornpick/internal/config"
	"github.com/sebastiantruijens/popkornpick/internal/favorites"
)

func TestContainer_Bootstrap(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMDB_TOKEN", "secret")

	injector := NewContainer([]string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-dir", dir,
		"--ephemeral", "true",
	})
	defer injector.Shutdown()

	require.NoError(t, Bootstrap(injector))

	cfg := do.MustInvoke[*config.Config](injector)
	assert.True(t, cfg.Favorites.Ephemeral)

	first := do.MustInvoke[*favorites.Manager](injector)
	second := do.MustInvoke[*favorites.Manager](injector)
	assert.Same(t, first, second, "one favorites manager per profile")
}

func TestContainer_BootstrapFailsWithoutToken(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMDB_TOKEN", "")

	injector := NewContainer([]string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-dir", dir,
	})
	defer injector.Shutdown()

	assert.Error(t, Bootstrap(injector))
}
