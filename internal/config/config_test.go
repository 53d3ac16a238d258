package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cratui/internal/eventbus"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cratui", "config.toml")
	cs := NewConfigService(path)

	cfg, err := cs.Load()
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, 250, cfg.Terminal.TickRateMs)
	assert.Equal(t, 20, cfg.Search.MaxPages)
	assert.Equal(t, DefaultRegistryURL, cfg.Search.RegistryURL)
	assert.Equal(t, "#ee6ff8", cfg.Colors.Primary)
	assert.Empty(t, cfg.Favourites.Crates)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "cratui.log"), cfg.Log.File)
}

func TestLoadFromPathKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[search]
max_pages = 3

[favourites]
crates = ["serde", "tokio"]
`)

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Search.MaxPages)
	assert.Equal(t, []string{"serde", "tokio"}, cfg.Favourites.Crates)
	assert.Equal(t, 250, cfg.Terminal.TickRateMs)
	assert.Equal(t, "#e67e22", cfg.Colors.Warn)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[search]\nmax_pages = 3\n")
	t.Setenv("CRATUI_SEARCH_MAX_PAGES", "7")
	t.Setenv("CRATUI_LOG_LEVEL", "debug")

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Search.MaxPages)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromPathRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[colors]
primary = "pink"

[terminal]
tick_rate_ms = 0
`)

	_, err := NewConfigService(path).LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colors.primary")
	assert.Contains(t, err.Error(), "tick_rate_ms")
}

func TestLoadFromPathMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	_, err := NewConfigService(path).LoadFromPath(path)
	require.Error(t, err)
}

func TestSavePersistsFavouritesAndPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bus := eventbus.New(nil)
	defer bus.Close()

	saved := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved <- e.(eventbus.ConfigSavedEvent).Path
	})

	cs := NewConfigServiceWithBus(path, bus)
	cfg := DefaultConfig()
	cfg.AddFavourite("rand")
	require.NoError(t, cs.Save(cfg))

	select {
	case p := <-saved:
		assert.Equal(t, path, p)
	case <-time.After(time.Second):
		t.Fatal("ConfigSavedEvent not published")
	}

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rand"}, loaded.Favourites.Crates)
}

func TestAddFavouriteSkipsDuplicates(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.AddFavourite("serde"))
	assert.True(t, cfg.AddFavourite("tokio"))
	assert.False(t, cfg.AddFavourite("serde"))
	assert.False(t, cfg.AddFavourite(""))

	assert.Equal(t, []string{"serde", "tokio"}, cfg.Favourites.Crates)
}

func TestSaveFavouritesKeepsOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigService(path)
	_, err := cs.Load()
	require.NoError(t, err)

	t.Setenv("CRATUI_SEARCH_MAX_PAGES", "3")
	cfg, err := cs.Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Search.MaxPages)

	cfg.Search.RegistryURL = "http://localhost:8080"
	cfg.AddFavourite("serde")
	require.NoError(t, cs.SaveFavourites(cfg.FavouriteIDs()))

	require.NoError(t, os.Unsetenv("CRATUI_SEARCH_MAX_PAGES"))
	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 20, loaded.Search.MaxPages)
	assert.Equal(t, DefaultRegistryURL, loaded.Search.RegistryURL)
	assert.Equal(t, []string{"serde"}, loaded.Favourites.Crates)
}

func TestSaveFavouritesKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[search]\nmax_pages = 5\n\n[favourites]\ncrates = [\"rand\"]\n")
	cs := NewConfigService(path)

	require.NoError(t, cs.SaveFavourites([]string{"rand", "tokio"}))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Search.MaxPages)
	assert.Equal(t, 250, loaded.Terminal.TickRateMs)
	assert.Equal(t, []string{"rand", "tokio"}, loaded.Favourites.Crates)
}
