package cargo

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
)

const sampleManifest = `[package]
name = "demo"
version = "0.1.0"
edition = "2021"

[dependencies]
anyhow = "1.0"
tokio = { version = "1.40", features = ["full"] }
local = { path = "../local" }
`

func newManifestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDependencies(t *testing.T) {
	m := NewManifest(newManifestFile(t, sampleManifest), nil)

	deps, err := m.Dependencies()
	require.NoError(t, err)

	assert.Equal(t, []domain.Dependency{
		{Name: "anyhow", Version: "1.0"},
		{Name: "local", Version: ""},
		{Name: "tokio", Version: "1.40"},
	}, deps)
}

func TestAddKeepsOtherTables(t *testing.T) {
	path := newManifestFile(t, sampleManifest)
	m := NewManifest(path, nil)

	require.NoError(t, m.Add("serde", "1.0.210"))

	deps, err := m.Dependencies()
	require.NoError(t, err)
	assert.Contains(t, deps, domain.Dependency{Name: "serde", Version: "1.0.210"})
	assert.Len(t, deps, 4)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Package struct {
			Name    string `toml:"name"`
			Edition string `toml:"edition"`
		} `toml:"package"`
	}
	require.NoError(t, toml.Unmarshal(data, &doc))
	assert.Equal(t, "demo", doc.Package.Name)
	assert.Equal(t, "2021", doc.Package.Edition)
}

func TestAddCreatesDependenciesTable(t *testing.T) {
	m := NewManifest(newManifestFile(t, "[package]\nname = \"demo\"\n"), nil)

	require.NoError(t, m.Add("rand", "0.8.5"))

	deps, err := m.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, []domain.Dependency{{Name: "rand", Version: "0.8.5"}}, deps)
}

func TestAddReplacesExistingEntry(t *testing.T) {
	m := NewManifest(newManifestFile(t, sampleManifest), nil)

	require.NoError(t, m.Add("anyhow", "1.0.89"))

	deps, err := m.Dependencies()
	require.NoError(t, err)
	assert.Contains(t, deps, domain.Dependency{Name: "anyhow", Version: "1.0.89"})
	assert.Len(t, deps, 3)
}

func TestRemove(t *testing.T) {
	path := newManifestFile(t, sampleManifest)
	m := NewManifest(path, nil)

	removed, err := m.Remove("tokio")
	require.NoError(t, err)
	assert.True(t, removed)

	deps, err := m.Dependencies()
	require.NoError(t, err)
	assert.NotContains(t, deps, domain.Dependency{Name: "tokio", Version: "1.40"})
	assert.Len(t, deps, 2)
}

func TestRemoveAbsentLeavesFileUntouched(t *testing.T) {
	path := newManifestFile(t, sampleManifest)
	m := NewManifest(path, nil)

	removed, err := m.Remove("serde")
	require.NoError(t, err)
	assert.False(t, removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleManifest, string(data))
}

func TestMissingManifest(t *testing.T) {
	m := NewManifest("", nil)
	assert.ErrorIs(t, m.Add("serde", "1"), ErrManifestNotFound)

	m = NewManifest(filepath.Join(t.TempDir(), "Cargo.toml"), nil)
	_, err := m.Remove("serde")
	assert.ErrorIs(t, err, ErrManifestNotFound)
	_, err = m.Dependencies()
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestMalformedManifest(t *testing.T) {
	m := NewManifest(newManifestFile(t, "[dependencies\nserde = "), nil)
	require.Error(t, m.Add("serde", "1"))
}

func TestAddPublishesEvent(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventDependencyAdded, func(e eventbus.DomainEvent) { got <- e })

	path := newManifestFile(t, sampleManifest)
	require.NoError(t, NewManifest(path, bus).Add("serde", "1.0.0"))

	select {
	case e := <-got:
		assert.Equal(t, domain.DependencyAddedEvent{Manifest: path, Name: "serde", Version: "1.0.0"}, e)
	case <-time.After(time.Second):
		t.Fatal("DependencyAddedEvent not published")
	}
}

func TestInstallReapsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix true/false binaries")
	}

	bus := eventbus.New(nil)
	defer bus.Close()

	finished := make(chan domain.InstallFinishedEvent, 2)
	bus.Subscribe(eventbus.EventInstallFinished, func(e eventbus.DomainEvent) {
		finished <- e.(domain.InstallFinishedEvent)
	})

	ok := NewInstaller("true", bus, nil)
	pid, err := ok.Install("ripgrep")
	require.NoError(t, err)
	assert.Positive(t, pid)

	failing := NewInstaller("false", bus, nil)
	_, err = failing.Install("bat")
	require.NoError(t, err)

	results := map[string]error{}
	for i := 0; i < 2; i++ {
		select {
		case e := <-finished:
			results[e.Name] = e.Err
		case <-time.After(2 * time.Second):
			t.Fatal("InstallFinishedEvent not published")
		}
	}
	assert.NoError(t, results["ripgrep"])
	assert.Error(t, results["bat"])
}

func TestInstallMissingBinary(t *testing.T) {
	_, err := NewInstaller("cratui-no-such-binary", nil, nil).Install("serde")
	require.Error(t, err)
}
