// Package cargo edits the [dependencies] table of a Cargo manifest and
// spawns `cargo install`.
package cargo

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
)

const dependenciesTable = "dependencies"

// ErrManifestNotFound is returned when no manifest path is configured or the file is gone
var ErrManifestNotFound = errors.New("cannot find Cargo.toml")

// Manifest is a Cargo.toml on disk. Every call re-reads the file so edits
// made outside cratui are picked up.
type Manifest struct {
	mu   sync.Mutex
	path string
	bus  eventbus.EventBus
}

// NewManifest creates a manifest for path. An empty path makes every
// operation fail with ErrManifestNotFound.
func NewManifest(path string, bus eventbus.EventBus) *Manifest {
	return &Manifest{path: path, bus: bus}
}

// Path returns the manifest location
func (m *Manifest) Path() string {
	return m.path
}

// Add sets `id = "version"` in [dependencies], creating the table when absent.
// An existing entry for id is replaced.
func (m *Manifest) Add(id, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.read()
	if err != nil {
		return err
	}

	deps, ok := doc[dependenciesTable].(map[string]any)
	if !ok {
		deps = map[string]any{}
		doc[dependenciesTable] = deps
	}
	deps[id] = version

	if err := m.write(doc); err != nil {
		return err
	}
	m.publish(domain.DependencyAddedEvent{Manifest: m.path, Name: id, Version: version})
	return nil
}

// Remove deletes id from [dependencies]. It reports whether the entry existed;
// removing an absent entry is not an error and leaves the file untouched.
func (m *Manifest) Remove(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.read()
	if err != nil {
		return false, err
	}

	deps, ok := doc[dependenciesTable].(map[string]any)
	if !ok {
		return false, nil
	}
	if _, ok := deps[id]; !ok {
		return false, nil
	}
	delete(deps, id)

	if err := m.write(doc); err != nil {
		return false, err
	}
	m.publish(domain.DependencyRemovedEvent{Manifest: m.path, Name: id})
	return true, nil
}

// Dependencies lists [dependencies] sorted by name. Table values contribute
// their `version` key when present.
func (m *Manifest) Dependencies() ([]domain.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.read()
	if err != nil {
		return nil, err
	}

	deps, _ := doc[dependenciesTable].(map[string]any)
	out := make([]domain.Dependency, 0, len(deps))
	for name, raw := range deps {
		dep := domain.Dependency{Name: name}
		switch v := raw.(type) {
		case string:
			dep.Version = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				dep.Version = s
			}
		}
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Manifest) read() (map[string]any, error) {
	if m.path == "" {
		return nil, ErrManifestNotFound
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, m.path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", m.path, err)
	}
	return doc, nil
}

func (m *Manifest) write(doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func (m *Manifest) publish(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
