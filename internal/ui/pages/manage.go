package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
	"cratui/internal/logging"
	"cratui/internal/ui/input"
	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/input/types"
)

// ManageSnapshot is what the manage tab draws
type ManageSnapshot struct {
	Manifest string
	Deps     []domain.Dependency
	Index    int
	Loaded   bool
	Err      error
}

// ManagePage lists and removes the dependencies of the manifest
type ManagePage struct {
	manifest DependencyLister
	deps     []domain.Dependency
	index    int
	loaded   bool
	err      error
	keys     modes.ListKeyMap
	input    *input.Handler
	bus      eventbus.EventBus
	logger   *logging.Logger
}

// NewManagePage creates the manage page. The list is read on first activation.
func NewManagePage(manifest DependencyLister, bus eventbus.EventBus, logger *logging.Logger) *ManagePage {
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := modes.ManageKeyMap()
	return &ManagePage{
		manifest: manifest,
		keys:     keys,
		input:    input.NewList(keys),
		bus:      bus,
		logger:   logger.With("page", "manage"),
	}
}

// Keys returns the list key table
func (p *ManagePage) Keys() modes.ListKeyMap { return p.keys }

// Activate reloads the dependency list when the tab is shown
func (p *ManagePage) Activate() Outcome {
	return p.reload()
}

func (p *ManagePage) reload() Outcome {
	deps, err := p.manifest.Dependencies()
	p.loaded = true
	if err != nil {
		p.deps, p.err = nil, err
		p.index = 0
		p.logger.Warn("failed to read dependencies", "error", err.Error())
		return failed(err)
	}
	p.deps, p.err = deps, nil
	p.index = min(p.index, max(0, len(deps)-1))
	return handled()
}

// HandleKey applies the list key table
func (p *ManagePage) HandleKey(msg tea.KeyMsg) Outcome {
	actions, ok := p.input.HandleKey(types.ModeList, msg)
	if !ok {
		return unhandled()
	}
	out := handled()
	for _, a := range actions {
		switch a := a.(type) {
		case types.NavigateAction:
			p.index = moveListIndex(p.index, len(p.deps), a.Direction)
		case types.ReloadAction:
			out = p.reload()
		case types.RemoveDependencyAction:
			out = p.removeSelected()
		}
	}
	return out
}

func (p *ManagePage) removeSelected() Outcome {
	if len(p.deps) == 0 {
		return warn()
	}
	dep := p.deps[p.index]
	if _, err := p.manifest.Remove(dep.Name); err != nil {
		p.logger.Error("remove dependency failed", "crate", dep.Name, "error", err.Error())
		if p.bus != nil {
			p.bus.Publish(domain.ErrorEvent{Message: "remove dependency", Err: err})
		}
		return failed(err)
	}
	p.logger.Info("dependency removed", "crate", dep.Name)
	return p.reload()
}

// Draw returns the drawable state
func (p *ManagePage) Draw() ManageSnapshot {
	return ManageSnapshot{
		Manifest: p.manifest.Path(),
		Deps:     p.deps,
		Index:    p.index,
		Loaded:   p.loaded,
		Err:      p.err,
	}
}

// moveListIndex moves a single-column selection with wraparound
func moveListIndex(index, n int, d types.Direction) int {
	if n == 0 {
		return 0
	}
	switch d {
	case types.DirUp:
		return (index - 1 + n) % n
	case types.DirDown:
		return (index + 1) % n
	}
	return index
}
