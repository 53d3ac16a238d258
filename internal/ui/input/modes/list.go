package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/ui/input/types"
)

// ListMode drives the manage and favourites lists
type ListMode struct {
	keys ListKeyMap
}

func NewListMode(keys ListKeyMap) *ListMode {
	return &ListMode{keys: keys}
}

func (m *ListMode) Name() string {
	return "list"
}

func (m *ListMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: types.DirUp}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: types.DirDown}}, true
	case key.Matches(msg, m.keys.Remove):
		return []types.Action{types.RemoveDependencyAction{}}, true
	case key.Matches(msg, m.keys.Reload):
		return []types.Action{types.ReloadAction{}}, true
	case key.Matches(msg, m.keys.Activate):
		return []types.Action{types.ActivateAction{}}, true
	}
	return nil, false
}
