package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/ui/input/types"
)

// NormalMode is the navigation mode of the search page
type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "navigation"
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Search):
		return []types.Action{types.StartSearchAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: types.DirUp}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: types.DirDown}}, true
	case key.Matches(msg, k.PrevPage):
		return []types.Action{types.NavigateAction{Direction: types.DirLeft}}, true
	case key.Matches(msg, k.NextPage):
		return []types.Action{types.NavigateAction{Direction: types.DirRight}}, true

	case key.Matches(msg, k.Registry):
		return []types.Action{types.OpenLinkAction{Target: types.LinkRegistry}}, true
	case key.Matches(msg, k.Docs):
		return []types.Action{types.OpenLinkAction{Target: types.LinkDocs}}, true
	case key.Matches(msg, k.Repo):
		return []types.Action{types.OpenLinkAction{Target: types.LinkRepository}}, true

	case key.Matches(msg, k.Add):
		return []types.Action{types.AddDependencyAction{}}, true
	case key.Matches(msg, k.Remove):
		return []types.Action{types.RemoveDependencyAction{}}, true
	case key.Matches(msg, k.Install):
		return []types.Action{types.InstallAction{}}, true
	case key.Matches(msg, k.Favourite):
		return []types.Action{types.FavouriteAction{}}, true
	case key.Matches(msg, k.Copy):
		return []types.Action{types.CopyAction{}}, true
	case key.Matches(msg, k.Details):
		return []types.Action{types.ViewDetailsAction{}}, true
	}
	return nil, false
}
