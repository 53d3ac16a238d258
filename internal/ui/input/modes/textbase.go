package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/ui/input/types"
)

// TextInputMode edits the query text
type TextInputMode struct{}

func NewTextInputMode() *TextInputMode {
	return &TextInputMode{}
}

func (m *TextInputMode) Name() string {
	return "editing"
}

func (m *TextInputMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil, false
		}
		return []types.Action{types.InsertTextAction{Runes: msg.Runes}}, true
	case tea.KeySpace:
		return []types.Action{types.InsertTextAction{Runes: []rune{' '}}}, true
	case tea.KeyBackspace:
		return []types.Action{types.BackspaceAction{}}, true
	case tea.KeyDelete:
		return []types.Action{types.DeleteAction{}}, true
	case tea.KeyLeft:
		return []types.Action{types.MoveCursorAction{Direction: types.DirLeft}}, true
	case tea.KeyRight:
		return []types.Action{types.MoveCursorAction{Direction: types.DirRight}}, true
	case tea.KeyEnter:
		return []types.Action{types.SubmitTextAction{}}, true
	case tea.KeyEsc:
		return []types.Action{types.CancelTextAction{}}, true
	}
	return nil, false
}
