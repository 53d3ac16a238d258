package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeNavigation treats keys as commands over the result grid
	ModeNavigation Mode = iota
	// ModeEditing treats keys as edits of the query text
	ModeEditing
	// ModeList drives the simple lists of the manage and favourites tabs
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeList:
		return "list"
	default:
		return "navigation"
	}
}

// Action represents a command a page should execute
type Action interface {
	Type() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether the key was consumed
	HandleKey(msg tea.KeyMsg) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}
