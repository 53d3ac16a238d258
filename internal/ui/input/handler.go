package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/input/types"
)

// Handler routes keys to the handler of the requested mode
type Handler struct {
	modes map[types.Mode]types.ModeHandler
}

// New creates a handler with the search page modes registered
func New(keys modes.KeyMap) *Handler {
	h := &Handler{
		modes: make(map[types.Mode]types.ModeHandler),
	}
	h.modes[types.ModeNavigation] = modes.NewNormalMode(keys)
	h.modes[types.ModeEditing] = modes.NewTextInputMode()
	return h
}

// NewList creates a handler for a list tab
func NewList(keys modes.ListKeyMap) *Handler {
	h := &Handler{
		modes: make(map[types.Mode]types.ModeHandler),
	}
	h.modes[types.ModeList] = modes.NewListMode(keys)
	return h
}

// HandleKey decodes msg in mode. It reports false when the key has no meaning there.
func (h *Handler) HandleKey(mode types.Mode, msg tea.KeyMsg) ([]types.Action, bool) {
	handler := h.modes[mode]
	if handler == nil {
		return nil, false
	}
	return handler.HandleKey(msg)
}
