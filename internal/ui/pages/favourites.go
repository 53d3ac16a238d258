package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/ui/input"
	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/input/types"
)

// FavouritesSnapshot is what the favourites tab draws
type FavouritesSnapshot struct {
	IDs   []string
	Index int
}

// FavouritesPage lists favourite crates; Enter searches for the selected one
type FavouritesPage struct {
	store Favourites
	index int
	keys  modes.ListKeyMap
	input *input.Handler
}

// NewFavouritesPage creates the favourites page
func NewFavouritesPage(store Favourites) *FavouritesPage {
	keys := modes.FavouritesKeyMap()
	return &FavouritesPage{
		store: store,
		keys:  keys,
		input: input.NewList(keys),
	}
}

// Keys returns the list key table
func (p *FavouritesPage) Keys() modes.ListKeyMap { return p.keys }

// HandleKey applies the list key table
func (p *FavouritesPage) HandleKey(msg tea.KeyMsg) Outcome {
	actions, ok := p.input.HandleKey(types.ModeList, msg)
	if !ok {
		return unhandled()
	}
	ids := p.store.FavouriteIDs()
	p.index = min(p.index, max(0, len(ids)-1))

	for _, a := range actions {
		switch a := a.(type) {
		case types.NavigateAction:
			p.index = moveListIndex(p.index, len(ids), a.Direction)
		case types.ActivateAction:
			if len(ids) == 0 {
				return warn()
			}
			id := ids[p.index]
			return Outcome{Handled: true, Cmd: func() tea.Msg { return SearchFavouriteMsg{ID: id} }}
		}
	}
	return handled()
}

// Draw returns the drawable state
func (p *FavouritesPage) Draw() FavouritesSnapshot {
	ids := p.store.FavouriteIDs()
	p.index = min(p.index, max(0, len(ids)-1))
	return FavouritesSnapshot{IDs: ids, Index: p.index}
}
