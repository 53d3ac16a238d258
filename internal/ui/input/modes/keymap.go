package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the fixed key table of the search page in navigation mode
type KeyMap struct {
	Search    key.Binding
	Help      key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Registry  key.Binding
	Docs      key.Binding
	Repo      key.Binding
	Add       key.Binding
	Remove    key.Binding
	Install   key.Binding
	Favourite key.Binding
	Copy      key.Binding
	Details   key.Binding
}

// DefaultKeyMap returns the search page bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		PrevPage:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous page")),
		NextPage:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next page")),
		Registry:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "crates.io")),
		Docs:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "docs.rs")),
		Repo:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "repository")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove")),
		Install:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		Favourite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favourite")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy line")),
		Details:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "details")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Up, k.Down, k.PrevPage, k.NextPage, k.Help}
}

// FullHelp implements help.KeyMap: navigation, links, actions
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Up, k.Down, k.PrevPage, k.NextPage, k.Help},
		{k.Registry, k.Docs, k.Repo, k.Details},
		{k.Add, k.Remove, k.Install, k.Favourite, k.Copy},
	}
}

// ListKeyMap is the key table of the manage and favourites tabs
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Remove   key.Binding
	Reload   key.Binding
	Activate key.Binding
}

// ManageKeyMap returns the manage tab bindings
func ManageKeyMap() ListKeyMap {
	k := baseListKeys()
	k.Remove = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove"))
	k.Reload = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "reload"))
	k.Activate = key.NewBinding(key.WithDisabled())
	return k
}

// FavouritesKeyMap returns the favourites tab bindings
func FavouritesKeyMap() ListKeyMap {
	k := baseListKeys()
	k.Remove = key.NewBinding(key.WithDisabled())
	k.Reload = key.NewBinding(key.WithDisabled())
	k.Activate = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
	return k
}

func baseListKeys() ListKeyMap {
	return ListKeyMap{
		Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
	}
}

// ShortHelp implements help.KeyMap
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Remove, k.Reload, k.Activate}
}

// FullHelp implements help.KeyMap
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
