// Package pages holds the controllers of the search, manage and favourites tabs.
package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/domain"
	"cratui/internal/ui/state"
)

// Outcome is what a page reports back to the host for one event
type Outcome struct {
	Handled bool         // false lets the host apply its global bindings
	Signal  state.Signal // warn or error flash to raise
	Err     error        // collaborator failure behind an error signal
	Cmd     tea.Cmd      // follow-up work for the host to run
}

func handled() Outcome { return Outcome{Handled: true} }

func unhandled() Outcome { return Outcome{} }

func warn() Outcome { return Outcome{Handled: true, Signal: state.SignalWarn} }

func failed(err error) Outcome {
	return Outcome{Handled: true, Signal: state.SignalError, Err: err}
}

// Manifest edits the dependencies of the current project
type Manifest interface {
	Add(id, version string) error
	Remove(id string) (bool, error)
}

// DependencyLister reads the dependencies of the current project
type DependencyLister interface {
	Dependencies() ([]domain.Dependency, error)
	Remove(id string) (bool, error)
	Path() string
}

// Installer spawns an install without waiting for it
type Installer interface {
	Install(id string) (int, error)
}

// Clipboard receives copied text
type Clipboard interface {
	Copy(text string) error
}

// Favourites is the persisted favourites list
type Favourites interface {
	AddFavourite(id string) bool
	FavouriteIDs() []string
}

// ShowDetailsMsg asks the host to page through the details of a crate
type ShowDetailsMsg struct {
	Crate domain.Crate
}

// SearchFavouriteMsg asks the host to switch to the search tab and search for ID
type SearchFavouriteMsg struct {
	ID string
}
