package types

// Direction of a cursor or selection move
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

// LinkTarget selects which external page of a crate to open
type LinkTarget int

const (
	LinkRegistry LinkTarget = iota
	LinkDocs
	LinkRepository
)

// Navigation actions
type NavigateAction struct {
	Direction Direction // up/down move the index, left/right move the page
}

func (a NavigateAction) Type() string { return "navigate" }

type StartSearchAction struct{}

func (a StartSearchAction) Type() string { return "start_search" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Crate actions, all applied to the current selection
type OpenLinkAction struct {
	Target LinkTarget
}

func (a OpenLinkAction) Type() string { return "open_link" }

type AddDependencyAction struct{}

func (a AddDependencyAction) Type() string { return "add_dependency" }

type RemoveDependencyAction struct{}

func (a RemoveDependencyAction) Type() string { return "remove_dependency" }

type InstallAction struct{}

func (a InstallAction) Type() string { return "install" }

type FavouriteAction struct{}

func (a FavouriteAction) Type() string { return "favourite" }

type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type ViewDetailsAction struct{}

func (a ViewDetailsAction) Type() string { return "view_details" }

// List actions
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// Text input actions
type InsertTextAction struct {
	Runes []rune
}

func (a InsertTextAction) Type() string { return "insert_text" }

type BackspaceAction struct{}

func (a BackspaceAction) Type() string { return "backspace" }

type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

type MoveCursorAction struct {
	Direction Direction // only left and right are produced
}

func (a MoveCursorAction) Type() string { return "move_cursor" }

type SubmitTextAction struct{}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }
