package pages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
	"cratui/internal/links"
	"cratui/internal/logging"
	"cratui/internal/ui/fetch"
	"cratui/internal/ui/input"
	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/input/types"
	"cratui/internal/ui/logic"
	"cratui/internal/ui/state"
)

const (
	// MinHeight is the smallest terminal height that can show results
	MinHeight = 13
	// DefaultItemsPerPage applies until the first resize arrives
	DefaultItemsPerPage = 3
)

// ItemsPerPage converts a terminal height into the number of result rows
func ItemsPerPage(height int) int {
	return max(1, (height-MinHeight)/4+1)
}

// SearchDeps are the collaborators of the search page
type SearchDeps struct {
	Coordinator *fetch.Coordinator
	Manifest    Manifest
	Installer   Installer
	Opener      links.Opener
	Clipboard   Clipboard
	Favourites  Favourites
	Bus         eventbus.EventBus
	Logger      *logging.Logger
}

// SearchSnapshot is everything the search tab draws
type SearchSnapshot struct {
	Query        string
	Cursor       int
	Editing      bool
	HasResults   bool
	Committed    string
	Items        []domain.Crate
	Page         int
	Index        int
	HasSelection bool
	PageCount    int
	TotalItems   int
	Registry     int // total hits reported by the registry
	Loading      bool
	Exhausted    bool
	ExpandedHelp bool
	ItemsPerPage int
}

// SearchPage owns the query and results of the search tab
type SearchPage struct {
	query        *state.QueryState
	results      *state.ResultsState
	perPage      int
	expandedHelp bool
	keys         modes.KeyMap
	input        *input.Handler
	deps         SearchDeps
	logger       *logging.Logger
}

// NewSearchPage creates the search page with an empty, active query
func NewSearchPage(deps SearchDeps) *SearchPage {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := modes.DefaultKeyMap()
	return &SearchPage{
		query:   state.NewQueryState(),
		perPage: DefaultItemsPerPage,
		keys:    keys,
		input:   input.New(keys),
		deps:    deps,
		logger:  logger.With("page", "search"),
	}
}

// Keys returns the navigation key table
func (p *SearchPage) Keys() modes.KeyMap { return p.keys }

// Results returns the current results, nil before the first search
func (p *SearchPage) Results() *state.ResultsState { return p.results }

// Pending returns the in-flight fetch, if any
func (p *SearchPage) Pending() *state.Handle {
	if p.results == nil {
		return nil
	}
	return p.results.Pending
}

// Commit replaces the query text with text and starts a new search
func (p *SearchPage) Commit(text string) {
	p.query.SetText(text)
	p.commit()
}

func (p *SearchPage) commit() {
	p.query.Deactivate()
	p.results = p.deps.Coordinator.Commit(p.query.Text(), p.perPage)
}

// HandleKey dispatches msg to editing or navigation
func (p *SearchPage) HandleKey(msg tea.KeyMsg) Outcome {
	mode := types.ModeNavigation
	if p.query.Active() {
		mode = types.ModeEditing
	}

	actions, ok := p.input.HandleKey(mode, msg)
	if !ok {
		return unhandled()
	}

	out := handled()
	for _, a := range actions {
		out = p.apply(a)
	}
	return out
}

// Resize recomputes the page size from height. Heights below MinHeight
// are left to the host.
func (p *SearchPage) Resize(height int) Outcome {
	if height < MinHeight {
		return unhandled()
	}
	p.perPage = ItemsPerPage(height)
	if p.results != nil {
		p.results.Reflow(p.perPage)
	}
	return handled()
}

// Draw advances the fetch coordinator and returns the drawable state
func (p *SearchPage) Draw() (SearchSnapshot, Outcome) {
	out := handled()
	if err := p.deps.Coordinator.Step(p.results, p.perPage); err != nil {
		out = p.fail("fetch", err)
	}
	return p.snapshot(), out
}

func (p *SearchPage) snapshot() SearchSnapshot {
	s := SearchSnapshot{
		Query:        p.query.Text(),
		Cursor:       p.query.Cursor(),
		Editing:      p.query.Active(),
		ExpandedHelp: p.expandedHelp,
		ItemsPerPage: p.perPage,
	}
	rs := p.results
	if rs == nil {
		return s
	}
	s.HasResults = true
	s.Committed = rs.Query
	s.Page = rs.Page
	s.Index = rs.Index
	s.PageCount = len(rs.Pages)
	s.TotalItems = rs.ItemCount()
	s.Registry = rs.Total
	s.Loading = rs.Loading()
	s.Exhausted = rs.Exhausted
	if rs.Page < len(rs.Pages) {
		s.Items = rs.Pages[rs.Page]
	}
	_, s.HasSelection = rs.Selected()
	return s
}

func (p *SearchPage) apply(a types.Action) Outcome {
	switch a := a.(type) {
	case types.InsertTextAction:
		for _, r := range a.Runes {
			p.query.Insert(r)
		}
	case types.BackspaceAction:
		p.query.Backspace()
	case types.DeleteAction:
		p.query.Delete()
	case types.MoveCursorAction:
		if a.Direction == types.DirLeft {
			p.query.Left()
		} else {
			p.query.Right()
		}
	case types.SubmitTextAction:
		p.commit()
	case types.CancelTextAction:
		p.query.Deactivate()

	case types.StartSearchAction:
		p.query.Activate()
	case types.ToggleHelpAction:
		p.expandedHelp = !p.expandedHelp
	case types.NavigateAction:
		p.navigate(a.Direction)

	default:
		return p.crateAction(a)
	}
	return handled()
}

func (p *SearchPage) navigate(d types.Direction) {
	rs := p.results
	if rs == nil {
		return
	}
	c := rs.Cursor()
	switch d {
	case types.DirUp:
		c = logic.RetreatIndex(rs.Pages, c)
	case types.DirDown:
		c = logic.AdvanceIndex(rs.Pages, c)
	case types.DirLeft:
		c = logic.RetreatPage(rs.Pages, c)
	case types.DirRight:
		c = logic.AdvancePage(rs.Pages, c)
	}
	rs.SetCursor(c)
}

// crateAction runs an action against the selected crate, warning when
// nothing is selected.
func (p *SearchPage) crateAction(a types.Action) Outcome {
	var crate domain.Crate
	ok := false
	if p.results != nil {
		crate, ok = p.results.Selected()
	}
	if !ok {
		p.logger.Debug("action without selection", "action", a.Type())
		return warn()
	}

	switch a := a.(type) {
	case types.OpenLinkAction:
		return p.openLink(crate, a.Target)

	case types.AddDependencyAction:
		if err := p.deps.Manifest.Add(crate.ID, crate.Version()); err != nil {
			return p.fail("add dependency", err)
		}
		p.logger.Info("dependency added", "crate", crate.ID, "version", crate.Version())

	case types.RemoveDependencyAction:
		removed, err := p.deps.Manifest.Remove(crate.ID)
		if err != nil {
			return p.fail("remove dependency", err)
		}
		p.logger.Info("dependency removed", "crate", crate.ID, "present", removed)

	case types.InstallAction:
		if _, err := p.deps.Installer.Install(crate.ID); err != nil {
			return p.fail("install", err)
		}

	case types.FavouriteAction:
		if p.deps.Favourites.AddFavourite(crate.ID) {
			p.logger.Info("favourite added", "crate", crate.ID)
			p.publish(domain.FavouriteAddedEvent{Name: crate.ID})
		}

	case types.CopyAction:
		line := DependencyLine(crate)
		if err := p.deps.Clipboard.Copy(line); err != nil {
			return p.fail("copy", err)
		}

	case types.ViewDetailsAction:
		return Outcome{Handled: true, Cmd: func() tea.Msg { return ShowDetailsMsg{Crate: crate} }}

	default:
		return unhandled()
	}
	return handled()
}

func (p *SearchPage) openLink(c domain.Crate, target types.LinkTarget) Outcome {
	var u string
	switch target {
	case types.LinkRegistry:
		u = links.RegistryURL(c.ID)
	case types.LinkDocs:
		u = links.DocsURL(c.ID)
	case types.LinkRepository:
		repo, err := links.RepositoryURL(c)
		if err != nil {
			return warn()
		}
		u = repo
	}
	if err := p.deps.Opener.Open(u); err != nil {
		return p.fail("open link", err)
	}
	p.publish(domain.LinkOpenedEvent{URL: u})
	return handled()
}

func (p *SearchPage) fail(what string, err error) Outcome {
	p.logger.Error(what+" failed", "error", err.Error())
	p.publish(domain.ErrorEvent{Message: what, Err: err})
	return failed(err)
}

func (p *SearchPage) publish(e domain.DomainEvent) {
	if p.deps.Bus != nil {
		p.deps.Bus.Publish(e)
	}
}

// DependencyLine renders the manifest line for c, e.g. serde = "1.0.210"
func DependencyLine(c domain.Crate) string {
	return fmt.Sprintf("%s = %q", c.ID, c.Version())
}
