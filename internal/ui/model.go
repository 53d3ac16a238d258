package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cratui/internal/eventbus"
	"cratui/internal/logging"
	"cratui/internal/ui/pages"
	"cratui/internal/ui/state"
	"cratui/internal/ui/views"
)

// Tab identifies one of the top-level pages
type Tab int

const (
	TabSearch Tab = iota
	TabManage
	TabFavourites
)

var tabNames = []string{"Search", "Manage", "Favourites"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "Unknown"
}

// DefaultTickRate is used when Options.TickRate is zero
const DefaultTickRate = 250 * time.Millisecond

// Options wires the model to its collaborators
type Options struct {
	Search       pages.SearchDeps
	Manifest     pages.DependencyLister
	Favourites   pages.Favourites
	Palette      views.Palette
	Pager        Pager
	TickRate     time.Duration
	InitialQuery string
	ShowReady    bool // draw the end-to-end ready marker
	Logger       *logging.Logger
}

// Model is the Bubble Tea host: tabs, frame ticks, global keys and the blink
type Model struct {
	search     *pages.SearchPage
	manage     *pages.ManagePage
	favourites *pages.FavouritesPage

	tab      Tab
	blink    *state.Blink
	renderer *views.Renderer
	pager    Pager
	logger   *logging.Logger

	width  int
	height int

	tickRate     time.Duration
	initialQuery string
	showReady    bool
	inPagerMode  bool
	status       string

	// tickGen is the live tick chain; ticks from older chains are dropped
	tickGen int

	// waiting is the handle the wake-up command is blocked on
	waiting *state.Handle

	searchSnap     pages.SearchSnapshot
	manageSnap     pages.ManageSnapshot
	favouritesSnap pages.FavouritesSnapshot

	now func() time.Time
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if opts.Search.Logger == nil {
		opts.Search.Logger = logger
	}
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	return &Model{
		search:       pages.NewSearchPage(opts.Search),
		manage:       pages.NewManagePage(opts.Manifest, opts.Search.Bus, logger),
		favourites:   pages.NewFavouritesPage(opts.Favourites),
		blink:        state.NewBlink(),
		renderer:     views.NewRenderer(opts.Palette),
		pager:        opts.Pager,
		logger:       logger.With("component", "ui"),
		tickRate:     tickRate,
		initialQuery: opts.InitialQuery,
		showReady:    opts.ShowReady,
		now:          time.Now,
	}
}

// Tab returns the active tab
func (m *Model) Tab() Tab { return m.tab }

// Search returns the search page controller
func (m *Model) Search() *pages.SearchPage { return m.search }

// Init commits the initial query, if any, and starts the frame ticks
func (m *Model) Init() tea.Cmd {
	if m.initialQuery != "" {
		m.search.Commit(m.initialQuery)
	}
	return tea.Batch(m.tick(), m.draw())
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// restartTicks starts a new tick chain and retires the current one
func (m *Model) restartTicks() tea.Cmd {
	m.tickGen++
	return m.tick()
}

// Update handles one message and then runs a draw pass
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Resize(msg.Height)

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tickMsg:
		if msg.gen != m.tickGen || m.inPagerMode {
			return m, nil
		}
		cmds = append(cmds, m.tick())

	case fetchReadyMsg:
		if m.waiting == msg.handle {
			m.waiting = nil
		}

	case clearBlinkMsg:

	case EventMsg:
		cmds = append(cmds, m.handleEvent(msg.Event))

	case pages.ShowDetailsMsg:
		cmds = append(cmds, m.showDetails(msg.Crate.ID, views.DetailsText(msg.Crate)))

	case pages.SearchFavouriteMsg:
		m.tab = TabSearch
		m.search.Commit(msg.ID)
		m.logger.Info("search favourite", "crate", msg.ID)

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			cmds = append(cmds, m.apply(pages.Outcome{Handled: true, Signal: state.SignalError, Err: msg.err}))
		}
		cmds = append(cmds, m.restartTicks())
	}

	cmds = append(cmds, m.draw())
	return m, tea.Batch(cmds...)
}

// handleEvent reports background work that finished outside a key press
func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	done, ok := e.(eventbus.InstallFinishedEvent)
	if !ok {
		return nil
	}
	if done.Err != nil {
		return m.apply(pages.Outcome{Handled: true, Signal: state.SignalError, Err: fmt.Errorf("install %s: %w", done.Name, done.Err)})
	}
	m.status = "installed " + done.Name
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyF4:
		return nil, true
	}
	m.status = ""

	var out pages.Outcome
	switch m.tab {
	case TabSearch:
		out = m.search.HandleKey(msg)
	case TabManage:
		out = m.manage.HandleKey(msg)
	case TabFavourites:
		out = m.favourites.HandleKey(msg)
	}
	if out.Handled {
		return m.apply(out), false
	}

	switch msg.String() {
	case "q", "esc":
		return nil, true
	case "tab":
		return m.switchTab((m.tab + 1) % Tab(len(tabNames))), false
	case "shift+tab":
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))), false
	case "1":
		return m.switchTab(TabSearch), false
	case "2":
		return m.switchTab(TabManage), false
	case "3":
		return m.switchTab(TabFavourites), false
	}
	return nil, false
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	m.tab = t
	if t == TabManage {
		return m.apply(m.manage.Activate())
	}
	return nil
}

// apply raises the outcome's signal and returns its follow-up command
func (m *Model) apply(out pages.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	if out.Signal != state.SignalNone {
		m.blink.Raise(out.Signal, m.now())
		cmds = append(cmds, tea.Tick(m.blink.Window(), func(time.Time) tea.Msg {
			return clearBlinkMsg{}
		}))
	}
	if out.Err != nil {
		m.status = out.Err.Error()
	}
	if out.Cmd != nil {
		cmds = append(cmds, out.Cmd)
	}
	return tea.Batch(cmds...)
}

// draw runs the draw pass of every page and arms the fetch wake-up.
// The search page is stepped even when another tab is active so that
// background batches keep folding in.
func (m *Model) draw() tea.Cmd {
	snap, out := m.search.Draw()
	m.searchSnap = snap
	cmd := m.apply(out)

	if m.tab == TabManage {
		m.manageSnap = m.manage.Draw()
	}
	if m.tab == TabFavourites {
		m.favouritesSnap = m.favourites.Draw()
	}

	if h := m.search.Pending(); h != nil && h != m.waiting {
		m.waiting = h
		cmd = tea.Batch(cmd, waitFor(h))
	}
	return cmd
}

// waitFor blocks on Bubble Tea's command goroutine until h resolves
func waitFor(h *state.Handle) tea.Cmd {
	return func() tea.Msg {
		<-h.Done()
		return fetchReadyMsg{handle: h}
	}
}

func (m *Model) showDetails(id, content string) tea.Cmd {
	if m.pager == nil {
		return nil
	}
	pager := m.pager
	logger := m.logger
	return tea.Sequence(
		func() tea.Msg { return pauseRenderingMsg{} },
		func() tea.Msg {
			err := pager.Show(content)
			if err != nil {
				logger.Error("pager failed", "crate", id, "error", err)
			}
			return pagerDoneMsg{err: err}
		},
	)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.height < pages.MinHeight {
		return "Terminal too small"
	}

	vs := views.ViewState{
		Width:     m.width,
		Height:    m.height,
		Tabs:      tabNames,
		ActiveTab: int(m.tab),
		Signal:    m.blink.Active(m.now()),
		ShowReady: m.showReady,
		Status:    m.status,
	}
	switch m.tab {
	case TabSearch:
		snap := m.searchSnap
		vs.Search = &snap
		vs.SearchKeys = m.search.Keys()
	case TabManage:
		snap := m.manageSnap
		vs.Manage = &snap
		vs.ListKeys = m.manage.Keys()
	case TabFavourites:
		snap := m.favouritesSnap
		vs.Favourites = &snap
		vs.ListKeys = m.favourites.Keys()
	}
	return m.renderer.Render(vs)
}

var _ tea.Model = (*Model)(nil)
