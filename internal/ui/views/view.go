package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/pages"
	"cratui/internal/ui/state"
)

// ReadyMarker is drawn in the title bar for the end-to-end tests
const ReadyMarker = "__READY__"

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ViewState contains all the state needed for rendering one frame
type ViewState struct {
	Width      int
	Height     int
	Tabs       []string
	ActiveTab  int
	Signal     state.Signal
	ShowReady  bool
	Status     string
	Search     *pages.SearchSnapshot
	Manage     *pages.ManageSnapshot
	Favourites *pages.FavouritesSnapshot
	SearchKeys modes.KeyMap
	ListKeys   modes.ListKeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	help   help.Model
}

// NewRenderer creates a new renderer
func NewRenderer(p Palette) *Renderer {
	h := help.New()
	h.ShortSeparator = " · "
	return &Renderer{
		styles: NewStyles(p),
		help:   h,
	}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.Width <= 0 {
		vs.Width = defaultWidth
	}
	if vs.Height <= 0 {
		vs.Height = defaultHeight
	}
	inner := max(1, vs.Width-2)

	var body, footer string
	switch {
	case vs.Search != nil:
		body = r.renderSearch(*vs.Search, inner)
		footer = r.renderSearchFooter(*vs.Search, vs.SearchKeys, inner)
	case vs.Manage != nil:
		body = r.renderManage(*vs.Manage, inner)
		footer = r.renderListHelp(vs.ListKeys, inner)
	case vs.Favourites != nil:
		body = r.renderFavourites(*vs.Favourites, inner)
		footer = r.renderListHelp(vs.ListKeys, inner)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		r.renderTitle(vs, inner),
		r.renderTabs(vs.Tabs, vs.ActiveTab),
	)
	if vs.Status != "" {
		footer = lipgloss.JoinVertical(lipgloss.Left, r.styles.Error.Render(vs.Status), footer)
	}

	used := lipgloss.Height(header) + lipgloss.Height(body) + lipgloss.Height(footer)
	gap := vs.Height - used
	content := &strings.Builder{}
	content.WriteString(header)
	content.WriteString("\n")
	content.WriteString(body)
	if gap > 0 {
		content.WriteString(strings.Repeat("\n", gap))
	} else {
		content.WriteString("\n")
	}
	content.WriteString(footer)

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState, width int) string {
	title := "cratui"
	if vs.ShowReady {
		title += " " + ReadyMarker
	}
	return r.styles.TitleFor(vs.Signal).Width(width).Render(title)
}

func (r *Renderer) renderTabs(tabs []string, active int) string {
	parts := make([]string, 0, len(tabs))
	for i, name := range tabs {
		label := string(rune('1'+i)) + " " + name
		if i == active {
			parts = append(parts, r.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, r.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *Renderer) renderListHelp(keys modes.ListKeyMap, width int) string {
	h := r.help
	h.Width = width
	return h.View(keys)
}
