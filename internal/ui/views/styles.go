package views

import (
	"github.com/charmbracelet/lipgloss"

	"cratui/internal/ui/state"
)

// Palette holds the configured colors as #rrggbb strings
type Palette struct {
	Primary   string
	Secondary string
	Warn      string
	Error     string
}

// Styles contains all the style definitions for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleWarn  lipgloss.Style
	TitleError lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	SearchBar  lipgloss.Style
	SearchEdit lipgloss.Style
	Cursor     lipgloss.Style
	CrateName  lipgloss.Style
	Version    lipgloss.Style
	Dim        lipgloss.Style
	Downloads  lipgloss.Style
	Selected   lipgloss.Style
	Row        lipgloss.Style
	Dot        lipgloss.Style
	ActiveDot  lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	Main       lipgloss.Style
}

// NewStyles creates the styles for palette p
func NewStyles(p Palette) *Styles {
	primary := lipgloss.Color(p.Primary)
	secondary := lipgloss.Color(p.Secondary)
	titleBase := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1)

	return &Styles{
		Title:      titleBase.Background(primary),
		TitleWarn:  titleBase.Background(lipgloss.Color(p.Warn)),
		TitleError: titleBase.Background(lipgloss.Color(p.Error)),
		Tab:        lipgloss.NewStyle().Padding(0, 1).Faint(true),
		ActiveTab:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(primary).Underline(true),
		SearchBar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			Padding(0, 1),
		SearchEdit: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(primary).
			Foreground(primary).
			Padding(0, 1),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		CrateName: lipgloss.NewStyle().Bold(true),
		Version:   lipgloss.NewStyle().Foreground(secondary),
		Dim:       lipgloss.NewStyle().Faint(true),
		Downloads: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(primary).
			PaddingLeft(1),
		Row:       lipgloss.NewStyle().PaddingLeft(2),
		Dot:       lipgloss.NewStyle().Faint(true),
		ActiveDot: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(0, 1),
	}
}

// TitleFor picks the title bar style for the active blink signal
func (s *Styles) TitleFor(sig state.Signal) lipgloss.Style {
	switch sig {
	case state.SignalError:
		return s.TitleError
	case state.SignalWarn:
		return s.TitleWarn
	default:
		return s.Title
	}
}
