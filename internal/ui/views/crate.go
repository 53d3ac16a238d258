package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"cratui/internal/domain"
	"cratui/internal/ui/input/modes"
	"cratui/internal/ui/pages"
)

// rowHeight is the number of terminal rows one result occupies
const rowHeight = 4

func (r *Renderer) renderSearch(s pages.SearchSnapshot, width int) string {
	var b strings.Builder
	b.WriteString(r.renderSearchBar(s))
	b.WriteString("\n")

	switch {
	case !s.HasResults:
		b.WriteString(r.styles.Dim.Render("Type a query and press enter"))
		return b.String()
	case s.TotalItems == 0 && s.Loading:
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Searching for %q...", s.Committed)))
		return b.String()
	case s.TotalItems == 0 && s.Exhausted:
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("No crates found for %q", s.Committed)))
		return b.String()
	}

	rows := make([]string, 0, len(s.Items))
	for i, c := range s.Items {
		rows = append(rows, r.RenderCrate(c, s.HasSelection && i == s.Index, width))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (r *Renderer) renderSearchBar(s pages.SearchSnapshot) string {
	runes := []rune(s.Query)
	var text string
	if s.Editing {
		cursor := min(s.Cursor, len(runes))
		under := " "
		rest := ""
		if cursor < len(runes) {
			under = string(runes[cursor])
			rest = string(runes[cursor+1:])
		}
		text = string(runes[:cursor]) + r.styles.Cursor.Render(under) + rest
	} else {
		text = s.Query
	}

	width := max(len(runes), 9) + 2
	if s.Editing {
		return r.styles.SearchEdit.Width(width).Render(text)
	}
	return r.styles.SearchBar.Width(width).Render(text)
}

// RenderCrate renders one result: name and version, description, downloads
func (r *Renderer) RenderCrate(c domain.Crate, selected bool, width int) string {
	inner := max(10, width-3)

	name := r.styles.CrateName.Render(c.ID) + " " + r.styles.Version.Render("v"+c.Version())
	desc := c.Description
	if desc == "" {
		desc = "no description"
	}
	desc = truncate.StringWithTail(strings.Join(strings.Fields(desc), " "), uint(inner), "…")
	downloads := fmt.Sprintf("↓ %s all time · %s recent",
		humanize.Comma(int64(c.Downloads)),
		humanize.Comma(int64(c.RecentDownloads)))

	block := lipgloss.JoinVertical(lipgloss.Left,
		name,
		r.styles.Dim.Render(desc),
		r.styles.Downloads.Render(downloads),
	)
	if selected {
		block = r.styles.Selected.Render(block)
	} else {
		block = r.styles.Row.Render(block)
	}
	return block + strings.Repeat("\n", rowHeight-3)
}

func (r *Renderer) renderSearchFooter(s pages.SearchSnapshot, keys modes.KeyMap, width int) string {
	var status string
	if s.HasResults && s.PageCount > 0 {
		status = r.renderDots(s.PageCount, s.Page)
		counts := fmt.Sprintf(" page %d/%d · %d loaded", s.Page+1, s.PageCount, s.TotalItems)
		if s.Registry > 0 {
			counts += fmt.Sprintf(" of %s", humanize.Comma(int64(s.Registry)))
		}
		status += r.styles.Status.Render(counts)
	}
	if s.Loading {
		status += r.styles.Status.Render(" · loading")
	}

	h := r.help
	h.Width = width
	h.ShowAll = s.ExpandedHelp
	helpView := h.View(keys)

	if status == "" {
		return helpView
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, helpView)
}

func (r *Renderer) renderDots(count, current int) string {
	dots := make([]string, count)
	for i := range dots {
		if i == current {
			dots[i] = r.styles.ActiveDot.Render("●")
		} else {
			dots[i] = r.styles.Dot.Render("•")
		}
	}
	return strings.Join(dots, " ")
}
