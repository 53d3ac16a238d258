package views

import (
	"fmt"
	"strings"

	"cratui/internal/ui/pages"
)

func (r *Renderer) renderManage(s pages.ManageSnapshot, width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Dim.Render(s.Manifest))
	b.WriteString("\n\n")

	switch {
	case s.Err != nil:
		b.WriteString(r.styles.Error.Render(s.Err.Error()))
		return b.String()
	case !s.Loaded:
		b.WriteString(r.styles.Dim.Render("Loading dependencies..."))
		return b.String()
	case len(s.Deps) == 0:
		b.WriteString(r.styles.Dim.Render("No dependencies"))
		return b.String()
	}

	rows := make([]string, len(s.Deps))
	for i, d := range s.Deps {
		version := d.Version
		if version == "" {
			version = "*"
		}
		line := fmt.Sprintf("%s %s", r.styles.CrateName.Render(d.Name), r.styles.Version.Render(version))
		rows[i] = r.listRow(line, i == s.Index)
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (r *Renderer) renderFavourites(s pages.FavouritesSnapshot, width int) string {
	if len(s.IDs) == 0 {
		return r.styles.Dim.Render("No favourites yet. Press f on a search result to add one.")
	}
	rows := make([]string, len(s.IDs))
	for i, id := range s.IDs {
		rows[i] = r.listRow(r.styles.CrateName.Render(id), i == s.Index)
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) listRow(line string, selected bool) string {
	if selected {
		return r.styles.Selected.Render(line)
	}
	return r.styles.Row.Render(line)
}
