package views

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"cratui/internal/domain"
	"cratui/internal/links"
)

// DetailsText is the plain-text crate summary shown in the pager
func DetailsText(c domain.Crate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", c.ID, c.Version())
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(c.Description))
	}

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-16s %s\n", name, value)
		}
	}
	field("Latest", c.MaxVersion)
	field("Latest stable", c.MaxStableVersion)
	field("Downloads", humanize.Comma(int64(c.Downloads)))
	field("Recent", humanize.Comma(int64(c.RecentDownloads)))
	field("crates.io", links.RegistryURL(c.ID))
	field("docs.rs", links.DocsURL(c.ID))
	field("Documentation", c.Documentation)
	field("Repository", c.Repository)
	field("Homepage", c.Homepage)

	fmt.Fprintf(&b, "\n[dependencies]\n%s = %q\n", c.ID, c.Version())
	return b.String()
}
