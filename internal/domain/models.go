package domain

// Crate represents a single search hit returned by the registry
type Crate struct {
	ID               string
	Description      string
	Repository       string // empty when the crate does not publish one
	Documentation    string
	Homepage         string
	Downloads        uint64
	RecentDownloads  uint64
	MaxVersion       string
	MaxStableVersion string // empty when only pre-releases exist
}

// Version returns the version that should be written to a manifest:
// the newest stable release when there is one, otherwise the newest release.
func (c Crate) Version() string {
	if c.MaxStableVersion != "" {
		return c.MaxStableVersion
	}
	return c.MaxVersion
}

// Batch is one page of search results as returned by the registry
type Batch struct {
	Items         []Crate
	MoreAvailable bool
	Total         int // total hits reported by the registry for the query
}

// Dependency is an entry of a manifest's [dependencies] table
type Dependency struct {
	Name    string
	Version string // empty for path/git dependencies without a version
}
