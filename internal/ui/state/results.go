package state

import (
	"cratui/internal/domain"
	"cratui/internal/ui/logic"
)

// ResultsState holds one committed search. Query and BatchSize are frozen
// for the state's lifetime; a new search replaces the whole value.
type ResultsState struct {
	Query     string
	Pages     [][]domain.Crate
	Page      int
	Index     int
	Exhausted bool
	Pending   *Handle
	Batches   int // batches folded so far; the next fetch targets this number
	BatchSize int
	Total     int // hits reported by the registry
}

// NewResultsState creates an empty state for query
func NewResultsState(query string, batchSize int) *ResultsState {
	return &ResultsState{
		Query:     query,
		Pages:     [][]domain.Crate{},
		BatchSize: batchSize,
	}
}

// Cursor returns the selection as a logic.Cursor
func (r *ResultsState) Cursor() logic.Cursor {
	return logic.Cursor{Page: r.Page, Index: r.Index}
}

// SetCursor stores a selection
func (r *ResultsState) SetCursor(c logic.Cursor) {
	r.Page, r.Index = c.Page, c.Index
}

// Selected returns the crate under the selection
func (r *ResultsState) Selected() (domain.Crate, bool) {
	return logic.Selected(r.Pages, r.Cursor())
}

// ItemCount is the number of crates across all pages
func (r *ResultsState) ItemCount() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p)
	}
	return n
}

// Loading reports whether a fetch is in flight
func (r *ResultsState) Loading() bool {
	return r.Pending != nil
}

// Reflow re-chunks the pages into pages of n in place
func (r *ResultsState) Reflow(n int) {
	pages, c := logic.Reflow(r.Pages, r.Cursor(), n)
	r.Pages = pages
	r.SetCursor(c)
}
