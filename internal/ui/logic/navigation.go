package logic

// Cursor addresses one item of a paged result set
type Cursor struct {
	Page  int
	Index int
}

// lastIndex is the last valid index of pages[p], 0 for an empty page
func lastIndex[T any](pages [][]T, p int) int {
	if n := len(pages[p]); n > 0 {
		return n - 1
	}
	return 0
}

// normalize pulls an out-of-range cursor back onto pages
func normalize[T any](pages [][]T, c Cursor) Cursor {
	c.Page = max(0, min(c.Page, len(pages)-1))
	return clampIndex(pages, c)
}

func clampIndex[T any](pages [][]T, c Cursor) Cursor {
	if last := lastIndex(pages, c.Page); c.Index > last {
		c.Index = last
	}
	if c.Index < 0 {
		c.Index = 0
	}
	return c
}

// AdvanceIndex moves to the next item, crossing into the next page and
// wrapping from the last item to (0, 0).
func AdvanceIndex[T any](pages [][]T, c Cursor) Cursor {
	if len(pages) == 0 {
		return c
	}
	c = normalize(pages, c)
	switch {
	case c.Index < len(pages[c.Page])-1:
		c.Index++
	case c.Page < len(pages)-1:
		c = Cursor{Page: c.Page + 1}
	default:
		c = Cursor{}
	}
	return c
}

// RetreatIndex moves to the previous item, crossing into the previous page
// and wrapping from (0, 0) to the last item of the last page.
func RetreatIndex[T any](pages [][]T, c Cursor) Cursor {
	if len(pages) == 0 {
		return c
	}
	c = normalize(pages, c)
	switch {
	case c.Index > 0:
		c.Index--
	case c.Page > 0:
		c.Page--
		c.Index = lastIndex(pages, c.Page)
	default:
		c.Page = len(pages) - 1
		c.Index = lastIndex(pages, c.Page)
	}
	return c
}

// AdvancePage moves to the next page, wrapping to page 0. The index is
// clamped to the target page.
func AdvancePage[T any](pages [][]T, c Cursor) Cursor {
	if len(pages) == 0 {
		return c
	}
	c = normalize(pages, c)
	if c.Page < len(pages)-1 {
		c.Page++
	} else {
		c.Page = 0
	}
	return clampIndex(pages, c)
}

// RetreatPage moves to the previous page, wrapping to the last page. The
// index is clamped to the target page.
func RetreatPage[T any](pages [][]T, c Cursor) Cursor {
	if len(pages) == 0 {
		return c
	}
	c = normalize(pages, c)
	if c.Page > 0 {
		c.Page--
	} else {
		c.Page = len(pages) - 1
	}
	return clampIndex(pages, c)
}

// Selected returns the item under c
func Selected[T any](pages [][]T, c Cursor) (T, bool) {
	var zero T
	if c.Page < 0 || c.Page >= len(pages) {
		return zero, false
	}
	page := pages[c.Page]
	if c.Index < 0 || c.Index >= len(page) {
		return zero, false
	}
	return page[c.Index], true
}

// Flatten concatenates pages in order
func Flatten[T any](pages [][]T) []T {
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	items := make([]T, 0, total)
	for _, p := range pages {
		items = append(items, p...)
	}
	return items
}

// Chunk splits items into pages of n (the last one may be shorter)
func Chunk[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	pages := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// Reflow re-chunks pages into pages of n and maps c onto the new layout by
// flat position page*n+index, clamped to the last item. A selection that is
// valid in the new layout is unchanged. Empty input yields no pages and (0, 0).
func Reflow[T any](pages [][]T, c Cursor, n int) ([][]T, Cursor) {
	if n < 1 {
		n = 1
	}
	items := Flatten(pages)
	if len(items) == 0 {
		return [][]T{}, Cursor{}
	}

	pos := c.Page*n + c.Index
	pos = max(0, min(pos, len(items)-1))

	return Chunk(items, n), Cursor{Page: pos / n, Index: pos % n}
}
