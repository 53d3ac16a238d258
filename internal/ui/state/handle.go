package state

import (
	"sync"

	"cratui/internal/domain"
)

// Handle is the result slot of one background fetch. It is resolved once by
// the fetching goroutine and consumed at most once by the owner.
type Handle struct {
	page   int
	done   chan struct{}
	once   sync.Once
	result Result
	taken  bool
}

// Result is what a fetch produced
type Result struct {
	Batch domain.Batch
	Err   error
}

// NewHandle creates an unresolved handle for batch number page
func NewHandle(page int) *Handle {
	return &Handle{page: page, done: make(chan struct{})}
}

// Page is the batch number the fetch targets
func (h *Handle) Page() int { return h.page }

// Done is closed once the result is available
func (h *Handle) Done() <-chan struct{} { return h.done }

// Resolve stores the result and wakes waiters. Later calls are ignored.
func (h *Handle) Resolve(batch domain.Batch, err error) {
	h.once.Do(func() {
		h.result = Result{Batch: batch, Err: err}
		close(h.done)
	})
}

// Poll reports the result without blocking. ok is false while the fetch is
// still running and after the result has already been taken.
func (h *Handle) Poll() (Result, bool) {
	select {
	case <-h.done:
	default:
		return Result{}, false
	}
	if h.taken {
		return Result{}, false
	}
	h.taken = true
	return h.result, true
}
