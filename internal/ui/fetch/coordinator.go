// Package fetch decides when a search starts its next background request and
// folds finished requests into the results.
package fetch

import (
	"context"
	"fmt"

	"cratui/internal/domain"
	"cratui/internal/eventbus"
	"cratui/internal/logging"
	"cratui/internal/registry"
	"cratui/internal/ui/state"
)

// Searcher fetches one batch of search results
type Searcher interface {
	Search(ctx context.Context, query string, page, limit int) (domain.Batch, error)
}

// Coordinator keeps at most one fetch in flight per ResultsState. It never
// blocks: dispatch is fire-and-forget and completion is polled.
type Coordinator struct {
	ctx      context.Context
	searcher Searcher
	maxPages int
	bus      eventbus.EventBus
	logger   *logging.Logger
}

// NewCoordinator creates a coordinator. Fetches run under ctx, so cancelling
// it aborts outstanding requests.
func NewCoordinator(ctx context.Context, searcher Searcher, maxPages int, bus eventbus.EventBus, logger *logging.Logger) *Coordinator {
	if maxPages < 1 {
		maxPages = 1
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Coordinator{
		ctx:      ctx,
		searcher: searcher,
		maxPages: maxPages,
		bus:      bus,
		logger:   logger.With("component", "fetch"),
	}
}

// MaxPages is the configured batch limit per search
func (c *Coordinator) MaxPages() int { return c.maxPages }

// Commit starts a new search for query. The batch size is the current page
// size capped at the registry limit.
func (c *Coordinator) Commit(query string, perPage int) *state.ResultsState {
	size := registry.ClampLimit(perPage)
	c.logger.Info("search committed", "query", query, "batch_size", size)
	c.publish(domain.SearchCommittedEvent{Query: query, BatchSize: size})
	return state.NewResultsState(query, size)
}

// Step runs once per draw pass. It folds a finished fetch, or dispatches
// the next one when nothing is pending and the search is not exhausted.
// A failed fetch is returned as an error; the same batch is requested
// again on the next pass.
func (c *Coordinator) Step(rs *state.ResultsState, perPage int) error {
	if rs == nil {
		return nil
	}

	if h := rs.Pending; h != nil {
		res, ok := h.Poll()
		if !ok {
			return nil
		}
		rs.Pending = nil

		if h.Page() != rs.Batches {
			c.logger.Warn("discarding stale batch", "query", rs.Query, "batch", h.Page(), "expected", rs.Batches)
			return nil
		}
		if res.Err != nil {
			c.logger.Error("fetch failed", "query", rs.Query, "batch", h.Page(), "error", res.Err.Error())
			c.publish(domain.FetchFailedEvent{Query: rs.Query, Batch: h.Page(), Err: res.Err})
			return fmt.Errorf("failed to fetch batch %d of %q: %w", h.Page(), rs.Query, res.Err)
		}

		c.fold(rs, res.Batch, perPage)
		return nil
	}

	if !rs.Exhausted {
		c.dispatch(rs)
	}
	return nil
}

func (c *Coordinator) fold(rs *state.ResultsState, batch domain.Batch, perPage int) {
	// An empty batch still becomes a page while the layout matches the batch size.
	rs.Pages = append(rs.Pages, batch.Items)
	if perPage != rs.BatchSize {
		rs.Reflow(perPage)
	}
	rs.Batches++
	rs.Total = batch.Total
	rs.Exhausted = !batch.MoreAvailable || rs.Batches >= c.maxPages

	c.logger.Debug("batch folded",
		"query", rs.Query,
		"batch", rs.Batches-1,
		"items", len(batch.Items),
		"exhausted", rs.Exhausted)
	c.publish(domain.BatchLoadedEvent{
		Query:     rs.Query,
		Batch:     rs.Batches - 1,
		Items:     len(batch.Items),
		Exhausted: rs.Exhausted,
	})
}

func (c *Coordinator) dispatch(rs *state.ResultsState) {
	h := state.NewHandle(rs.Batches)
	rs.Pending = h

	query, page, limit := rs.Query, rs.Batches, rs.BatchSize
	c.logger.Debug("dispatching fetch", "query", query, "batch", page, "limit", limit)

	go func() {
		batch, err := c.searcher.Search(c.ctx, query, page, limit)
		h.Resolve(batch, err)
	}()
}

func (c *Coordinator) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
