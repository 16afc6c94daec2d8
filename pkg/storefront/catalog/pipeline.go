package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDebounce is how long the pipeline waits after the last filter
// change before fetching. Typing in the search box produces a burst of
// changes; only the final state should hit the API.
const DefaultDebounce = 300 * time.Millisecond

// FetchFunc loads one page of products for the given filter state.
type FetchFunc func(ctx context.Context, state FilterState) (Page, error)

// Pipeline drives the catalog view: it debounces filter changes, fetches
// results, and drops responses that were overtaken by a newer request so the
// view never flickers back to stale data.
type Pipeline struct {
	fetch    FetchFunc
	onResult func(Page)
	onError  func(error)
	debounce time.Duration

	seq atomic.Uint64

	mu        sync.Mutex
	state     FilterState
	timer     *time.Timer
	delivered uint64
}

func NewPipeline(fetch FetchFunc, onResult func(Page), onError func(error)) *Pipeline {
	if onError == nil {
		onError = func(error) {}
	}
	return &Pipeline{
		fetch:    fetch,
		onResult: onResult,
		onError:  onError,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the debounce interval. A zero duration makes every
// update fetch immediately.
func (p *Pipeline) SetDebounce(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debounce = d
}

// State returns the current filter state.
func (p *Pipeline) State() FilterState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Update replaces the filter state and schedules a debounced fetch. Rapid
// successive updates collapse into a single request for the final state.
func (p *Pipeline) Update(ctx context.Context, state FilterState) {
	p.mu.Lock()
	p.state = state

	if p.timer != nil {
		p.timer.Stop()
	}

	if p.debounce <= 0 {
		p.mu.Unlock()
		p.Refresh(ctx)
		return
	}

	p.timer = time.AfterFunc(p.debounce, func() {
		p.Refresh(ctx)
	})
	p.mu.Unlock()
}

// Refresh fetches the current state immediately, bypassing the debounce.
// If a newer fetch starts before this one returns, the result is discarded.
func (p *Pipeline) Refresh(ctx context.Context) {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()

	token := p.seq.Add(1)

	go func() {
		page, err := p.fetch(ctx, state)

		// A later request owns the view now; drop this response. The
		// delivered watermark also keeps out-of-order completions from
		// rolling the view back.
		p.mu.Lock()
		if p.seq.Load() != token || token <= p.delivered {
			p.mu.Unlock()
			return
		}
		p.delivered = token
		p.mu.Unlock()

		if err != nil {
			p.onError(err)
			return
		}
		p.onResult(page)
	}()
}

// Stop cancels any pending debounced fetch and invalidates in-flight
// requests so no further results are delivered.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	p.seq.Add(1)
}
