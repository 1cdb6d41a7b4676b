package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/timur/tennis-hub/internal/domain"
)

const (
	defaultDebounce    = 300 * time.Millisecond
	defaultPreviewSize = 3
)

// Sources are the three independent backends a query fans out to. Each is
// queried in parallel and may fail on its own without affecting the others.
type Sources struct {
	News func(ctx context.Context, query string) ([]domain.News, error)
	ATP  func(ctx context.Context, query string) ([]domain.Player, error)
	WTA  func(ctx context.Context, query string) ([]domain.Player, error)
}

// ResultSet is the merged preview for one query. A failed source contributes
// an empty list, exactly like a source with no matches.
type ResultSet struct {
	Query string
	News  []domain.News
	ATP   []domain.Player
	WTA   []domain.Player
}

func (r ResultSet) Total() int {
	return len(r.News) + len(r.ATP) + len(r.WTA)
}

// Empty reports whether the results surface should be hidden.
func (r ResultSet) Empty() bool {
	return r.Total() == 0
}

// Aggregator turns a stream of query edits into debounced, rate-bounded
// search fan-outs. Every dispatch carries a sequence number; a dispatch that
// is no longer the newest by the time it completes is discarded, so a slow
// early response can never overwrite a newer result.
type Aggregator struct {
	sources     Sources
	listener    func(ResultSet)
	submit      func(query string)
	debounce    time.Duration
	previewSize int
	log         zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

type Option func(*Aggregator)

// WithListener sets the callback receiving every applied ResultSet,
// including the empty set that clears the surface.
func WithListener(fn func(ResultSet)) Option {
	return func(a *Aggregator) {
		a.listener = fn
	}
}

// WithSubmitHandler sets the callback for explicit submission, which
// receives the raw query and replaces the preview with the full results
// view.
func WithSubmitHandler(fn func(query string)) Option {
	return func(a *Aggregator) {
		a.submit = fn
	}
}

func WithDebounce(d time.Duration) Option {
	return func(a *Aggregator) {
		a.debounce = d
	}
}

func WithPreviewSize(n int) Option {
	return func(a *Aggregator) {
		a.previewSize = n
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.log = log
	}
}

func NewAggregator(sources Sources, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources:     sources,
		debounce:    defaultDebounce,
		previewSize: defaultPreviewSize,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetQuery is called on every input change. Whitespace-only input clears the
// results immediately, with no debounce. Anything else cancels the pending
// dispatch, if any, and schedules a new one after the quiet period.
func (a *Aggregator) SetQuery(text string) {
	query := strings.TrimSpace(text)

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.seq++
	seq := a.seq

	if query == "" {
		a.mu.Unlock()
		a.emit(ResultSet{})
		return
	}

	a.timer = time.AfterFunc(a.debounce, func() {
		a.dispatch(seq, query)
	})
	a.mu.Unlock()
}

// Submit hands the raw query to the submit handler and clears the preview.
// Pending debounced dispatches are canceled; in-flight ones become stale.
func (a *Aggregator) Submit(text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		return
	}

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.seq++
	a.mu.Unlock()

	a.emit(ResultSet{})
	if a.submit != nil {
		a.submit(query)
	}
}

// Close cancels any pending dispatch. In-flight source calls are left to
// finish; their results are discarded as stale.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.seq++
}

// dispatch fans the query out to all three sources in parallel with an
// all-settled join: individual source failures are logged and count as
// empty, never failing the aggregate.
func (a *Aggregator) dispatch(seq uint64, query string) {
	ctx := context.Background()
	result := ResultSet{Query: query}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		items, err := a.sources.News(ctx, query)
		if err != nil {
			a.log.Debug().Err(err).Msg("[search.dispatch] news source failed")
			return
		}
		result.News = clip(items, a.previewSize)
	}()
	go func() {
		defer wg.Done()
		players, err := a.sources.ATP(ctx, query)
		if err != nil {
			a.log.Debug().Err(err).Msg("[search.dispatch] ATP source failed")
			return
		}
		result.ATP = clip(players, a.previewSize)
	}()
	go func() {
		defer wg.Done()
		players, err := a.sources.WTA(ctx, query)
		if err != nil {
			a.log.Debug().Err(err).Msg("[search.dispatch] WTA source failed")
			return
		}
		result.WTA = clip(players, a.previewSize)
	}()
	wg.Wait()

	a.mu.Lock()
	stale := seq != a.seq
	a.mu.Unlock()
	if stale {
		a.log.Debug().Str("query", query).Msg("[search.dispatch] discarding stale results")
		return
	}

	a.emit(result)
}

func (a *Aggregator) emit(result ResultSet) {
	if a.listener != nil {
		a.listener(result)
	}
}

func clip[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
