package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/tegorov/flipt/internal/pkg/logger"
)

// State is the lifecycle of the analytics view.
type State int

const (
	// StateIdle: default duration selected, nothing requested yet
	StateIdle State = iota
	// StateResolving: the range is being recomputed
	StateResolving
	// StateFetching: a query is in flight
	StateFetching
	// StateDisplaying: the latest query finished, with or without data
	StateDisplaying
)

// String returns a human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Request is a query stamped with the refresh that produced it.
type Request struct {
	Seq   uint64
	Query Query
}

// Result is the outcome of fetching a Request.
type Result struct {
	Seq    uint64
	Query  Query
	Series *EvaluationSeries
	Err    error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResolver overrides the clock/zone used to resolve ranges.
func WithResolver(r *Resolver) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.resolver = r
		}
	}
}

// WithObserver registers an observer for query events.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithDuration sets the initial selection. nil starts without one, which
// resolves to the default window.
func WithDuration(d *DurationOption) Option {
	return func(o *Orchestrator) {
		if d == nil {
			o.selected = nil
			return
		}
		sel := *d
		o.selected = &sel
	}
}

// Orchestrator binds the selected duration, the active namespace and the
// current flag to evaluation-count queries. Only the result of the most
// recent Request is ever applied; older in-flight requests are cancelled
// and their late results dropped.
type Orchestrator struct {
	querier    Querier
	namespaces NamespaceProvider
	flags      FlagProvider
	resolver   *Resolver
	observer   Observer

	mu       sync.Mutex
	selected *DurationOption
	seq      uint64
	current  Request
	cancel   context.CancelFunc
	series   EvaluationSeries
	state    State
}

// NewOrchestrator creates an orchestrator with the default duration selected.
func NewOrchestrator(querier Querier, namespaces NamespaceProvider, flags FlagProvider, opts ...Option) *Orchestrator {
	def := DefaultDuration()
	o := &Orchestrator{
		querier:    querier,
		namespaces: namespaces,
		flags:      flags,
		resolver:   NewResolver(nil, nil),
		observer:   nopObserver{},
		selected:   &def,
		series:     EmptySeries(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Select changes the selected duration (nil clears it) and returns the
// request for the recomputed range.
func (o *Orchestrator) Select(d *DurationOption) Request {
	o.mu.Lock()
	defer o.mu.Unlock()

	if d == nil {
		o.selected = nil
	} else {
		sel := *d
		o.selected = &sel
	}
	return o.refreshLocked()
}

// Refresh recomputes the range against a new "now" with the current
// namespace and flag, and returns the request that supersedes all others.
func (o *Orchestrator) Refresh() Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refreshLocked()
}

func (o *Orchestrator) refreshLocked() Request {
	o.state = StateResolving
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}

	rng := o.resolver.Resolve(o.selected)
	o.seq++
	o.current = Request{
		Seq: o.seq,
		Query: Query{
			NamespaceKey: o.namespaces.CurrentNamespace(),
			FlagKey:      o.flags.CurrentFlag().Key,
			From:         rng.From,
			To:           rng.To,
		},
	}
	o.series = EmptySeries()
	o.state = StateFetching

	logger.Debug("evaluation count query resolved",
		"seq", o.current.Seq,
		"namespace", o.current.Query.NamespaceKey,
		"flag", o.current.Query.FlagKey,
		"from", rng.From,
		"to", rng.To)

	return o.current
}

// Fetch runs req against the querier. It blocks and is meant to run off the
// UI loop; the request is cancelled if a newer one is issued meanwhile.
func (o *Orchestrator) Fetch(ctx context.Context, req Request) Result {
	res := Result{Seq: req.Seq, Query: req.Query}
	if err := req.Query.Validate(); err != nil {
		res.Err = err
		return res
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if req.Seq != o.seq {
		o.mu.Unlock()
		res.Err = context.Canceled
		return res
	}
	o.cancel = cancel
	o.mu.Unlock()

	o.observer.QueryStarted(req.Query)
	start := time.Now()
	res.Series, res.Err = o.querier.GetFlagEvaluationsCount(ctx, req.Query)
	o.observer.QueryFinished(req.Query, time.Since(start), res.Err)

	return res
}

// Apply stores res if it answers the latest request and reports whether it
// did. A failed or empty result is stored as an empty series.
func (o *Orchestrator) Apply(res Result) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if res.Seq != o.seq {
		o.observer.StaleDiscarded(res.Query)
		logger.Debug("discarding superseded evaluation count result",
			"seq", res.Seq,
			"latest", o.seq)
		return false
	}

	if res.Err != nil {
		logger.Warn("evaluation count query failed",
			"namespace", res.Query.NamespaceKey,
			"flag", res.Query.FlagKey,
			"error", res.Err)
		o.series = EmptySeries()
	} else {
		o.series = SeriesOrEmpty(res.Series)
	}
	o.state = StateDisplaying
	return true
}

// Load refreshes, fetches and applies in one call. The returned series is
// what a renderer would show; err reports a failed fetch to callers that
// need it (exit codes), the series is empty in that case.
func (o *Orchestrator) Load(ctx context.Context) (EvaluationSeries, error) {
	res := o.Fetch(ctx, o.Refresh())
	o.Apply(res)
	return o.Series(), res.Err
}

// Series returns the series of the latest applied result.
func (o *Orchestrator) Series() EvaluationSeries {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.series
}

// Selected returns a copy of the selected duration, or nil.
func (o *Orchestrator) Selected() *DurationOption {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return nil
	}
	sel := *o.selected
	return &sel
}

// Current returns the latest request.
func (o *Orchestrator) Current() Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// State returns the lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}
