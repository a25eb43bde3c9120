package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNamespace struct{ key string }

func (s *staticNamespace) CurrentNamespace() string { return s.key }

type staticFlag struct{ flag Flag }

func (s *staticFlag) CurrentFlag() Flag { return s.flag }

// funcQuerier adapts a function to Querier and records every query.
type funcQuerier struct {
	mu      sync.Mutex
	queries []Query
	fn      func(ctx context.Context, q Query) (*EvaluationSeries, error)
}

func (f *funcQuerier) GetFlagEvaluationsCount(ctx context.Context, q Query) (*EvaluationSeries, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.fn(ctx, q)
}

type countingObserver struct {
	mu       sync.Mutex
	started  int
	finished int
	failed   int
	stale    int
}

func (c *countingObserver) QueryStarted(Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
}

func (c *countingObserver) QueryFinished(_ Query, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished++
	if err != nil {
		c.failed++
	}
}

func (c *countingObserver) StaleDiscarded(Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale++
}

type fixture struct {
	now       time.Time
	namespace *staticNamespace
	flag      *staticFlag
	querier   *funcQuerier
	observer  *countingObserver
	orch      *Orchestrator
}

func newFixture(t *testing.T, fn func(ctx context.Context, q Query) (*EvaluationSeries, error)) *fixture {
	t.Helper()
	f := &fixture{
		now:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		namespace: &staticNamespace{key: "default"},
		flag:      &staticFlag{flag: Flag{Key: "checkout"}},
		querier:   &funcQuerier{fn: fn},
		observer:  &countingObserver{},
	}
	resolver := NewResolver(func() time.Time { return f.now }, time.FixedZone("EST", -5*60*60))
	f.orch = NewOrchestrator(f.querier, f.namespace, f.flag,
		WithResolver(resolver),
		WithObserver(f.observer))
	return f
}

func seriesOf(values ...float64) *EvaluationSeries {
	s := &EvaluationSeries{}
	for i, v := range values {
		s.Timestamps = append(s.Timestamps, time.Date(2024, 3, 1, 6, i, 0, 0, time.UTC).Format(TimeFormat))
		s.Values = append(s.Values, v)
	}
	return s
}

func TestOrchestrator_InitialState(t *testing.T) {
	f := newFixture(t, nil)
	o := f.orch

	assert.Equal(t, StateIdle, o.State())
	require.NotNil(t, o.Selected())
	assert.Equal(t, DefaultDuration(), *o.Selected())
	assert.Equal(t, EmptySeries(), o.Series())
}

func TestOrchestrator_WithDuration(t *testing.T) {
	twelve, ok := FindDuration("12 hours")
	require.True(t, ok)

	o := NewOrchestrator(nil, &staticNamespace{}, &staticFlag{}, WithDuration(&twelve))
	twelve.Value = 1
	assert.Equal(t, 720, o.Selected().Value, "option is copied")

	o = NewOrchestrator(nil, &staticNamespace{}, &staticFlag{}, WithDuration(nil))
	assert.Nil(t, o.Selected())
}

func TestOrchestrator_RefreshBuildsFullQuery(t *testing.T) {
	f := newFixture(t, nil)

	req := f.orch.Refresh()

	assert.Equal(t, uint64(1), req.Seq)
	assert.Equal(t, Query{
		NamespaceKey: "default",
		FlagKey:      "checkout",
		From:         "2024-03-01 06:30:00",
		To:           "2024-03-01 07:00:00",
	}, req.Query)
	assert.Equal(t, StateFetching, f.orch.State())
	assert.Equal(t, req, f.orch.Current())
}

func TestOrchestrator_LoadDisplaysSeries(t *testing.T) {
	f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
		return seriesOf(1, 2, 3), nil
	})

	series, err := f.orch.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, series.Values)
	assert.Len(t, series.Timestamps, 3)
	assert.Equal(t, StateDisplaying, f.orch.State())
	assert.Equal(t, 1, f.observer.started)
	assert.Equal(t, 1, f.observer.finished)
}

func TestOrchestrator_NoDataIsEmptySeries(t *testing.T) {
	f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
		return nil, nil
	})

	series, err := f.orch.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, EvaluationSeries{Timestamps: []string{}, Values: []float64{}}, series)
	assert.Equal(t, StateDisplaying, f.orch.State())
}

func TestOrchestrator_FailureIsEmptySeries(t *testing.T) {
	boom := errors.New("connection refused")
	f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
		return nil, boom
	})

	series, err := f.orch.Load(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, EmptySeries(), series)
	assert.Equal(t, StateDisplaying, f.orch.State())
	assert.Equal(t, 1, f.observer.failed)
}

func TestOrchestrator_SelectNoneDefaultsToHour(t *testing.T) {
	f := newFixture(t, nil)

	req := f.orch.Select(nil)

	assert.Nil(t, f.orch.Selected())
	assert.Equal(t, "2024-03-01 06:00:00", req.Query.From)
	assert.Equal(t, "2024-03-01 07:00:00", req.Query.To)
}

func TestOrchestrator_SelectCopiesOption(t *testing.T) {
	f := newFixture(t, nil)
	d, ok := FindDuration("12 hours")
	require.True(t, ok)

	f.orch.Select(&d)
	d.Value = 1

	assert.Equal(t, 720, f.orch.Selected().Value)
}

func TestOrchestrator_FlagSwitchReissuesWithNewNow(t *testing.T) {
	f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
		return seriesOf(5), nil
	})
	fourHours, ok := FindDuration("4 hours")
	require.True(t, ok)

	first := f.orch.Select(&fourHours)
	assert.Equal(t, "2024-03-01 03:00:00", first.Query.From)
	assert.Equal(t, "2024-03-01 07:00:00", first.Query.To)

	// Navigate to another flag a few minutes later
	f.now = f.now.Add(5 * time.Minute)
	f.flag.flag = Flag{Key: "new-onboarding"}
	second := f.orch.Refresh()

	assert.Greater(t, second.Seq, first.Seq)
	assert.Equal(t, Query{
		NamespaceKey: "default",
		FlagKey:      "new-onboarding",
		From:         "2024-03-01 03:05:00",
		To:           "2024-03-01 07:05:00",
	}, second.Query)
	assert.Equal(t, 240, f.orch.Selected().Value, "selection survives navigation")
}

func TestOrchestrator_NamespaceSwitch(t *testing.T) {
	f := newFixture(t, nil)

	f.orch.Refresh()
	f.namespace.key = "staging"
	req := f.orch.Refresh()

	assert.Equal(t, "staging", req.Query.NamespaceKey)
}

func TestOrchestrator_LatestSelectionWins(t *testing.T) {
	release := make(chan struct{})
	stale := seriesOf(1)
	fresh := seriesOf(9, 9)

	f := newFixture(t, func(ctx context.Context, q Query) (*EvaluationSeries, error) {
		if q.From == "2024-03-01 06:30:00" {
			// First (30 minute) request: block until released; ignore
			// cancellation so its late result still arrives
			<-release
			return stale, nil
		}
		return fresh, nil
	})
	o := f.orch

	firstReq := o.Refresh()
	firstDone := make(chan Result, 1)
	go func() { firstDone <- o.Fetch(context.Background(), firstReq) }()

	// Wait until the first request is in flight
	require.Eventually(t, func() bool {
		f.querier.mu.Lock()
		defer f.querier.mu.Unlock()
		return len(f.querier.queries) == 1
	}, time.Second, time.Millisecond)

	fourHours, ok := FindDuration("4 hours")
	require.True(t, ok)
	secondReq := o.Select(&fourHours)
	assert.True(t, o.Apply(o.Fetch(context.Background(), secondReq)))

	close(release)
	assert.False(t, o.Apply(<-firstDone), "superseded result must be dropped")

	assert.Equal(t, fresh.Values, o.Series().Values)
	assert.Equal(t, StateDisplaying, o.State())
	assert.Equal(t, 1, f.observer.stale)
}

func TestOrchestrator_SupersededRequestIsCancelled(t *testing.T) {
	cancelled := make(chan error, 1)
	f := newFixture(t, func(ctx context.Context, q Query) (*EvaluationSeries, error) {
		if q.From == "2024-03-01 06:30:00" {
			<-ctx.Done()
			cancelled <- ctx.Err()
			return nil, ctx.Err()
		}
		return seriesOf(1), nil
	})
	o := f.orch

	firstReq := o.Refresh()
	firstDone := make(chan Result, 1)
	go func() { firstDone <- o.Fetch(context.Background(), firstReq) }()

	require.Eventually(t, func() bool {
		f.querier.mu.Lock()
		defer f.querier.mu.Unlock()
		return len(f.querier.queries) == 1
	}, time.Second, time.Millisecond)

	o.Select(nil)

	select {
	case err := <-cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}
	assert.False(t, o.Apply(<-firstDone))
}

func TestOrchestrator_FetchAfterSupersededSkipsQuerier(t *testing.T) {
	f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
		t.Fatal("querier must not be called for a superseded request")
		return nil, nil
	})
	o := f.orch

	old := o.Refresh()
	o.Refresh()

	res := o.Fetch(context.Background(), old)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, o.Apply(res))
}

func TestOrchestrator_MissingIdentifiers(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		flag      string
		expected  error
	}{
		{"no namespace", "", "checkout", ErrNoNamespace},
		{"no flag", "default", "", ErrNoFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(context.Context, Query) (*EvaluationSeries, error) {
				t.Fatal("querier must not be called without identifiers")
				return nil, nil
			})
			f.namespace.key = tt.namespace
			f.flag.flag = Flag{Key: tt.flag}

			series, err := f.orch.Load(context.Background())
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, EmptySeries(), series)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "fetching", StateFetching.String())
	assert.Equal(t, "displaying", StateDisplaying.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestFlag_Label(t *testing.T) {
	assert.Equal(t, "Checkout", Flag{Key: "checkout", Name: "Checkout"}.Label())
	assert.Equal(t, "checkout", Flag{Key: "checkout"}.Label())
}

func TestDurationForm_SubmitAlwaysFails(t *testing.T) {
	hour, ok := FindDuration("1 hour")
	require.True(t, ok)

	for _, form := range []DurationForm{NewDurationForm(&hour), NewDurationForm(nil), {}} {
		err := form.Submit(context.Background())
		assert.ErrorIs(t, err, ErrSubmitNotImplemented)
	}
	assert.Equal(t, "1 hour", NewDurationForm(&hour).DurationValue)
}
