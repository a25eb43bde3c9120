package analytics

import (
	"time"
)

// TimeFormat is the wire format of query range endpoints. It carries no
// zone designator; the server reads it as local wall-clock time.
const TimeFormat = time.DateTime

// DefaultWindowMinutes is used when no duration is selected.
const DefaultWindowMinutes = 60

// TimeRange is the [From, To) pair of a query, formatted with TimeFormat.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ResolveRange computes the window "last d minutes up to now" as local
// wall-clock strings. offsetMinutes is east of UTC (UTC-5 is -300) and is
// applied to both endpoints. A nil d selects DefaultWindowMinutes.
//
// The offset is sampled once, so a window spanning a DST transition is off
// by the transition delta on its From side.
func ResolveRange(now time.Time, d *DurationOption, offsetMinutes int) TimeRange {
	minutes := DefaultWindowMinutes
	if d != nil && d.Value > 0 {
		minutes = d.Value
	}

	shift := time.Duration(offsetMinutes) * time.Minute
	to := now.UTC().Add(shift)
	from := to.Add(-time.Duration(minutes) * time.Minute)

	return TimeRange{
		From: from.Format(TimeFormat),
		To:   to.Format(TimeFormat),
	}
}

// ZoneOffsetMinutes returns the offset of t's location at instant t, in
// minutes east of UTC.
func ZoneOffsetMinutes(t time.Time) int {
	_, seconds := t.Zone()
	return seconds / 60
}

// Resolver samples the clock and the local zone offset once per call.
type Resolver struct {
	now      func() time.Time
	location *time.Location
}

// NewResolver creates a resolver reading the wall clock in loc.
// A nil loc means time.Local.
func NewResolver(now func() time.Time, loc *time.Location) *Resolver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{now: now, location: loc}
}

// Resolve returns the range for d ending at the current instant.
func (r *Resolver) Resolve(d *DurationOption) TimeRange {
	now := r.now().In(r.location)
	return ResolveRange(now, d, ZoneOffsetMinutes(now))
}
