// Package analytics resolves evaluation-count query windows for a single
// feature flag and orchestrates the queries that back the analytics view.
package analytics

import (
	"strings"
	"time"
)

// DurationOption is a selectable window length offered to the user.
// Key doubles as the display label and must be unique within the catalog.
type DurationOption struct {
	Value        int // minutes, always > 0
	Key          string
	DisplayValue string
	FilterValue  string
}

// Window returns the option as a time.Duration.
func (d DurationOption) Window() time.Duration {
	return time.Duration(d.Value) * time.Minute
}

func newDuration(minutes int, label string) DurationOption {
	return DurationOption{
		Value:        minutes,
		Key:          label,
		DisplayValue: label,
		FilterValue:  label,
	}
}

// catalog is in display order.
var catalog = []DurationOption{
	newDuration(30, "30 minutes"),
	newDuration(60, "1 hour"),
	newDuration(60*4, "4 hours"),
	newDuration(60*12, "12 hours"),
}

// Durations returns a copy of the duration catalog in display order.
func Durations() []DurationOption {
	out := make([]DurationOption, len(catalog))
	copy(out, catalog)
	return out
}

// DefaultDuration returns the initial selection, the first catalog entry.
func DefaultDuration() DurationOption {
	return catalog[0]
}

// FindDuration looks a catalog entry up by key.
func FindDuration(key string) (DurationOption, bool) {
	for _, d := range catalog {
		if d.Key == key {
			return d, true
		}
	}
	return DurationOption{}, false
}

// FilterDurations returns the entries whose filter value contains query,
// ignoring case. An empty query matches everything.
func FilterDurations(query string) []DurationOption {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Durations()
	}

	var out []DurationOption
	for _, d := range catalog {
		if strings.Contains(strings.ToLower(d.FilterValue), query) {
			out = append(out, d)
		}
	}
	return out
}
