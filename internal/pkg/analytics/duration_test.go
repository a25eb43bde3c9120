package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurations_Catalog(t *testing.T) {
	durations := Durations()
	require.Len(t, durations, 4)

	expected := []struct {
		value int
		label string
	}{
		{30, "30 minutes"},
		{60, "1 hour"},
		{240, "4 hours"},
		{720, "12 hours"},
	}

	for i, want := range expected {
		assert.Equal(t, want.value, durations[i].Value)
		assert.Equal(t, want.label, durations[i].Key)
		assert.Equal(t, want.label, durations[i].DisplayValue)
		assert.Equal(t, want.label, durations[i].FilterValue)
	}
}

func TestDurations_Invariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Durations() {
		assert.Positive(t, d.Value, "duration %q must be positive", d.Key)
		assert.False(t, seen[d.Key], "duplicate key %q", d.Key)
		seen[d.Key] = true
	}
}

func TestDurations_ReturnsCopy(t *testing.T) {
	durations := Durations()
	durations[0].Value = 1

	assert.Equal(t, 30, Durations()[0].Value, "catalog must not be mutable through the returned slice")
}

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, Durations()[0], DefaultDuration())
}

func TestDurationOption_Window(t *testing.T) {
	d, ok := FindDuration("4 hours")
	require.True(t, ok)
	assert.Equal(t, 4*time.Hour, d.Window())
}

func TestFindDuration(t *testing.T) {
	d, ok := FindDuration("12 hours")
	require.True(t, ok)
	assert.Equal(t, 720, d.Value)

	_, ok = FindDuration("2 days")
	assert.False(t, ok)
}

func TestFilterDurations(t *testing.T) {
	keys := func(ds []DurationOption) []string {
		out := make([]string, 0, len(ds))
		for _, d := range ds {
			out = append(out, d.Key)
		}
		return out
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty query returns all", "", []string{"30 minutes", "1 hour", "4 hours", "12 hours"}},
		{"whitespace query returns all", "  ", []string{"30 minutes", "1 hour", "4 hours", "12 hours"}},
		{"hours", "hours", []string{"4 hours", "12 hours"}},
		{"case insensitive", "HOUR", []string{"1 hour", "4 hours", "12 hours"}},
		{"digit substring", "2", []string{"12 hours"}},
		{"minutes", "min", []string{"30 minutes"}},
		{"no match", "days", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, keys(FilterDurations(tt.query)))
		})
	}
}
