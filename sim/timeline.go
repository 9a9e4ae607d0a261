package sim

import (
	"strconv"
	"strings"
)

// TimelineEntry is one coalesced span of the Gantt chart.
type TimelineEntry struct {
	Name     string `json:"name" yaml:"name"`
	Duration int64  `json:"duration" yaml:"duration"`
}

// Timeline accumulates executed spans. Consecutive spans of the same process are
// merged and zero-length spans are never stored, so the chart stays minimal.
type Timeline struct {
	entries    []TimelineEntry
	maxEntries int
	truncated  bool
	dropped    int64 // ticks recorded after the capacity was reached
}

// NewTimeline creates an empty timeline holding at most maxEntries entries.
func NewTimeline(maxEntries int) *Timeline {
	return &Timeline{maxEntries: maxEntries}
}

// Record appends a span of duration ticks for name. Durations <= 0 are ignored.
// A span for the same process as the last entry extends that entry. Once the
// timeline is full, spans that would need a new entry are dropped and the
// timeline is marked truncated.
func (t *Timeline) Record(name string, duration int64) {
	if duration <= 0 {
		return
	}
	if n := len(t.entries); n > 0 && t.entries[n-1].Name == name && !t.truncated {
		t.entries[n-1].Duration += duration
		return
	}
	if t.truncated || len(t.entries) >= t.maxEntries {
		t.truncated = true
		t.dropped += duration
		return
	}
	t.entries = append(t.entries, TimelineEntry{Name: name, Duration: duration})
}

// Entries returns the coalesced entries. Callers MUST NOT modify the slice.
func (t *Timeline) Entries() []TimelineEntry {
	return t.entries
}

// Len returns the number of coalesced entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Truncated reports whether spans were dropped because the capacity was reached.
func (t *Timeline) Truncated() bool {
	return t.truncated
}

// Dropped returns the ticks of execution that did not fit in the timeline.
func (t *Timeline) Dropped() int64 {
	return t.dropped
}

// Total returns the sum of all recorded durations.
func (t *Timeline) Total() int64 {
	var total int64
	for _, e := range t.entries {
		total += e.Duration
	}
	return total
}

// DurationByProcess sums recorded durations per process name.
func (t *Timeline) DurationByProcess() map[string]int64 {
	sums := make(map[string]int64)
	for _, e := range t.entries {
		sums[e.Name] += e.Duration
	}
	return sums
}

// Render formats the chart as a start token followed by each entry's name and the
// elapsed time after it, e.g. "Gantt Chart = 0 A 3 B 5 A 6". Idle gaps are not
// entries, so the elapsed time is the running sum of durations.
func (t *Timeline) Render() string {
	var sb strings.Builder
	sb.WriteString("Gantt Chart = 0")
	var elapsed int64
	for _, e := range t.entries {
		elapsed += e.Duration
		sb.WriteString(" ")
		sb.WriteString(e.Name)
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatInt(elapsed, 10))
	}
	return sb.String()
}
