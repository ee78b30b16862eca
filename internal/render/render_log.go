package render

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	LogTerrain = "terrain"
	LogLOD     = "lod"
	LogCache   = "cache"
	LogTuning  = "tuning"
)

// LogEntry is one recorded pipeline event.
type LogEntry struct {
	Frame    int
	Category string  // terrain, lod, cache, tuning
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] lod      change           0 → 1
func (e LogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-8s %-16s %s", e.Frame, e.Category, e.Key, e.Value)
}

// RenderLog collects structured pipeline events. Only rare events are
// logged (rebuilds, LOD transitions, clears) so steady-state frames add
// nothing. With a positive capacity the oldest entries are dropped.
type RenderLog struct {
	entries  []LogEntry
	capacity int
	total    int
}

// NewRenderLog creates a log; capacity <= 0 means unbounded.
func NewRenderLog(capacity int) *RenderLog {
	return &RenderLog{capacity: capacity}
}

// Add records a new entry.
func (l *RenderLog) Add(frame int, category, key, value string, numVal float64) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, LogEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	l.total++
	if l.capacity > 0 && len(l.entries) > l.capacity {
		drop := len(l.entries) - l.capacity
		l.entries = append(l.entries[:0], l.entries[drop:]...)
	}
}

// Entries returns the retained entries, oldest first.
func (l *RenderLog) Entries() []LogEntry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Total returns how many entries were ever added, including dropped ones.
func (l *RenderLog) Total() int {
	if l == nil {
		return 0
	}
	return l.total
}

// Since returns the retained entries added after the first n ever added.
func (l *RenderLog) Since(n int) []LogEntry {
	if l == nil || n >= l.total {
		return nil
	}
	first := l.total - len(l.entries)
	if n < first {
		n = first
	}
	return l.entries[n-first:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *RenderLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *RenderLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *RenderLog) LastOf(category, key string) (LogEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format renders every retained entry, one per line.
func (l *RenderLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
