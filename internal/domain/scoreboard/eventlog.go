package scoreboard

// EventLog is an append-only, chronologically ordered list of entries.
// It is not safe for concurrent use; the store serializes access.
type EventLog struct {
	entries []LogEntry
}

// Append adds an entry at the end.
func (l *EventLog) Append(e LogEntry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *EventLog) Len() int {
	return len(l.entries)
}

// Clear drops every entry.
func (l *EventLog) Clear() {
	l.entries = nil
}

// Entries returns a copy in append order.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to n of the newest entries, oldest first.
func (l *EventLog) Recent(n int) []LogEntry {
	if n <= 0 {
		return []LogEntry{}
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]LogEntry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Reversed returns a copy with the newest entry first, for display.
func Reversed(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
