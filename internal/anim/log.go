package anim

// Log is the append-only command log. stops holds the step boundaries as
// entry offsets: strictly increasing and always starting at 0. When no
// recording is open the last stop equals the number of entries.
type Log struct {
	entries []Entry
	stops   []int
}

func newLog() *Log {
	return &Log{stops: []int{0}}
}

func (l *Log) append(e Entry) {
	l.entries = append(l.entries, e)
}

// mark closes the current step group. Marking twice without an entry in
// between leaves a single boundary.
func (l *Log) mark() {
	n := len(l.entries)
	if l.stops[len(l.stops)-1] == n {
		return
	}
	l.stops = append(l.stops, n)
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Steps returns the number of sealed step groups.
func (l *Log) Steps() int {
	return len(l.stops) - 1
}

func (l *Log) group(step int) []Entry {
	return l.entries[l.stops[step]:l.stops[step+1]]
}

// truncateBefore drops every group before step and renumbers the rest so
// that step becomes boundary 0. It returns the number of entries dropped.
func (l *Log) truncateBefore(step int) int {
	cut := l.stops[step]
	l.entries = append([]Entry(nil), l.entries[cut:]...)
	stops := make([]int, 0, len(l.stops)-step)
	for _, s := range l.stops[step:] {
		stops = append(stops, s-cut)
	}
	l.stops = stops
	return cut
}

// truncate drops every entry at or after offset n together with the
// boundaries past it. n must be a boundary.
func (l *Log) truncate(n int) {
	l.entries = l.entries[:n]
	for len(l.stops) > 1 && l.stops[len(l.stops)-1] > n {
		l.stops = l.stops[:len(l.stops)-1]
	}
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Boundaries returns a copy of the step boundaries.
func (l *Log) Boundaries() []int {
	return append([]int(nil), l.stops...)
}
