package anim

import "sort"

// LineRef names one pseudocode line of one method.
type LineRef struct {
	Method string
	Line   int
}

// HighlightFunc is called synchronously whenever a pseudocode line changes
// state, both while playing forward and while undoing.
type HighlightFunc func(method string, line int, active bool)

// Bridge tracks which pseudocode lines are lit and forwards every change to
// the UI callback. Its state is replayed like any other attribute.
type Bridge struct {
	lit map[LineRef]bool
	fn  HighlightFunc
}

// NewBridge returns a bridge with no lit lines. fn may be nil.
func NewBridge(fn HighlightFunc) *Bridge {
	return &Bridge{lit: make(map[LineRef]bool), fn: fn}
}

// SetCallback replaces the UI callback.
func (b *Bridge) SetCallback(fn HighlightFunc) {
	b.fn = fn
}

// IsLit reports whether ref is currently highlighted.
func (b *Bridge) IsLit(ref LineRef) bool {
	return b.lit[ref]
}

// Lines returns the lit lines sorted by method then line.
func (b *Bridge) Lines() []LineRef {
	out := make([]LineRef, 0, len(b.lit))
	for ref := range b.lit {
		out = append(out, ref)
	}
	sortLines(out)
	return out
}

func (b *Bridge) set(ref LineRef, on bool) {
	if on {
		b.lit[ref] = true
	} else {
		delete(b.lit, ref)
	}
	if b.fn != nil {
		b.fn(ref.Method, ref.Line, on)
	}
}

// clear extinguishes every lit line, notifying the callback for each.
func (b *Bridge) clear() {
	for _, ref := range b.Lines() {
		b.set(ref, false)
	}
}

// load replaces the lit set without notifying the callback.
func (b *Bridge) load(lines []LineRef) {
	b.lit = make(map[LineRef]bool, len(lines))
	for _, ref := range lines {
		b.lit[ref] = true
	}
}

func sortLines(lines []LineRef) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Method != lines[j].Method {
			return lines[i].Method < lines[j].Method
		}
		return lines[i].Line < lines[j].Line
	})
}
