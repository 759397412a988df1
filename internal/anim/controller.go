package anim

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// State is the playback state of a controller.
type State int

const (
	Idle State = iota
	PlayingForward
	PlayingBackward
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlayingForward:
		return "playing-forward"
	case PlayingBackward:
		return "playing-backward"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller owns the store, the command log and the replay cursor of one
// session. It is not safe for concurrent use; every call runs to completion
// before returning, so a step group is never observed half applied.
type Controller struct {
	store  *Store
	bridge *Bridge
	layers *Layers
	log    *Log

	// pos is the cursor, counted in step boundaries.
	pos  int
	base Snapshot

	state State
	rec   *Recorder

	nextID  ObjectID
	verify  bool
	session string
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHighlightFunc registers the pseudocode highlight callback.
func WithHighlightFunc(fn HighlightFunc) Option {
	return func(c *Controller) {
		c.bridge.SetCallback(fn)
	}
}

// WithVerify makes JumpToStep check the live state against a replay from
// the base snapshot.
func WithVerify(verify bool) Option {
	return func(c *Controller) {
		c.verify = verify
	}
}

// WithSessionID overrides the generated session id attached to log records.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.session = id
	}
}

// WithVisibleLayers replaces the default visible layer set.
func WithVisibleLayers(layers ...int) Option {
	return func(c *Controller) {
		c.layers.SetAll(layers...)
	}
}

// NewController returns an idle controller with an empty store and log.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		bridge:  NewBridge(nil),
		layers:  NewLayers(),
		log:     newLog(),
		base:    emptySnapshot(),
		session: uuid.NewString(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session_id", c.session)
	c.store = NewStore(c.logger)
	return c
}

func emptySnapshot() Snapshot {
	return Snapshot{Objects: make([]Object, 0), Edges: make([]Edge, 0), Lines: make([]LineRef, 0)}
}

// SessionID returns the id attached to this controller's log records.
func (c *Controller) SessionID() string {
	return c.session
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// CurrentStep returns the cursor as a step index.
func (c *Controller) CurrentStep() int {
	return c.pos
}

// TotalSteps returns the number of step groups in the active log.
func (c *Controller) TotalSteps() int {
	return c.log.Steps()
}

// Log exposes the active command log for inspection.
func (c *Controller) Log() *Log {
	return c.log
}

// NextID allocates a fresh object id.
func (c *Controller) NextID() ObjectID {
	id := c.nextID
	c.nextID++
	return id
}

// Snapshot returns the full current state including lit pseudocode lines.
func (c *Controller) Snapshot() Snapshot {
	snap := c.store.Snapshot()
	snap.Lines = c.bridge.Lines()
	return snap
}

// VisibleSnapshot returns the current state restricted to visible layers.
func (c *Controller) VisibleSnapshot() Snapshot {
	return c.layers.Filter(c.Snapshot())
}

// Layers returns the layer visibility filter.
func (c *Controller) Layers() *Layers {
	return c.layers
}

// SetLayerVisible shows or hides a layer. It is not logged.
func (c *Controller) SetLayerVisible(layer int, visible bool) {
	c.layers.SetVisible(layer, visible)
}

// SetAllLayers replaces the visible layer set. It is not logged.
func (c *Controller) SetAllLayers(layers ...int) {
	c.layers.SetAll(layers...)
}

// VisibleLayers returns the shown layers in ascending order.
func (c *Controller) VisibleLayers() []int {
	return c.layers.Visible()
}

// StepForward plays the next step group. At the end of the log it does
// nothing.
func (c *Controller) StepForward() error {
	if c.state == Recording {
		return ErrRecording
	}
	if c.pos >= c.log.Steps() {
		return nil
	}
	c.state = PlayingForward
	defer c.idle()
	return c.forward()
}

// StepBackward undoes the previous step group. At the start of the log it
// does nothing.
func (c *Controller) StepBackward() error {
	if c.state == Recording {
		return ErrRecording
	}
	if c.pos == 0 {
		return nil
	}
	c.state = PlayingBackward
	defer c.idle()
	return c.backward()
}

// SkipToEnd plays every remaining step group.
func (c *Controller) SkipToEnd() error {
	return c.JumpToStep(c.log.Steps())
}

// SkipForward is an alias for SkipToEnd.
func (c *Controller) SkipForward() error {
	return c.SkipToEnd()
}

// SkipToStart undoes every step group before the cursor. Like any long
// backward jump it may rebuild from the base snapshot, in which case the
// highlight callback hears only the net change of each line rather than one
// call per undone command.
func (c *Controller) SkipToStart() error {
	return c.JumpToStep(0)
}

// SkipBackward is an alias for SkipToStart.
func (c *Controller) SkipBackward() error {
	return c.SkipToStart()
}

// JumpToStep moves the cursor to boundary n, clamped to the log. Going back
// it rebuilds from the base snapshot when that replays fewer groups than
// undoing would; highlight callbacks are then coalesced to net changes.
func (c *Controller) JumpToStep(n int) error {
	if c.state == Recording {
		return ErrRecording
	}
	n = max(0, min(n, c.log.Steps()))

	switch {
	case n > c.pos:
		c.state = PlayingForward
		defer c.idle()
		for c.pos < n {
			if err := c.forward(); err != nil {
				return err
			}
		}
	case n < c.pos && n < c.pos-n:
		c.state = PlayingBackward
		defer c.idle()
		if err := c.rebuild(n); err != nil {
			return err
		}
	case n < c.pos:
		c.state = PlayingBackward
		defer c.idle()
		for c.pos > n {
			if err := c.backward(); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	if c.verify {
		return c.Verify()
	}
	return nil
}

// ClearHistory forgets every step group before the cursor. The current
// state becomes the new base and the cursor becomes 0.
func (c *Controller) ClearHistory() error {
	if c.state == Recording {
		return ErrRecording
	}
	dropped := c.log.truncateBefore(c.pos)
	c.base = c.Snapshot()
	c.pos = 0
	historyCleared.Add(float64(dropped))
	c.logger.Debug("history cleared", "entries", dropped, "steps", c.log.Steps())
	return nil
}

// ResetAll rewinds the active log, then discards it and empties the store.
// Lines still lit are switched off through the highlight callback.
func (c *Controller) ResetAll() error {
	if c.state == Recording {
		return ErrRecording
	}
	if err := c.SkipToStart(); err != nil {
		return err
	}
	c.log = newLog()
	c.store.Clear()
	c.bridge.clear()
	c.base = emptySnapshot()
	c.pos = 0
	c.logger.Debug("controller reset")
	return nil
}

// BeginAnimation fast-forwards the active log and opens a recorder that
// appends a new segment to it.
func (c *Controller) BeginAnimation() (*Recorder, error) {
	if c.state == Recording {
		return nil, ErrRecording
	}
	if err := c.SkipToEnd(); err != nil {
		return nil, err
	}
	c.log.mark()
	c.rec = &Recorder{ctrl: c, start: c.log.Len(), startStep: c.pos}
	c.state = Recording
	return c.rec, nil
}

// EndAnimation seals the open recording and rewinds the store to the start
// of the new segment so it can be played. If any recorded command failed the
// whole segment is rolled back and the first error is returned.
func (c *Controller) EndAnimation() error {
	rec := c.rec
	if rec == nil {
		return ErrNotRecording
	}
	rec.done = true
	c.rec = nil
	c.state = Idle

	if rec.err != nil {
		entries := c.log.entries
		for i := len(entries) - 1; i >= rec.start; i-- {
			if err := apply(entries[i].Undo, c.store, c.bridge); err != nil {
				c.logger.Error("rollback failed", "entry", i, "error", err)
			}
		}
		c.log.truncate(rec.start)
		c.pos = rec.startStep
		c.logger.Warn("animation discarded", "error", rec.err)
		return rec.err
	}

	c.log.mark()
	c.pos = c.log.Steps()
	c.logger.Debug("animation recorded",
		"entries", c.log.Len()-rec.start,
		"steps", c.pos-rec.startStep)

	c.state = PlayingBackward
	defer c.idle()
	for c.pos > rec.startStep {
		if err := c.backward(); err != nil {
			return err
		}
	}
	return nil
}

// Animate records fn as one new segment.
func (c *Controller) Animate(fn func(r *Recorder)) error {
	rec, err := c.BeginAnimation()
	if err != nil {
		return err
	}
	fn(rec)
	return c.EndAnimation()
}

// Verify replays the log from the base snapshot up to the cursor into a
// scratch store and compares the result with the live state.
func (c *Controller) Verify() error {
	scratch := NewStore(c.logger)
	scratch.load(c.base)
	lines := NewBridge(nil)
	lines.load(c.base.Lines)

	for i, e := range c.log.entries[:c.log.stops[c.pos]] {
		if err := apply(e.Do, scratch, lines); err != nil {
			return fmt.Errorf("%w: replay entry %d: %w", ErrReplayDivergence, i, err)
		}
	}

	want := scratch.Snapshot()
	want.Lines = lines.Lines()
	if diff := want.Diff(c.Snapshot()); diff != "" {
		replayDivergence.Inc()
		c.logger.Error("replay diverged", "step", c.pos, "diff", diff)
		return fmt.Errorf("%w at step %d:\n%s", ErrReplayDivergence, c.pos, diff)
	}
	return nil
}

func (c *Controller) idle() {
	c.state = Idle
}

// forward applies group pos and advances the cursor. On failure the part of
// the group already applied is undone and the cursor stays put.
func (c *Controller) forward() error {
	group := c.log.group(c.pos)
	for i, e := range group {
		if err := apply(e.Do, c.store, c.bridge); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = apply(group[j].Undo, c.store, c.bridge)
			}
			return fmt.Errorf("%w: step %d entry %d: %w", ErrCorruptLog, c.pos, i, err)
		}
	}
	c.pos++
	stepsPlayed.WithLabelValues(directionForward).Inc()
	return nil
}

// backward undoes group pos-1 in reverse order and moves the cursor back.
func (c *Controller) backward() error {
	group := c.log.group(c.pos - 1)
	for i := len(group) - 1; i >= 0; i-- {
		if err := apply(group[i].Undo, c.store, c.bridge); err != nil {
			for j := i + 1; j < len(group); j++ {
				_ = apply(group[j].Do, c.store, c.bridge)
			}
			return fmt.Errorf("%w: step %d entry %d: %w", ErrCorruptLog, c.pos-1, i, err)
		}
	}
	c.pos--
	stepsPlayed.WithLabelValues(directionBackward).Inc()
	return nil
}

// rebuild loads the base snapshot and replays n groups. The highlight
// callback only hears about lines whose state actually changed.
func (c *Controller) rebuild(n int) error {
	before := c.bridge.Lines()
	fn := c.bridge.fn
	c.bridge.fn = nil

	c.store.load(c.base)
	c.bridge.load(c.base.Lines)
	c.pos = 0
	var err error
	for c.pos < n && err == nil {
		err = c.forward()
	}

	c.bridge.fn = fn
	if fn != nil {
		after := c.bridge.Lines()
		for _, ref := range before {
			if !c.bridge.IsLit(ref) {
				fn(ref.Method, ref.Line, false)
			}
		}
		was := make(map[LineRef]bool, len(before))
		for _, ref := range before {
			was[ref] = true
		}
		for _, ref := range after {
			if !was[ref] {
				fn(ref.Method, ref.Line, true)
			}
		}
	}
	return err
}
