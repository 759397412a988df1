package anim

import (
	"errors"
	"fmt"
)

// Recorder appends one animation segment to a controller's log. Every
// command is applied to the store as soon as it is recorded, so a module can
// read back positions and text while it is still recording.
//
// The first failing command poisons the recorder: later calls are ignored,
// Err reports the failure and EndAnimation discards the segment.
type Recorder struct {
	ctrl      *Controller
	start     int
	startStep int
	err       error
	done      bool
}

// Err returns the first error hit while recording, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Record validates cmd, captures its inverse from the current state, applies
// it and appends the pair to the log.
func (r *Recorder) Record(cmd Command) error {
	if r.err != nil {
		return r.err
	}
	if r.done {
		return ErrNotRecording
	}
	c := r.ctrl

	if cmd.Kind == KindStep {
		c.log.mark()
		return nil
	}

	undo, err := invert(cmd, c.store, c.bridge)
	if errors.Is(err, errNoop) {
		c.logger.Debug("command has no effect", "kind", cmd.Kind.String(), "target", int(cmd.Target))
		return nil
	}
	if err == nil {
		err = apply(cmd, c.store, c.bridge)
	}
	if err != nil {
		r.err = fmt.Errorf("record %s on %d: %w", cmd.Kind, cmd.Target, err)
		c.logger.Error("recording failed", "kind", cmd.Kind.String(), "target", int(cmd.Target), "error", err)
		return r.err
	}

	c.log.append(Entry{Do: cmd, Undo: undo})
	commandsRecorded.WithLabelValues(cmd.Kind.String()).Inc()
	return nil
}

// Step closes the current step group.
func (r *Recorder) Step() {
	r.Record(Command{Kind: KindStep, Target: NoObject})
}

// NextID allocates a fresh object id from the controller.
func (r *Recorder) NextID() ObjectID {
	return r.ctrl.NextID()
}

// Object returns the current state of a live object.
func (r *Recorder) Object(id ObjectID) (Object, bool) {
	return r.ctrl.store.Get(id)
}

// FindEdge returns the first edge from -> to.
func (r *Recorder) FindEdge(from, to ObjectID) (Edge, bool) {
	i := r.ctrl.store.FindEdge(from, to)
	if i < 0 {
		return Edge{}, false
	}
	return r.ctrl.store.edges[i], true
}

func (r *Recorder) Create(id ObjectID, v Variant, a Attrs) {
	r.Record(Command{Kind: KindCreate, Target: id, Data: CreateData{Variant: v, Attrs: a}})
}

func (r *Recorder) CreateRectangle(id ObjectID, text string, width, height, x, y float64) {
	a := DefaultAttrs(VariantRectangle)
	a.Text, a.Width, a.Height, a.X, a.Y = text, width, height, x, y
	r.Create(id, VariantRectangle, a)
}

func (r *Recorder) CreateCircle(id ObjectID, text string, x, y float64) {
	a := DefaultAttrs(VariantCircle)
	a.Text, a.X, a.Y = text, x, y
	r.Create(id, VariantCircle, a)
}

// CreateLabel creates a text label. Uncentered labels are anchored at their
// left edge.
func (r *Recorder) CreateLabel(id ObjectID, text string, x, y float64, centered bool) {
	a := DefaultAttrs(VariantLabel)
	a.Text, a.X, a.Y, a.Centered = text, x, y, centered
	r.Create(id, VariantLabel, a)
}

func (r *Recorder) CreateHighlightCircle(id ObjectID, color string, x, y float64) {
	a := DefaultAttrs(VariantHighlightCircle)
	a.X, a.Y = x, y
	if color != "" {
		a.Foreground = color
	}
	r.Create(id, VariantHighlightCircle, a)
}

func (r *Recorder) CreateLinkedListNode(id ObjectID, text string, width, height, x, y float64) {
	a := DefaultAttrs(VariantLinkedListNode)
	a.Text, a.Width, a.Height, a.X, a.Y = text, width, height, x, y
	r.Create(id, VariantLinkedListNode, a)
}

func (r *Recorder) Delete(id ObjectID) {
	r.Record(Command{Kind: KindDelete, Target: id})
}

func (r *Recorder) SetText(id ObjectID, text string) {
	r.Record(Command{Kind: KindSetText, Target: id, Data: TextData{Text: text}})
}

// Move animates an object to a new position.
func (r *Recorder) Move(id ObjectID, x, y float64) {
	r.Record(Command{Kind: KindMove, Target: id, Data: PointData{X: x, Y: y}})
}

// SetPosition places an object without animating it.
func (r *Recorder) SetPosition(id ObjectID, x, y float64) {
	r.Record(Command{Kind: KindSetPosition, Target: id, Data: PointData{X: x, Y: y}})
}

func (r *Recorder) SetForeground(id ObjectID, color string) {
	r.Record(Command{Kind: KindSetForeground, Target: id, Data: ColorData{Color: color}})
}

func (r *Recorder) SetBackground(id ObjectID, color string) {
	r.Record(Command{Kind: KindSetBackground, Target: id, Data: ColorData{Color: color}})
}

func (r *Recorder) SetTextColor(id ObjectID, color string) {
	r.Record(Command{Kind: KindSetTextColor, Target: id, Data: ColorData{Color: color}})
}

func (r *Recorder) SetHighlight(id ObjectID, on bool) {
	r.Record(Command{Kind: KindSetHighlight, Target: id, Data: HighlightData{On: on}})
}

func (r *Recorder) SetHighlightColor(id ObjectID, on bool, color string) {
	r.Record(Command{Kind: KindSetHighlight, Target: id, Data: HighlightData{On: on, Color: color}})
}

func (r *Recorder) SetAlpha(id ObjectID, alpha float64) {
	r.Record(Command{Kind: KindSetAlpha, Target: id, Data: AlphaData{Alpha: alpha}})
}

func (r *Recorder) SetLayer(id ObjectID, layer int) {
	r.Record(Command{Kind: KindSetLayer, Target: id, Data: LayerData{Layer: layer}})
}

func (r *Recorder) SetNull(id ObjectID, on bool) {
	r.Record(Command{Kind: KindSetNull, Target: id, Data: NullData{Slot: NullSelf, On: on}})
}

func (r *Recorder) SetPrevNull(id ObjectID, on bool) {
	r.Record(Command{Kind: KindSetNull, Target: id, Data: NullData{Slot: NullPrev, On: on}})
}

func (r *Recorder) SetNextNull(id ObjectID, on bool) {
	r.Record(Command{Kind: KindSetNull, Target: id, Data: NullData{Slot: NullNext, On: on}})
}

func (r *Recorder) Connect(from, to ObjectID, opts ...EdgeOption) {
	r.connect(from, to, PortDefault, opts)
}

// ConnectNext draws the next pointer of a linked-list node.
func (r *Recorder) ConnectNext(from, to ObjectID, opts ...EdgeOption) {
	r.connect(from, to, PortNext, opts)
}

// ConnectPrev draws the prev pointer of a linked-list node.
func (r *Recorder) ConnectPrev(from, to ObjectID, opts ...EdgeOption) {
	r.connect(from, to, PortPrev, opts)
}

func (r *Recorder) connect(from, to ObjectID, port Port, opts []EdgeOption) {
	e := newEdge(from, to, port, opts...)
	r.Record(Command{Kind: KindConnect, Target: from, Data: EdgeData{Edge: e}})
}

// Disconnect removes the first edge from -> to. Both objects must exist;
// without an edge between them it records nothing.
func (r *Recorder) Disconnect(from, to ObjectID) {
	r.Record(Command{Kind: KindDisconnect, Target: from, Data: EdgeRefData{From: from, To: to}})
}

func (r *Recorder) SetEdgeHighlight(from, to ObjectID, on bool) {
	r.Record(Command{Kind: KindSetEdgeHighlight, Target: from, Data: EdgeFlagData{From: from, To: to, On: on}})
}

func (r *Recorder) SetEdgeAlpha(from, to ObjectID, alpha float64) {
	r.Record(Command{Kind: KindSetEdgeAlpha, Target: from, Data: EdgeAlphaData{From: from, To: to, Alpha: alpha}})
}

// Highlight lights a pseudocode line.
func (r *Recorder) Highlight(method string, line int) {
	r.Record(Command{Kind: KindHighlightLine, Target: NoObject, Data: LineData{Method: method, Line: line, On: true}})
}

// Unhighlight switches a pseudocode line off.
func (r *Recorder) Unhighlight(method string, line int) {
	r.Record(Command{Kind: KindHighlightLine, Target: NoObject, Data: LineData{Method: method, Line: line}})
}
