package anim

import (
	"fmt"
)

// Kind is the closed set of commands the engine knows how to apply and undo.
type Kind int

const (
	KindCreate Kind = iota
	KindDelete
	KindRestore
	KindSetText
	KindMove
	KindSetPosition
	KindSetForeground
	KindSetBackground
	KindSetTextColor
	KindSetHighlight
	KindSetAlpha
	KindSetLayer
	KindSetNull
	KindConnect
	KindDisconnect
	KindInsertEdge
	KindRemoveEdge
	KindSetEdgeHighlight
	KindSetEdgeAlpha
	KindHighlightLine
	KindStep
)

var kindNames = [...]string{
	KindCreate:           "create",
	KindDelete:           "delete",
	KindRestore:          "restore",
	KindSetText:          "set_text",
	KindMove:             "move",
	KindSetPosition:      "set_position",
	KindSetForeground:    "set_foreground",
	KindSetBackground:    "set_background",
	KindSetTextColor:     "set_text_color",
	KindSetHighlight:     "set_highlight",
	KindSetAlpha:         "set_alpha",
	KindSetLayer:         "set_layer",
	KindSetNull:          "set_null",
	KindConnect:          "connect",
	KindDisconnect:       "disconnect",
	KindInsertEdge:       "insert_edge",
	KindRemoveEdge:       "remove_edge",
	KindSetEdgeHighlight: "set_edge_highlight",
	KindSetEdgeAlpha:     "set_edge_alpha",
	KindHighlightLine:    "highlight_line",
	KindStep:             "step",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one recorded mutation. Data holds the payload type that belongs
// to Kind; a mismatched payload is reported as ErrCorruptLog.
type Command struct {
	Kind   Kind
	Target ObjectID
	Data   any
}

type CreateData struct {
	Variant Variant
	Attrs   Attrs
}

// RestoreData recreates a deleted object together with the edges that were
// removed with it, at their original positions in the edge list.
type RestoreData struct {
	Object Object
	Edges  []IndexedEdge
}

type TextData struct {
	Text string
}

type PointData struct {
	X, Y float64
}

type ColorData struct {
	Color string
}

// HighlightData toggles an object highlight. An empty Color keeps the
// current highlight color.
type HighlightData struct {
	On    bool
	Color string
}

type AlphaData struct {
	Alpha float64
}

type LayerData struct {
	Layer int
}

type NullData struct {
	Slot NullSlot
	On   bool
}

type EdgeData struct {
	Edge Edge
}

type EdgeRefData struct {
	From, To ObjectID
}

type EdgeAtData struct {
	Index int
	Edge  Edge
}

type EdgeFlagData struct {
	From, To ObjectID
	On       bool
}

type EdgeAlphaData struct {
	From, To ObjectID
	Alpha    float64
}

type LineData struct {
	Method string
	Line   int
	On     bool
}

// Entry pairs a command with the inverse captured when it was recorded.
type Entry struct {
	Do   Command
	Undo Command
}

func payload[T any](cmd Command) (T, error) {
	d, ok := cmd.Data.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s carries %T, want %T", ErrCorruptLog, cmd.Kind, cmd.Data, zero)
	}
	return d, nil
}

// invert validates cmd against the current state and returns the command
// that undoes it. It must be called before cmd is applied.
func invert(cmd Command, s *Store, b *Bridge) (Command, error) {
	undo := Command{Kind: cmd.Kind, Target: cmd.Target}

	switch cmd.Kind {
	case KindCreate:
		if _, err := payload[CreateData](cmd); err != nil {
			return undo, err
		}
		if s.Has(cmd.Target) {
			return undo, fmt.Errorf("%w: %d", ErrDuplicateID, cmd.Target)
		}
		undo.Kind = KindDelete
		return undo, nil

	case KindRestore:
		d, err := payload[RestoreData](cmd)
		if err != nil {
			return undo, err
		}
		if s.Has(d.Object.ID) {
			return undo, fmt.Errorf("%w: %d", ErrDuplicateID, d.Object.ID)
		}
		undo.Kind = KindDelete
		undo.Target = d.Object.ID
		return undo, nil

	case KindDelete:
		obj, ok := s.Get(cmd.Target)
		if !ok {
			return undo, fmt.Errorf("%w: %d", ErrUnknownID, cmd.Target)
		}
		undo.Kind = KindRestore
		undo.Data = RestoreData{Object: obj, Edges: s.edgesTouching(cmd.Target)}
		return undo, nil

	case KindConnect:
		d, err := payload[EdgeData](cmd)
		if err != nil {
			return undo, err
		}
		if err := checkEdge(d.Edge, s); err != nil {
			return undo, err
		}
		undo.Kind = KindRemoveEdge
		undo.Data = EdgeAtData{Index: len(s.edges), Edge: d.Edge}
		return undo, nil

	case KindDisconnect:
		d, err := payload[EdgeRefData](cmd)
		if err != nil {
			return undo, err
		}
		for _, id := range []ObjectID{d.From, d.To} {
			if !s.Has(id) {
				return undo, fmt.Errorf("%w: %d", ErrUnknownID, id)
			}
		}
		i := s.FindEdge(d.From, d.To)
		if i < 0 {
			return undo, errNoop
		}
		undo.Kind = KindInsertEdge
		undo.Data = EdgeAtData{Index: i, Edge: s.edges[i]}
		return undo, nil

	case KindInsertEdge:
		d, err := payload[EdgeAtData](cmd)
		if err != nil {
			return undo, err
		}
		if err := checkEdge(d.Edge, s); err != nil {
			return undo, err
		}
		i := d.Index
		if i < 0 || i > len(s.edges) {
			i = len(s.edges)
		}
		undo.Kind = KindRemoveEdge
		undo.Data = EdgeAtData{Index: i, Edge: d.Edge}
		return undo, nil

	case KindRemoveEdge:
		d, err := payload[EdgeAtData](cmd)
		if err != nil {
			return undo, err
		}
		if d.Index < 0 || d.Index >= len(s.edges) {
			return undo, fmt.Errorf("%w: edge index %d", ErrUnknownEdge, d.Index)
		}
		undo.Kind = KindInsertEdge
		undo.Data = EdgeAtData{Index: d.Index, Edge: s.edges[d.Index]}
		return undo, nil

	case KindSetEdgeHighlight:
		d, err := payload[EdgeFlagData](cmd)
		if err != nil {
			return undo, err
		}
		i := s.FindEdge(d.From, d.To)
		if i < 0 {
			return undo, fmt.Errorf("%w: %d -> %d", ErrUnknownEdge, d.From, d.To)
		}
		undo.Data = EdgeFlagData{From: d.From, To: d.To, On: s.edges[i].Highlighted}
		return undo, nil

	case KindSetEdgeAlpha:
		d, err := payload[EdgeAlphaData](cmd)
		if err != nil {
			return undo, err
		}
		i := s.FindEdge(d.From, d.To)
		if i < 0 {
			return undo, fmt.Errorf("%w: %d -> %d", ErrUnknownEdge, d.From, d.To)
		}
		undo.Data = EdgeAlphaData{From: d.From, To: d.To, Alpha: s.edges[i].Alpha}
		return undo, nil

	case KindHighlightLine:
		d, err := payload[LineData](cmd)
		if err != nil {
			return undo, err
		}
		ref := LineRef{Method: d.Method, Line: d.Line}
		undo.Data = LineData{Method: d.Method, Line: d.Line, On: b.IsLit(ref)}
		return undo, nil

	case KindSetText, KindMove, KindSetPosition, KindSetForeground, KindSetBackground,
		KindSetTextColor, KindSetHighlight, KindSetAlpha, KindSetLayer, KindSetNull:
		obj, ok := s.Get(cmd.Target)
		if !ok {
			return undo, fmt.Errorf("%w: %d", ErrUnknownID, cmd.Target)
		}
		data, err := previousAttr(cmd, obj)
		if err != nil {
			return undo, err
		}
		undo.Data = data
		return undo, nil
	}

	return undo, fmt.Errorf("%w: cannot invert %s", ErrCorruptLog, cmd.Kind)
}

// previousAttr captures the attribute an object-setter is about to
// overwrite, in the payload shape of the same kind.
func previousAttr(cmd Command, obj Object) (any, error) {
	switch cmd.Kind {
	case KindSetText:
		if _, err := payload[TextData](cmd); err != nil {
			return nil, err
		}
		return TextData{Text: obj.Text}, nil
	case KindMove, KindSetPosition:
		if _, err := payload[PointData](cmd); err != nil {
			return nil, err
		}
		return PointData{X: obj.X, Y: obj.Y}, nil
	case KindSetForeground:
		if _, err := payload[ColorData](cmd); err != nil {
			return nil, err
		}
		return ColorData{Color: obj.Foreground}, nil
	case KindSetBackground:
		if _, err := payload[ColorData](cmd); err != nil {
			return nil, err
		}
		return ColorData{Color: obj.Background}, nil
	case KindSetTextColor:
		if _, err := payload[ColorData](cmd); err != nil {
			return nil, err
		}
		return ColorData{Color: obj.TextColor}, nil
	case KindSetHighlight:
		if _, err := payload[HighlightData](cmd); err != nil {
			return nil, err
		}
		return HighlightData{On: obj.Highlighted, Color: obj.HighlightColor}, nil
	case KindSetAlpha:
		if _, err := payload[AlphaData](cmd); err != nil {
			return nil, err
		}
		return AlphaData{Alpha: obj.Alpha}, nil
	case KindSetLayer:
		if _, err := payload[LayerData](cmd); err != nil {
			return nil, err
		}
		return LayerData{Layer: obj.Layer}, nil
	case KindSetNull:
		d, err := payload[NullData](cmd)
		if err != nil {
			return nil, err
		}
		switch d.Slot {
		case NullSelf:
			return NullData{Slot: d.Slot, On: obj.Null}, nil
		case NullPrev, NullNext:
			if obj.Variant != VariantLinkedListNode {
				return nil, fmt.Errorf("%w: %s has no %d pointer", ErrWrongVariant, obj.Variant, d.Slot)
			}
			if d.Slot == NullPrev {
				return NullData{Slot: d.Slot, On: obj.NullPrev}, nil
			}
			return NullData{Slot: d.Slot, On: obj.NullNext}, nil
		}
		return nil, fmt.Errorf("%w: null slot %d", ErrCorruptLog, d.Slot)
	}
	return nil, fmt.Errorf("%w: %s is not an attribute setter", ErrCorruptLog, cmd.Kind)
}

func checkEdge(e Edge, s *Store) error {
	from, ok := s.Get(e.From)
	if !ok {
		return fmt.Errorf("%w: edge source %d", ErrUnknownID, e.From)
	}
	if !s.Has(e.To) {
		return fmt.Errorf("%w: edge target %d", ErrUnknownID, e.To)
	}
	if e.Port != PortDefault && from.Variant != VariantLinkedListNode {
		return fmt.Errorf("%w: %s has no %s pointer", ErrWrongVariant, from.Variant, e.Port)
	}
	return nil
}

// apply performs cmd against the store and bridge. It is used both while
// recording and during replay, so it must not consult anything but its
// arguments.
func apply(cmd Command, s *Store, b *Bridge) error {
	switch cmd.Kind {
	case KindCreate:
		d, err := payload[CreateData](cmd)
		if err != nil {
			return err
		}
		return s.Create(cmd.Target, d.Variant, d.Attrs)

	case KindRestore:
		d, err := payload[RestoreData](cmd)
		if err != nil {
			return err
		}
		if err := s.Create(d.Object.ID, d.Object.Variant, d.Object.Attrs); err != nil {
			return err
		}
		for _, ie := range d.Edges {
			s.insertEdge(ie.Index, ie.Edge)
		}
		return nil

	case KindDelete:
		s.Delete(cmd.Target)
		return nil

	case KindConnect:
		d, err := payload[EdgeData](cmd)
		if err != nil {
			return err
		}
		s.appendEdge(d.Edge)
		return nil

	case KindDisconnect:
		d, err := payload[EdgeRefData](cmd)
		if err != nil {
			return err
		}
		i := s.FindEdge(d.From, d.To)
		if i < 0 {
			s.logger.Debug("disconnect of missing edge ignored", "from", int(d.From), "to", int(d.To))
			return nil
		}
		_, err = s.removeEdge(i)
		return err

	case KindInsertEdge:
		d, err := payload[EdgeAtData](cmd)
		if err != nil {
			return err
		}
		s.insertEdge(d.Index, d.Edge)
		return nil

	case KindRemoveEdge:
		d, err := payload[EdgeAtData](cmd)
		if err != nil {
			return err
		}
		_, err = s.removeEdge(d.Index)
		return err

	case KindSetEdgeHighlight:
		d, err := payload[EdgeFlagData](cmd)
		if err != nil {
			return err
		}
		return s.mutateEdge(d.From, d.To, func(e *Edge) { e.Highlighted = d.On })

	case KindSetEdgeAlpha:
		d, err := payload[EdgeAlphaData](cmd)
		if err != nil {
			return err
		}
		return s.mutateEdge(d.From, d.To, func(e *Edge) { e.Alpha = d.Alpha })

	case KindHighlightLine:
		d, err := payload[LineData](cmd)
		if err != nil {
			return err
		}
		b.set(LineRef{Method: d.Method, Line: d.Line}, d.On)
		return nil

	case KindStep:
		return nil

	case KindSetText, KindMove, KindSetPosition, KindSetForeground, KindSetBackground,
		KindSetTextColor, KindSetHighlight, KindSetAlpha, KindSetLayer, KindSetNull:
		patch, err := attrPatch(cmd)
		if err != nil {
			return err
		}
		return s.Mutate(cmd.Target, patch)
	}

	return fmt.Errorf("%w: cannot apply %s", ErrCorruptLog, cmd.Kind)
}

func attrPatch(cmd Command) (func(*Attrs), error) {
	switch cmd.Kind {
	case KindSetText:
		d, err := payload[TextData](cmd)
		return func(a *Attrs) { a.Text = d.Text }, err
	case KindMove, KindSetPosition:
		d, err := payload[PointData](cmd)
		return func(a *Attrs) { a.X, a.Y = d.X, d.Y }, err
	case KindSetForeground:
		d, err := payload[ColorData](cmd)
		return func(a *Attrs) { a.Foreground = d.Color }, err
	case KindSetBackground:
		d, err := payload[ColorData](cmd)
		return func(a *Attrs) { a.Background = d.Color }, err
	case KindSetTextColor:
		d, err := payload[ColorData](cmd)
		return func(a *Attrs) { a.TextColor = d.Color }, err
	case KindSetHighlight:
		d, err := payload[HighlightData](cmd)
		return func(a *Attrs) {
			a.Highlighted = d.On
			if d.Color != "" {
				a.HighlightColor = d.Color
			}
		}, err
	case KindSetAlpha:
		d, err := payload[AlphaData](cmd)
		return func(a *Attrs) { a.Alpha = d.Alpha }, err
	case KindSetLayer:
		d, err := payload[LayerData](cmd)
		return func(a *Attrs) { a.Layer = d.Layer }, err
	case KindSetNull:
		d, err := payload[NullData](cmd)
		return func(a *Attrs) {
			switch d.Slot {
			case NullPrev:
				a.NullPrev = d.On
			case NullNext:
				a.NullNext = d.On
			default:
				a.Null = d.On
			}
		}, err
	}
	return nil, fmt.Errorf("%w: %s is not an attribute setter", ErrCorruptLog, cmd.Kind)
}
