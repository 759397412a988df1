package anim

// Port distinguishes the plain connector of an object from the next/prev
// pointer slots of a linked-list node.
type Port int

const (
	PortDefault Port = iota
	PortNext
	PortPrev
)

func (p Port) String() string {
	switch p {
	case PortNext:
		return "next"
	case PortPrev:
		return "prev"
	default:
		return "default"
	}
}

// Edge is a drawn connection between two objects. The store permits
// duplicates; edges are addressed by the first match for an ordered pair.
type Edge struct {
	From ObjectID
	To   ObjectID
	Port Port

	Color       string
	Curve       float64
	Directed    bool
	Label       string
	Highlighted bool
	Alpha       float64
}

// IndexedEdge remembers where in the edge list an edge lived, so an inverse
// can put it back in exactly the same place.
type IndexedEdge struct {
	Index int
	Edge  Edge
}

func (e Edge) touches(id ObjectID) bool {
	return e.From == id || e.To == id
}

func (e Edge) joins(from, to ObjectID) bool {
	return e.From == from && e.To == to
}

// EdgeOption customises an edge created by Recorder.Connect.
type EdgeOption func(*Edge)

// WithEdgeColor sets the stroke color of the edge.
func WithEdgeColor(color string) EdgeOption {
	return func(e *Edge) {
		e.Color = color
	}
}

// WithCurve bends the edge; 0 draws a straight line.
func WithCurve(curve float64) EdgeOption {
	return func(e *Edge) {
		e.Curve = curve
	}
}

// WithUndirected drops the arrow head.
func WithUndirected() EdgeOption {
	return func(e *Edge) {
		e.Directed = false
	}
}

// WithEdgeLabel attaches a text label to the middle of the edge.
func WithEdgeLabel(label string) EdgeOption {
	return func(e *Edge) {
		e.Label = label
	}
}

func newEdge(from, to ObjectID, port Port, opts ...EdgeOption) Edge {
	e := Edge{
		From:     from,
		To:       to,
		Port:     port,
		Color:    DefaultForeground,
		Directed: true,
		Alpha:    1,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
