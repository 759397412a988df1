package anim

import "sort"

// Well-known layers. Objects live on LayerDefault unless told otherwise.
const (
	LayerDefault    = 0
	LayerAnnotation = 1
	LayerEnglish    = 32
	LayerCode       = 33
)

// Layers is a view-only filter over the store. Toggling a layer is never
// logged and never moves the cursor.
type Layers struct {
	visible map[int]bool
}

// NewLayers returns a filter showing the given layers, or only LayerDefault
// when none are given.
func NewLayers(visible ...int) *Layers {
	l := &Layers{}
	if len(visible) == 0 {
		visible = []int{LayerDefault}
	}
	l.SetAll(visible...)
	return l
}

// SetVisible shows or hides one layer.
func (l *Layers) SetVisible(layer int, visible bool) {
	if visible {
		l.visible[layer] = true
	} else {
		delete(l.visible, layer)
	}
}

// SetAll replaces the visible set.
func (l *Layers) SetAll(layers ...int) {
	l.visible = make(map[int]bool, len(layers))
	for _, layer := range layers {
		l.visible[layer] = true
	}
}

// IsVisible reports whether layer is shown.
func (l *Layers) IsVisible(layer int) bool {
	return l.visible[layer]
}

// Visible returns the shown layers in ascending order.
func (l *Layers) Visible() []int {
	out := make([]int, 0, len(l.visible))
	for layer := range l.visible {
		out = append(out, layer)
	}
	sort.Ints(out)
	return out
}

// Filter drops objects on hidden layers and any edge touching them.
func (l *Layers) Filter(snap Snapshot) Snapshot {
	out := Snapshot{
		Objects: make([]Object, 0, len(snap.Objects)),
		Edges:   make([]Edge, 0, len(snap.Edges)),
		Lines:   append(make([]LineRef, 0, len(snap.Lines)), snap.Lines...),
	}
	shown := make(map[ObjectID]bool, len(snap.Objects))
	for _, obj := range snap.Objects {
		if l.IsVisible(obj.Layer) {
			out.Objects = append(out.Objects, obj)
			shown[obj.ID] = true
		}
	}
	for _, e := range snap.Edges {
		if shown[e.From] && shown[e.To] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
