// Package render turns engine snapshots into character grids and PNG images.
package render

import (
	"errors"
	"math"
	"unicode/utf8"

	"algoviz/internal/anim"
)

// Character cell dimensions (pixels per character)
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// ErrNothingToExport is returned when a snapshot has no visible object.
var ErrNothingToExport = errors.New("render: nothing to export")

type rect struct {
	left, top, right, bottom float64
}

// extent returns the pixel rectangle covered by an object.
func extent(o anim.Object) rect {
	w, h := o.Width, o.Height
	if o.Variant == anim.VariantLabel {
		w = float64(utf8.RuneCountInString(o.Text)) * CellWidth
		h = CellHeight
	}
	x, y := o.X, o.Y
	if o.Centered {
		x -= w / 2
		y -= h / 2
	}
	return rect{left: x, top: y, right: x + w, bottom: y + h}
}

func (r rect) center() (float64, float64) {
	return (r.left + r.right) / 2, (r.top + r.bottom) / 2
}

// bounds is the union of every drawable object extent, or false when there
// is nothing to draw.
func bounds(snap anim.Snapshot) (rect, bool) {
	var b rect
	found := false
	for _, o := range snap.Objects {
		if o.Alpha <= 0 {
			continue
		}
		e := extent(o)
		if !found {
			b = e
			found = true
			continue
		}
		b.left = math.Min(b.left, e.left)
		b.top = math.Min(b.top, e.top)
		b.right = math.Max(b.right, e.right)
		b.bottom = math.Max(b.bottom, e.bottom)
	}
	return b, found
}

func visible(snap anim.Snapshot) map[anim.ObjectID]anim.Object {
	out := make(map[anim.ObjectID]anim.Object, len(snap.Objects))
	for _, o := range snap.Objects {
		if o.Alpha > 0 {
			out[o.ID] = o
		}
	}
	return out
}
