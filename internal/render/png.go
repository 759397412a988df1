package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"algoviz/internal/anim"
)

const (
	pngPadding = 20.0
	fontSize   = 12.0
	arrowSize  = 8.0
)

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// Image draws a snapshot into an image sized to fit its objects.
func Image(snap anim.Snapshot) (image.Image, error) {
	dc, err := draw(snap)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG encodes a snapshot as PNG.
func WritePNG(w io.Writer, snap anim.Snapshot) error {
	dc, err := draw(snap)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes a snapshot to a PNG file.
func SavePNG(filename string, snap anim.Snapshot) error {
	dc, err := draw(snap)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func draw(snap anim.Snapshot) (*gg.Context, error) {
	b, ok := bounds(snap)
	if !ok {
		return nil, ErrNothingToExport
	}

	minX, minY := b.left-pngPadding, b.top-pngPadding
	width := int(math.Ceil(b.right - minX + pngPadding))
	height := int(math.Ceil(b.bottom - minY + pngPadding))

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttf, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	dc.Translate(-minX, -minY)

	objs := visible(snap)

	// Draw connections first (so they appear behind objects)
	for _, e := range snap.Edges {
		from, okFrom := objs[e.From]
		to, okTo := objs[e.To]
		if !okFrom || !okTo || e.Alpha <= 0 {
			continue
		}
		drawEdgePNG(dc, e, from, to)
	}

	for _, o := range snap.Objects {
		if _, ok := objs[o.ID]; ok && o.Variant != anim.VariantHighlightCircle {
			drawObjectPNG(dc, o)
		}
	}
	for _, o := range snap.Objects {
		if _, ok := objs[o.ID]; ok && o.Variant == anim.VariantHighlightCircle {
			drawObjectPNG(dc, o)
		}
	}
	return dc, nil
}

func drawObjectPNG(dc *gg.Context, o anim.Object) {
	e := extent(o)
	cx, cy := e.center()
	w, h := e.right-e.left, e.bottom-e.top

	stroke := fade(o.Foreground, o.Alpha)
	lineWidth := 1.0
	if o.Highlighted {
		stroke = fade(o.HighlightColor, o.Alpha)
		lineWidth = 3.0
	}

	switch o.Variant {
	case anim.VariantLabel:
		dc.SetColor(fade(o.TextColor, o.Alpha))
		dc.DrawStringAnchored(o.Text, cx, cy, 0.5, 0.35)
		return

	case anim.VariantHighlightCircle:
		dc.SetLineWidth(3.0)
		dc.SetColor(fade(o.Foreground, o.Alpha))
		dc.DrawCircle(cx, cy, w/2)
		dc.Stroke()
		return

	case anim.VariantCircle:
		dc.DrawCircle(cx, cy, w/2)

	default:
		dc.DrawRectangle(e.left, e.top, w, h)
	}

	dc.SetColor(fade(o.Background, o.Alpha))
	dc.FillPreserve()
	dc.SetLineWidth(lineWidth)
	dc.SetColor(stroke)
	dc.Stroke()

	if o.Variant == anim.VariantLinkedListNode {
		slot := w / 4
		dc.SetLineWidth(1.0)
		dc.DrawLine(e.left+slot, e.top, e.left+slot, e.bottom)
		dc.DrawLine(e.right-slot, e.top, e.right-slot, e.bottom)
		dc.Stroke()
		if o.NullPrev {
			dc.DrawLine(e.left, e.bottom, e.left+slot, e.top)
			dc.Stroke()
		}
		if o.NullNext {
			dc.DrawLine(e.right-slot, e.bottom, e.right, e.top)
			dc.Stroke()
		}
	}
	if o.Null {
		dc.SetLineWidth(1.0)
		dc.DrawLine(e.left, e.bottom, e.right, e.top)
		dc.Stroke()
	}

	dc.SetColor(fade(o.TextColor, o.Alpha))
	dc.DrawStringAnchored(o.Text, cx, cy, 0.5, 0.35)
}

func drawEdgePNG(dc *gg.Context, e anim.Edge, from, to anim.Object) {
	fx, fy := extent(from).center()
	tx, ty := extent(to).center()
	if e.Port != anim.PortDefault {
		// Pointer edges leave from the middle of the pointer slot
		fe := extent(from)
		slot := (fe.right - fe.left) / 8
		if e.Port == anim.PortNext {
			fx = fe.right - slot
		} else {
			fx = fe.left + slot
		}
	}

	// Stop at the target's border
	tx, ty = clip(fx, fy, tx, ty, extent(to), to.Variant)

	c := fade(e.Color, e.Alpha)
	dc.SetColor(c)
	dc.SetLineWidth(1.0)
	if e.Highlighted {
		dc.SetLineWidth(3.0)
	}

	// Control point of the curve, offset perpendicular to the edge
	mx, my := (fx+tx)/2, (fy+ty)/2
	dx, dy := tx-fx, ty-fy
	qx, qy := mx-dy*e.Curve, my+dx*e.Curve

	dc.MoveTo(fx, fy)
	if e.Curve == 0 {
		dc.LineTo(tx, ty)
	} else {
		dc.QuadraticTo(qx, qy, tx, ty)
	}
	dc.Stroke()

	if e.Directed {
		if e.Curve == 0 {
			drawArrowPNG(dc, fx, fy, tx, ty)
		} else {
			drawArrowPNG(dc, qx, qy, tx, ty)
		}
	}
	if e.Label != "" {
		if e.Curve != 0 {
			mx, my = (mx+qx)/2, (my+qy)/2
		}
		dc.DrawStringAnchored(e.Label, mx, my-4, 0.5, 0)
	}
}

// clip moves the end of a segment back onto the border of the target.
func clip(fx, fy, tx, ty float64, r rect, v anim.Variant) (float64, float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return tx, ty
	}
	hw, hh := (r.right-r.left)/2, (r.bottom-r.top)/2
	var back float64
	switch v {
	case anim.VariantCircle, anim.VariantHighlightCircle:
		back = hw
	default:
		tX, tY := math.Inf(1), math.Inf(1)
		if dx != 0 {
			tX = hw / math.Abs(dx)
		}
		if dy != 0 {
			tY = hh / math.Abs(dy)
		}
		back = math.Min(tX, tY) * length
	}
	if back >= length {
		return tx, ty
	}
	return tx - dx/length*back, ty - dy/length*back
}

func drawArrowPNG(dc *gg.Context, fx, fy, tx, ty float64) {
	// Calculate arrow direction
	dx := tx - fx
	dy := ty - fy
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}

	// Normalize
	dx /= length
	dy /= length

	arrowAngle := 0.5 // radians

	// Arrow base points
	baseX1 := tx - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := ty - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := tx - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := ty - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(tx, ty)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}
