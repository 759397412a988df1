package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"algoviz/internal/anim"
)

const padding = 1

type point struct {
	X, Y int
}

// cellBox is an inclusive rectangle of character cells.
type cellBox struct {
	x0, y0, x1, y1 int
}

func (b cellBox) contains(p point) bool {
	return p.X >= b.x0 && p.X <= b.x1 && p.Y >= b.y0 && p.Y <= b.y1
}

func (b cellBox) center() point {
	return point{X: (b.x0 + b.x1) / 2, Y: (b.y0 + b.y1) / 2}
}

type grid struct {
	cells            [][]rune
	originX, originY float64
}

func newGrid(b rect, maxWidth, maxHeight int) *grid {
	width := int(math.Ceil((b.right-b.left)/CellWidth)) + 2*padding + 1
	height := int(math.Ceil((b.bottom-b.top)/CellHeight)) + 2*padding + 1
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	if maxHeight > 0 && height > maxHeight {
		height = maxHeight
	}
	g := &grid{
		cells:   make([][]rune, height),
		originX: b.left - padding*CellWidth,
		originY: b.top - padding*CellHeight,
	}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g *grid) cell(px, py float64) point {
	return point{
		X: int(math.Round((px - g.originX) / CellWidth)),
		Y: int(math.Round((py - g.originY) / CellHeight)),
	}
}

func (g *grid) set(p point, r rune) {
	if p.Y < 0 || p.Y >= len(g.cells) || p.X < 0 || p.X >= len(g.cells[p.Y]) {
		return
	}
	g.cells[p.Y][p.X] = r
}

func (g *grid) write(x, y int, s string) {
	for i, r := range []rune(s) {
		g.set(point{X: x + i, Y: y}, r)
	}
}

// writeCentered writes s centered between columns x0 and x1, truncated to
// fit.
func (g *grid) writeCentered(x0, x1, y int, s string) {
	room := x1 - x0 + 1
	if room <= 0 {
		return
	}
	runes := []rune(s)
	if len(runes) > room {
		runes = runes[:room]
	}
	g.write(x0+(room-len(runes))/2, y, string(runes))
}

func (g *grid) rows() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

// box maps an object onto the cells it occupies.
func (g *grid) box(o anim.Object) cellBox {
	e := extent(o)
	cx, cy := e.center()
	c := g.cell(cx, cy)

	switch o.Variant {
	case anim.VariantCircle:
		w := max(3, utf8.RuneCountInString(o.Text)+2)
		return cellBox{x0: c.X - w/2, y0: c.Y, x1: c.X - w/2 + w - 1, y1: c.Y}
	case anim.VariantHighlightCircle:
		half := max(1, int(math.Round(o.Width/CellWidth/2)))
		return cellBox{x0: c.X - half - 1, y0: c.Y, x1: c.X + half + 1, y1: c.Y}
	case anim.VariantLabel:
		n := utf8.RuneCountInString(o.Text)
		x0 := g.cell(e.left, 0).X
		if o.Centered {
			x0 = c.X - n/2
		}
		return cellBox{x0: x0, y0: c.Y, x1: x0 + max(n, 1) - 1, y1: c.Y}
	}

	w := max(3, int(math.Round(o.Width/CellWidth)))
	h := max(3, int(math.Round(o.Height/CellHeight))+1)
	x0 := c.X - w/2
	y0 := c.Y - h/2
	return cellBox{x0: x0, y0: y0, x1: x0 + w - 1, y1: y0 + h - 1}
}

// Text renders a snapshot as lines of characters. Positive maxWidth and
// maxHeight clip the grid. An empty snapshot renders as no lines.
func Text(snap anim.Snapshot, maxWidth, maxHeight int) []string {
	b, ok := bounds(snap)
	if !ok {
		return nil
	}
	g := newGrid(b, maxWidth, maxHeight)
	objs := visible(snap)

	boxes := make(map[anim.ObjectID]cellBox, len(objs))
	for id, o := range objs {
		boxes[id] = g.box(o)
	}

	// Draw connections first (so they appear behind objects)
	for _, e := range snap.Edges {
		from, okFrom := boxes[e.From]
		to, okTo := boxes[e.To]
		if !okFrom || !okTo || e.Alpha <= 0 {
			continue
		}
		g.drawEdge(e, from, to)
	}

	for _, o := range snap.Objects {
		if _, ok := objs[o.ID]; !ok || o.Variant == anim.VariantHighlightCircle {
			continue
		}
		g.drawObject(o, boxes[o.ID])
	}

	// Highlight rings go on top of whatever they circle
	for _, o := range snap.Objects {
		if _, ok := objs[o.ID]; ok && o.Variant == anim.VariantHighlightCircle {
			bx := boxes[o.ID]
			g.set(point{X: bx.x0, Y: bx.y0}, '*')
			g.set(point{X: bx.x1, Y: bx.y0}, '*')
		}
	}

	return g.rows()
}

func (g *grid) drawObject(o anim.Object, b cellBox) {
	switch o.Variant {
	case anim.VariantLabel:
		g.write(b.x0, b.y0, o.Text)

	case anim.VariantCircle:
		open, closing := '(', ')'
		if o.Highlighted {
			open, closing = '{', '}'
		}
		g.set(point{X: b.x0, Y: b.y0}, open)
		g.set(point{X: b.x1, Y: b.y0}, closing)
		g.writeCentered(b.x0+1, b.x1-1, b.y0, o.Text)

	case anim.VariantLinkedListNode:
		g.drawBox(b, o.Highlighted)
		mid := (b.y0 + b.y1) / 2
		left, right := b.x0+1, b.x1-1
		if b.x1-b.x0 >= 8 {
			left, right = b.x0+3, b.x1-3
			for y := b.y0 + 1; y < b.y1; y++ {
				g.set(point{X: b.x0 + 2, Y: y}, '|')
				g.set(point{X: b.x1 - 2, Y: y}, '|')
			}
		}
		if o.NullPrev {
			g.set(point{X: b.x0 + 1, Y: mid}, '/')
		}
		if o.NullNext {
			g.set(point{X: b.x1 - 1, Y: mid}, '/')
		}
		g.writeCentered(left, right, mid, o.Text)

	default:
		g.drawBox(b, o.Highlighted)
		mid := (b.y0 + b.y1) / 2
		g.writeCentered(b.x0+1, b.x1-1, mid, o.Text)
		if o.Null {
			g.set(point{X: b.x1 - 1, Y: mid}, '/')
		}
	}
}

func (g *grid) drawBox(b cellBox, highlighted bool) {
	// Choose border characters based on highlight state
	corner, horizontal, vertical := '+', '-', '|'
	if highlighted {
		corner, horizontal, vertical = '#', '#', '#'
	}

	for y := b.y0; y <= b.y1; y++ {
		for x := b.x0; x <= b.x1; x++ {
			p := point{X: x, Y: y}
			switch {
			case (y == b.y0 || y == b.y1) && (x == b.x0 || x == b.x1):
				g.set(p, corner)
			case y == b.y0 || y == b.y1:
				g.set(p, horizontal)
			case x == b.x0 || x == b.x1:
				g.set(p, vertical)
			default:
				g.set(p, ' ')
			}
		}
	}
}

func (g *grid) drawEdge(e anim.Edge, from, to cellBox) {
	start, end := from.center(), to.center()
	dx, dy := end.X-start.X, end.Y-start.Y
	pts := line(start, end)

	stroke := lineRune(dx, dy)
	if e.Highlighted {
		stroke = '*'
	}
	for _, p := range pts {
		g.set(p, stroke)
	}

	if e.Directed {
		for i := len(pts) - 1; i >= 0; i-- {
			if to.contains(pts[i]) {
				continue
			}
			if !from.contains(pts[i]) {
				g.set(pts[i], arrowRune(dx, dy))
			}
			break
		}
	}

	if e.Label != "" && len(pts) > 0 {
		mid := pts[len(pts)/2]
		g.write(mid.X+1, mid.Y, e.Label)
	}
}

// line returns the cells between a and b inclusive (Bresenham).
func line(a, b point) []point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	var pts []point
	for p := a; ; {
		pts = append(pts, p)
		if p == b {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func arrowRune(dx, dy int) rune {
	if abs(dx) >= abs(dy)*2 {
		if dx > 0 {
			return '>'
		}
		return '<'
	}
	if dy > 0 {
		return 'v'
	}
	return '^'
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
