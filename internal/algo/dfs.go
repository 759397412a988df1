package algo

import (
	"strings"

	"algoviz/internal/anim"
)

const (
	dfsStackTopColor = "#0000FF"
	dfsVisitedColor  = "#99CCFF"
	dfsEdgeColor     = "#FF0000"

	infoX = 25
	infoY = 15

	dfsListStartX   = 30
	dfsListStartY   = 70
	dfsListSpacing  = 20
	dfsVisitedX     = 30
	dfsVisitedY     = 120
	dfsCurrentLabel = 145
	dfsCurrentX     = 115
	dfsCurrentY     = 151
	dfsStackLabelY  = 170
	dfsStackX       = 40
	dfsStackY       = 335
	dfsStackSpacing = 20

	dfsRecursionX        = 125
	dfsRecursionY        = 185
	dfsRecursionSpacingX = 20
	dfsRecursionSpacingY = 20
)

// dfsGraph is the undirected graph every DFS run walks. Neighbors are
// listed in ascending order so runs are deterministic.
var dfsGraph = struct {
	pos [][2]float64
	adj [][]int
}{
	pos: [][2]float64{
		{450, 80}, {600, 80}, {750, 80},
		{450, 220}, {600, 220}, {750, 220},
		{525, 360}, {675, 360},
	},
	adj: [][]int{
		{1, 3},
		{0, 2, 4},
		{1, 5},
		{0, 4, 6},
		{1, 3, 5, 7},
		{2, 4, 7},
		{3, 7},
		{4, 5, 6},
	},
}

// DFS animates depth-first search either as recursion or with an explicit
// stack.
type DFS struct {
	module
	physicalStack bool

	vertices []anim.ObjectID
	visited  []bool

	listIDs    []anim.ObjectID
	visitedIDs []anim.ObjectID
	messageIDs []anim.ObjectID
	stackIDs   []anim.ObjectID
	litEdges   map[[2]int]bool

	currentID anim.ObjectID
	ring      anim.ObjectID
}

func NewDFS(c *anim.Controller) Algorithm {
	return &DFS{module: module{ctrl: c}, ring: anim.NoObject}
}

func (d *DFS) Name() string  { return "dfs" }
func (d *DFS) Title() string { return "Depth-First Search" }

func (d *DFS) Actions() []Action {
	return []Action{
		{Name: "run", Usage: "run <vertex>", Help: "search from a vertex (A-H)"},
		{Name: "mode", Usage: "mode recursive|stack", Help: "switch between recursion and an explicit stack"},
		{Name: "clear", Usage: "clear", Help: "erase the results of the last search"},
	}
}

func (d *DFS) Methods() []Method {
	if d.physicalStack {
		return Pseudocode("dfs", "iterative")
	}
	return Pseudocode("dfs", "recursive")
}

func (d *DFS) Setup() error {
	n := len(dfsGraph.adj)
	d.visited = make([]bool, n)
	d.vertices = make([]anim.ObjectID, n)
	d.listIDs, d.visitedIDs, d.messageIDs, d.stackIDs = nil, nil, nil, nil
	d.litEdges = make(map[[2]int]bool)
	d.ring = anim.NoObject

	return d.setup(func(r *anim.Recorder) {
		d.createInfo(r, infoX, infoY)
		r.CreateLabel(r.NextID(), "Visited Set:", dfsVisitedX-5, dfsVisitedY-25, false)
		r.CreateLabel(r.NextID(), "List:", dfsListStartX-5, dfsListStartY-25, false)
		r.CreateLabel(r.NextID(), "Current vertex:", infoX, dfsCurrentLabel, false)
		stackLabel := "Recursive stack:   Recursive calls:"
		if d.physicalStack {
			stackLabel = "Stack:"
		}
		r.CreateLabel(r.NextID(), stackLabel, infoX, dfsStackLabelY, false)

		for v := range d.vertices {
			d.vertices[v] = r.NextID()
			r.CreateCircle(d.vertices[v], vertexName(v), dfsGraph.pos[v][0], dfsGraph.pos[v][1])
		}
		for u, ns := range dfsGraph.adj {
			for _, v := range ns {
				if u < v {
					r.Connect(d.vertices[u], d.vertices[v], anim.WithUndirected())
				}
			}
		}
	})
}

func (d *DFS) Run(action string, args ...string) error {
	switch action {
	case "run":
		if len(args) != 1 || args[0] == "" {
			return d.reject("Enter a start vertex")
		}
		name := strings.ToUpper(args[0])
		v := int(name[0]) - 'A'
		if len(name) != 1 || v < 0 || v >= len(d.vertices) {
			return d.reject("%s is not a vertex in the graph", name)
		}
		if d.physicalStack {
			return d.animate(func(r *anim.Recorder) { d.runStack(r, v) })
		}
		return d.animate(func(r *anim.Recorder) { d.runRecursive(r, v) })

	case "mode":
		if len(args) != 1 {
			return d.reject("Choose recursive or stack")
		}
		var physical bool
		switch strings.ToLower(args[0]) {
		case "stack", "iterative":
			physical = true
		case "recursive", "recursion":
		default:
			return d.reject("Unknown mode %s", args[0])
		}
		if physical == d.physicalStack {
			return nil
		}
		d.physicalStack = physical
		if err := d.ctrl.ResetAll(); err != nil {
			return err
		}
		return d.Setup()

	case "clear":
		return d.animate(d.clear)
	}
	return unknownAction(d.Name(), action)
}

func vertexName(v int) string {
	return string(rune('A' + v))
}

func (d *DFS) position(v int) (float64, float64) {
	return dfsGraph.pos[v][0], dfsGraph.pos[v][1]
}

func (d *DFS) edge(u, v int) (anim.ObjectID, anim.ObjectID, [2]int) {
	if u > v {
		u, v = v, u
	}
	return d.vertices[u], d.vertices[v], [2]int{u, v}
}

func (d *DFS) highlightEdge(r *anim.Recorder, u, v int, on bool) {
	from, to, key := d.edge(u, v)
	r.SetEdgeHighlight(from, to, on)
	if on {
		d.litEdges[key] = true
	} else {
		delete(d.litEdges, key)
	}
}

func (d *DFS) visitVertex(r *anim.Recorder, v int) {
	d.ring = r.NextID()
	x, y := d.position(v)
	r.CreateHighlightCircle(d.ring, dfsEdgeColor, x, y)
}

func (d *DFS) leaveVertex(r *anim.Recorder) {
	if d.ring != anim.NoObject {
		r.Delete(d.ring)
		d.ring = anim.NoObject
	}
}

func (d *DFS) clear(r *anim.Recorder) {
	for v, id := range d.vertices {
		r.SetBackground(id, anim.DefaultBackground)
		d.visited[v] = false
	}
	for _, ids := range [][]anim.ObjectID{d.listIDs, d.visitedIDs, d.messageIDs, d.stackIDs} {
		for _, id := range ids {
			r.Delete(id)
		}
	}
	d.listIDs, d.visitedIDs, d.messageIDs, d.stackIDs = nil, nil, nil, nil
	for key := range d.litEdges {
		d.highlightEdge(r, key[0], key[1], false)
	}
	d.leaveVertex(r)
	r.SetText(d.info, "")
}

func (d *DFS) addToList(r *anim.Recorder, v int) {
	id := r.NextID()
	d.listIDs = append(d.listIDs, id)
	r.CreateLabel(id, vertexName(v), float64(dfsListStartX+(len(d.listIDs)-1)*dfsListSpacing), dfsListStartY, true)
}

func (d *DFS) markVisited(r *anim.Recorder, v int) {
	d.visited[v] = true
	id := r.NextID()
	d.visitedIDs = append(d.visitedIDs, id)
	r.CreateLabel(id, vertexName(v), float64(dfsVisitedX+(len(d.visitedIDs)-1)*dfsListSpacing), dfsVisitedY, true)
	r.SetBackground(d.vertices[v], dfsVisitedColor)
}

func (d *DFS) pushStack(r *anim.Recorder, v int) anim.ObjectID {
	id := r.NextID()
	d.stackIDs = append(d.stackIDs, id)
	r.CreateLabel(id, vertexName(v), dfsStackX, float64(dfsStackY-(len(d.stackIDs)-1)*dfsStackSpacing), true)
	return id
}

func (d *DFS) runRecursive(r *anim.Recorder, start int) {
	d.clear(r)

	d.currentID = r.NextID()
	r.CreateLabel(d.currentID, "", dfsCurrentX, dfsCurrentY, true)
	r.SetTextColor(d.currentID, dfsStackTopColor)
	r.SetText(d.info, "About to recurse to "+vertexName(start))
	r.Step()

	d.visitVertex(r, start)
	d.visit(r, start, dfsRecursionX)

	r.SetText(d.info, "Returned from "+vertexName(start)+", done")
	r.Delete(d.currentID)
	d.leaveVertex(r)
}

func (d *DFS) visit(r *anim.Recorder, v int, messageX float64) {
	const method = "recursive"

	r.SetText(d.info, "Visiting "+vertexName(v)+" and adding to list")
	r.SetText(d.currentID, vertexName(v))
	d.pushStack(r, v)

	msg := r.NextID()
	d.messageIDs = append(d.messageIDs, msg)
	r.CreateLabel(msg, "DFS("+vertexName(v)+")", messageX, float64(dfsRecursionY+(len(d.messageIDs)-1)*dfsRecursionSpacingY), false)
	r.SetLayer(msg, anim.LayerAnnotation)

	d.addToList(r, v)
	d.markVisited(r, v)
	r.Highlight(method, 1)
	r.Highlight(method, 2)
	r.Step()
	r.Unhighlight(method, 1)
	r.Unhighlight(method, 2)

	r.Highlight(method, 3)
	for _, w := range dfsGraph.adj[v] {
		r.Highlight(method, 4)
		r.Step()
		r.Unhighlight(method, 4)
		if d.visited[w] {
			r.SetText(d.info, "Vertex "+vertexName(w)+" already visited, skipping")
			r.Step()
			continue
		}

		r.Highlight(method, 5)
		d.highlightEdge(r, v, w, true)
		r.SetText(d.info, "About to recurse to "+vertexName(w))
		r.Step()
		r.Unhighlight(method, 5)
		r.Unhighlight(method, 3)

		d.leaveVertex(r)
		d.visitVertex(r, w)
		d.visit(r, w, messageX+dfsRecursionSpacingX)
		r.Highlight(method, 3)

		d.leaveVertex(r)
		d.visitVertex(r, v)
		r.SetText(d.info, "Returned from "+vertexName(w)+" to "+vertexName(v))
		r.Step()
	}
	r.Unhighlight(method, 3)

	top := d.stackIDs[len(d.stackIDs)-1]
	d.stackIDs = d.stackIDs[:len(d.stackIDs)-1]
	r.Delete(top)
}

func (d *DFS) runStack(r *anim.Recorder, start int) {
	const method = "iterative"
	d.clear(r)

	type entry struct {
		v  int
		id anim.ObjectID
	}
	var stack []entry

	r.SetText(d.info, "Pushing "+vertexName(start)+" and adding to visited set")
	r.Highlight(method, 1)
	r.Highlight(method, 2)
	d.markVisited(r, start)
	stack = append(stack, entry{start, d.pushStack(r, start)})
	r.Step()

	r.Unhighlight(method, 1)
	r.Unhighlight(method, 2)
	r.Highlight(method, 3)
	for len(stack) > 0 && len(d.listIDs) < len(d.vertices) {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d.stackIDs = d.stackIDs[:len(d.stackIDs)-1]

		r.Highlight(method, 4)
		r.Step()
		r.Unhighlight(method, 4)
		r.Highlight(method, 5)

		r.SetText(d.info, "Popping "+vertexName(top.v)+" and adding to list")
		r.SetTextColor(top.id, dfsStackTopColor)
		r.Move(top.id, dfsCurrentX, dfsCurrentY)
		d.addToList(r, top.v)
		d.visitVertex(r, top.v)
		r.Step()
		r.Unhighlight(method, 5)

		r.Highlight(method, 6)
		for _, w := range dfsGraph.adj[top.v] {
			d.highlightEdge(r, top.v, w, true)
			r.Highlight(method, 7)
			r.Step()
			r.Unhighlight(method, 7)
			if !d.visited[w] {
				r.Highlight(method, 8)
				r.SetText(d.info, vertexName(w)+" has not yet been visited, pushing and adding to visited set")
				d.markVisited(r, w)
				stack = append(stack, entry{w, d.pushStack(r, w)})
			} else {
				r.SetText(d.info, vertexName(w)+" has already been visited, skipping")
			}
			r.Step()
			r.Unhighlight(method, 8)
		}
		r.Unhighlight(method, 6)

		r.Delete(top.id)
		d.leaveVertex(r)
	}
	r.Unhighlight(method, 3)

	if len(stack) > 0 {
		r.SetText(d.info, "All vertices have been visited, done")
	} else {
		r.SetText(d.info, "Stack is empty, done")
	}
}
