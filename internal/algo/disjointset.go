package algo

import (
	"strconv"
	"strings"

	"algoviz/internal/anim"
)

const (
	setSize = 16

	setArrayX      = 50
	setArrayY      = 500
	setArrayWidth  = 30
	setArrayHeight = 30

	setTreeX       = 50
	setTreeY       = 450
	setTreeSpacing = 50
	setTreeHeight  = 50

	setIndexColor     = "#0000FF"
	setHighlightColor = "#007700"
)

// DisjointSet animates union-find over a fixed universe of elements, drawn
// both as the parent array and as a forest.
type DisjointSet struct {
	module

	pathCompression bool
	unionByRank     bool
	rankAsHeight    bool

	// parent[i] >= 0 is the parent of i; a negative entry marks a root and
	// holds its rank when union by rank is on.
	parent     [setSize]int
	heights    [setSize]int
	treeY      [setSize]float64
	indexToLoc [setSize]int
	locToIndex [setSize]int

	arrayIDs [setSize]anim.ObjectID
	treeIDs  [setSize]anim.ObjectID
}

func NewDisjointSet(c *anim.Controller) Algorithm {
	return &DisjointSet{module: module{ctrl: c}}
}

func (s *DisjointSet) Name() string  { return "disjointset" }
func (s *DisjointSet) Title() string { return "Disjoint Sets" }

func (s *DisjointSet) Actions() []Action {
	return []Action{
		{Name: "union", Usage: "union <a> <b>", Help: "merge the sets holding a and b"},
		{Name: "find", Usage: "find <x>", Help: "find the root of x"},
		{Name: "compression", Usage: "compression on|off", Help: "toggle path compression"},
		{Name: "rank", Usage: "rank on|off", Help: "toggle union by rank"},
		{Name: "ranktype", Usage: "ranktype nodes|height", Help: "rank by node count or estimated height"},
		{Name: "clear", Usage: "clear", Help: "split every element into its own set"},
	}
}

func (s *DisjointSet) Methods() []Method {
	return Pseudocode("disjointset")
}

func (s *DisjointSet) Setup() error {
	for i := range setSize {
		s.parent[i] = -1
		s.heights[i] = 0
		s.indexToLoc[i] = i
		s.locToIndex[i] = i
		s.treeY[i] = setTreeY
	}
	s.pathCompression, s.unionByRank, s.rankAsHeight = false, false, false

	return s.setup(func(r *anim.Recorder) {
		s.createInfo(r, infoX, infoY)
		for i := range setSize {
			s.arrayIDs[i] = r.NextID()
			r.CreateRectangle(s.arrayIDs[i], strconv.Itoa(s.parent[i]), setArrayWidth, setArrayHeight,
				float64(setArrayX+i*setArrayWidth), setArrayY)

			label := r.NextID()
			r.CreateLabel(label, strconv.Itoa(i), float64(setArrayX+i*setArrayWidth), setArrayY+setArrayHeight, true)
			r.SetTextColor(label, setIndexColor)

			s.treeIDs[i] = r.NextID()
			r.CreateCircle(s.treeIDs[i], strconv.Itoa(i), s.treeX(i), s.treeY[i])
		}
	})
}

func (s *DisjointSet) Run(action string, args ...string) error {
	switch action {
	case "union":
		if len(args) != 2 {
			return s.reject("Union needs two elements")
		}
		a, err := s.element(args[0])
		if err != nil {
			return err
		}
		b, err := s.element(args[1])
		if err != nil {
			return err
		}
		return s.animate(func(r *anim.Recorder) { s.union(r, a, b) })

	case "find":
		if len(args) != 1 {
			return s.reject("Find needs one element")
		}
		x, err := s.element(args[0])
		if err != nil {
			return err
		}
		return s.animate(func(r *anim.Recorder) { s.findElement(r, x) })

	case "compression", "rank":
		if len(args) != 1 {
			return s.reject("Choose on or off")
		}
		on, ok := onOff(args[0])
		if !ok {
			return s.reject("Choose on or off, not %s", args[0])
		}
		flag := &s.pathCompression
		if action == "rank" {
			flag = &s.unionByRank
		}
		if *flag == on {
			return nil
		}
		*flag = on
		return s.animate(s.rebuildRootValues)

	case "ranktype":
		if len(args) != 1 {
			return s.reject("Choose nodes or height")
		}
		var height bool
		switch strings.ToLower(args[0]) {
		case "height":
			height = true
		case "nodes":
		default:
			return s.reject("Unknown rank type %s", args[0])
		}
		if height == s.rankAsHeight {
			return nil
		}
		s.rankAsHeight = height
		return s.animate(s.rebuildRootValues)

	case "clear":
		return s.animate(s.clearAll)
	}
	return unknownAction(s.Name(), action)
}

func (s *DisjointSet) element(arg string) (int, error) {
	x, err := parseInt(arg)
	if err != nil || x < 0 || x >= setSize {
		return 0, s.reject("Elements are numbered 0 to %d, got %s", setSize-1, arg)
	}
	return x, nil
}

func (s *DisjointSet) treeX(i int) float64 {
	return float64(setTreeX + s.indexToLoc[i]*setTreeSpacing)
}

func (s *DisjointSet) clearAll(r *anim.Recorder) {
	for i := range setSize {
		if s.parent[i] >= 0 {
			r.Disconnect(s.treeIDs[i], s.treeIDs[s.parent[i]])
		}
		s.parent[i] = -1
		r.SetText(s.arrayIDs[i], "-1")
		s.indexToLoc[i] = i
		s.locToIndex[i] = i
		s.heights[i] = 0
		s.treeY[i] = setTreeY
		r.SetPosition(s.treeIDs[i], s.treeX(i), s.treeY[i])
	}
	r.SetText(s.info, "")
}

func (s *DisjointSet) sizes() [setSize]int {
	var sizes [setSize]int
	for i := range sizes {
		sizes[i] = 1
	}
	for changed := true; changed; {
		changed = false
		for i := range setSize {
			if sizes[i] > 0 && s.parent[i] >= 0 {
				sizes[s.parent[i]] += sizes[i]
				sizes[i] = 0
				changed = true
			}
		}
	}
	return sizes
}

// rebuildRootValues rewrites the root entries to match the current ranking
// rule without touching the forest.
func (s *DisjointSet) rebuildRootValues(r *anim.Recorder) {
	sizes := s.sizes()
	for i := range setSize {
		if s.parent[i] >= 0 {
			continue
		}
		switch {
		case !s.unionByRank:
			s.parent[i] = -1
		case s.rankAsHeight:
			s.parent[i] = -s.heights[i] - 1
		default:
			s.parent[i] = -sizes[i]
		}
	}
	for i := range setSize {
		r.SetText(s.arrayIDs[i], strconv.Itoa(s.parent[i]))
	}
}

func (s *DisjointSet) findElement(r *anim.Recorder, x int) {
	root := s.find(r, x)
	r.SetText(s.info, "Found root "+strconv.Itoa(root))
	if s.pathCompression && s.adjustHeights() {
		r.Step()
		s.animateNewPositions(r)
	}
}

func (s *DisjointSet) find(r *anim.Recorder, x int) int {
	const method = "find"

	r.Highlight(method, 1)
	r.SetHighlight(s.treeIDs[x], true)
	r.SetHighlight(s.arrayIDs[x], true)
	r.Step()
	r.SetHighlight(s.treeIDs[x], false)
	r.SetHighlight(s.arrayIDs[x], false)
	r.Unhighlight(method, 1)

	if s.parent[x] < 0 {
		return x
	}

	r.Highlight(method, 2)
	root := s.find(r, s.parent[x])
	r.Unhighlight(method, 2)

	if s.pathCompression && s.parent[x] != root {
		r.Highlight(method, 3)
		r.Disconnect(s.treeIDs[x], s.treeIDs[s.parent[x]])
		s.parent[x] = root
		r.SetText(s.arrayIDs[x], strconv.Itoa(root))
		r.Connect(s.treeIDs[x], s.treeIDs[root])
		r.Step()
		r.Unhighlight(method, 3)
	}
	return root
}

func (s *DisjointSet) root(x int) int {
	for s.parent[x] >= 0 {
		x = s.parent[x]
	}
	return x
}

// adjustXPos moves the tree rooted at right so it sits directly after the
// tree rooted at left. It reports whether anything moved.
func (s *DisjointSet) adjustXPos(left, right int) bool {
	span := func(root int) (int, int) {
		lo, hi := s.indexToLoc[root], s.indexToLoc[root]
		for lo > 0 && s.root(s.locToIndex[lo-1]) == root {
			lo--
		}
		for hi < setSize-1 && s.root(s.locToIndex[hi+1]) == root {
			hi++
		}
		return lo, hi
	}
	_, right1 := span(left)
	left2, right2 := span(right)
	if right1 == left2-1 {
		return false
	}

	order := make([]int, 0, setSize)
	order = append(order, s.locToIndex[:right1+1]...)
	order = append(order, s.locToIndex[left2:right2+1]...)
	order = append(order, s.locToIndex[right1+1:left2]...)
	order = append(order, s.locToIndex[right2+1:]...)
	for loc, i := range order {
		s.locToIndex[loc] = i
		s.indexToLoc[i] = loc
	}
	return true
}

func (s *DisjointSet) adjustHeights() bool {
	for i := range s.heights {
		s.heights[i] = 0
	}
	for range setSize {
		for i := range setSize {
			if p := s.parent[i]; p >= 0 {
				s.heights[p] = max(s.heights[p], s.heights[i]+1)
			}
		}
	}
	for range setSize {
		for i := range setSize {
			if p := s.parent[i]; p >= 0 {
				s.heights[i] = s.heights[p] - 1
			}
		}
	}
	changed := false
	for i := range setSize {
		y := float64(setTreeY - s.heights[i]*setTreeHeight)
		if s.treeY[i] != y {
			s.treeY[i] = y
			changed = true
		}
	}
	return changed
}

func (s *DisjointSet) animateNewPositions(r *anim.Recorder) {
	for i := range setSize {
		r.Move(s.treeIDs[i], s.treeX(i), s.treeY[i])
	}
}

func (s *DisjointSet) union(r *anim.Recorder, a, b int) {
	const method = "union"

	r.Highlight(method, 1)
	a = s.find(r, a)
	ring1 := r.NextID()
	r.CreateHighlightCircle(ring1, setHighlightColor, s.treeX(a), s.treeY[a])
	b = s.find(r, b)
	ring2 := r.NextID()
	r.CreateHighlightCircle(ring2, setHighlightColor, s.treeX(b), s.treeY[b])
	r.Unhighlight(method, 1)

	if a == b {
		r.Highlight(method, 2)
		r.SetText(s.info, "Already in the same set")
		r.Step()
		r.Unhighlight(method, 2)
		r.Delete(ring1)
		r.Delete(ring2)
		return
	}

	var changed bool
	if s.indexToLoc[a] < s.indexToLoc[b] {
		changed = s.adjustXPos(a, b)
	} else {
		changed = s.adjustXPos(b, a)
	}

	if s.unionByRank {
		r.Highlight(method, 3)
		r.Step()
		r.Unhighlight(method, 3)
		if s.parent[a] < s.parent[b] {
			a, b = b, a
		}
		if s.rankAsHeight {
			if s.parent[a] == s.parent[b] {
				s.parent[b]--
			}
		} else {
			s.parent[b] += s.parent[a]
		}
	}
	s.parent[a] = b

	r.Highlight(method, 4)
	r.SetText(s.arrayIDs[a], strconv.Itoa(s.parent[a]))
	r.SetText(s.arrayIDs[b], strconv.Itoa(s.parent[b]))
	r.Connect(s.treeIDs[a], s.treeIDs[b])
	r.SetText(s.info, "Joined "+strconv.Itoa(a)+" under "+strconv.Itoa(b))
	if s.adjustHeights() {
		changed = true
	}
	r.Step()
	r.Unhighlight(method, 4)

	r.Delete(ring1)
	r.Delete(ring2)
	if changed {
		s.animateNewPositions(r)
	}
}
