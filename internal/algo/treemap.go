package algo

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"algoviz/internal/anim"
)

const (
	tmMaxLength = 4

	tmStartX  = 80
	tmStartY  = 80
	tmInsertX = 30
	tmWidth   = 50
	tmHeight  = 60
	tmLabelDX = 20
	tmLabelDY = 22

	tmLinkAlpha      = 0.6
	tmHighlightColor = "#007700"
	tmSuccessorColor = "#0000FF"
	tmLabelColor     = "#000000"
	tmAlertColor     = "#FF0000"

	nilNode = -1
)

type tmNode struct {
	key    int
	value  string
	parent int
	left   int
	right  int
	height int

	circle      anim.ObjectID
	heightLabel anim.ObjectID
	bfLabel     anim.ObjectID
	x, y        float64
}

// TreeMap animates an AVL tree keyed by integers. Nodes live in an arena and
// refer to each other by index; freed slots are reused.
type TreeMap struct {
	module

	nodes []tmNode
	free  []int
	root  int
	size  int

	// links mirrors the parent to child edges currently drawn.
	links map[[2]anim.ObjectID]bool
}

func NewTreeMap(c *anim.Controller) Algorithm {
	return &TreeMap{module: module{ctrl: c}, root: nilNode}
}

func (t *TreeMap) Name() string  { return "treemap" }
func (t *TreeMap) Title() string { return "AVL Tree Map" }

func (t *TreeMap) Actions() []Action {
	return []Action{
		{Name: "put", Usage: "put <key> <value>", Help: "insert or replace a mapping"},
		{Name: "get", Usage: "get <key>", Help: "look up a key"},
		{Name: "remove", Usage: "remove <key>", Help: "delete a key"},
		{Name: "clear", Usage: "clear", Help: "remove every mapping"},
	}
}

func (t *TreeMap) Methods() []Method {
	return Pseudocode("treemap")
}

func (t *TreeMap) Setup() error {
	t.nodes, t.free, t.root, t.size = nil, nil, nilNode, 0
	t.links = make(map[[2]anim.ObjectID]bool)
	return t.setup(func(r *anim.Recorder) {
		t.createInfo(r, infoX, infoY)
	})
}

func (t *TreeMap) Run(action string, args ...string) error {
	switch action {
	case "put":
		if len(args) != 2 {
			return t.reject("Enter a key and a value")
		}
		key, err := t.key(args[0])
		if err != nil {
			return err
		}
		value := strings.TrimSpace(args[1])
		if value == "" || len([]rune(value)) > tmMaxLength {
			return t.reject("Values are 1 to %d characters", tmMaxLength)
		}
		return t.animateState(t.checkpoint(), func(r *anim.Recorder) {
			r.SetText(t.info, fmt.Sprintf("Inserting <%d, %s>", key, value))
			r.Step()
			t.root = t.put(r, t.root, key, value)
			t.nodes[t.root].parent = nilNode
			t.sync(r)
			r.SetText(t.info, "")
		})

	case "get":
		if len(args) != 1 {
			return t.reject("Enter a key to find")
		}
		key, err := t.key(args[0])
		if err != nil {
			return err
		}
		return t.animate(func(r *anim.Recorder) { t.get(r, key) })

	case "remove":
		if len(args) != 1 {
			return t.reject("Enter a key to remove")
		}
		key, err := t.key(args[0])
		if err != nil {
			return err
		}
		return t.animateState(t.checkpoint(), func(r *anim.Recorder) {
			r.SetText(t.info, fmt.Sprintf("Deleting %d", key))
			r.Step()
			t.root = t.remove(r, t.root, key)
			if t.root != nilNode {
				t.nodes[t.root].parent = nilNode
			}
			t.sync(r)
		})

	case "clear":
		return t.animateState(t.checkpoint(), t.clear)
	}
	return unknownAction(t.Name(), action)
}

func (t *TreeMap) checkpoint() func() {
	nodes := slices.Clone(t.nodes)
	free := slices.Clone(t.free)
	root, size := t.root, t.size
	links := maps.Clone(t.links)
	return func() {
		t.nodes, t.free, t.root, t.size, t.links = nodes, free, root, size, links
	}
}

func (t *TreeMap) key(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	k, err := parseInt(arg)
	if err != nil || len(arg) > tmMaxLength {
		return 0, t.reject("Keys are integers of at most %d characters, got %q", tmMaxLength, arg)
	}
	return k, nil
}

// Keys returns the keys in order.
func (t *TreeMap) Keys() []int {
	var out []int
	var walk func(i int)
	walk = func(i int) {
		if i == nilNode {
			return
		}
		walk(t.nodes[i].left)
		out = append(out, t.nodes[i].key)
		walk(t.nodes[i].right)
	}
	walk(t.root)
	return out
}

// Len returns the number of mappings.
func (t *TreeMap) Len() int { return t.size }

func (t *TreeMap) heightOf(i int) int {
	if i == nilNode {
		return -1
	}
	return t.nodes[i].height
}

func (t *TreeMap) balanceOf(i int) int {
	return t.heightOf(t.nodes[i].left) - t.heightOf(t.nodes[i].right)
}

func (t *TreeMap) setLeft(i, child int) {
	t.nodes[i].left = child
	if child != nilNode {
		t.nodes[child].parent = i
	}
}

func (t *TreeMap) setRight(i, child int) {
	t.nodes[i].right = child
	if child != nilNode {
		t.nodes[child].parent = i
	}
}

func (t *TreeMap) replaceChild(parent, old, child int) {
	switch {
	case parent == nilNode:
		t.root = child
		t.nodes[child].parent = nilNode
	case t.nodes[parent].left == old:
		t.setLeft(parent, child)
	default:
		t.setRight(parent, child)
	}
}

func nodeText(key int, value string) string {
	return strconv.Itoa(key) + ":" + value
}

func (t *TreeMap) alloc(r *anim.Recorder, key int, value string) int {
	n := tmNode{
		key: key, value: value,
		parent: nilNode, left: nilNode, right: nilNode,
		circle:      r.NextID(),
		heightLabel: r.NextID(),
		bfLabel:     r.NextID(),
		x:           tmInsertX,
		y:           tmStartY,
	}
	r.CreateCircle(n.circle, nodeText(key, value), n.x, n.y)
	r.CreateLabel(n.heightLabel, "0", n.x-tmLabelDX, n.y-tmLabelDY, true)
	r.CreateLabel(n.bfLabel, "0", n.x+tmLabelDX, n.y-tmLabelDY, true)
	r.SetTextColor(n.heightLabel, tmLabelColor)
	r.SetTextColor(n.bfLabel, tmLabelColor)

	t.size++
	if len(t.free) > 0 {
		i := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[i] = n
		return i
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *TreeMap) release(r *anim.Recorder, i int) {
	n := t.nodes[i]
	r.Delete(n.circle)
	r.Delete(n.heightLabel)
	r.Delete(n.bfLabel)
	for link := range t.links {
		if link[0] == n.circle || link[1] == n.circle {
			delete(t.links, link)
		}
	}
	t.nodes[i] = tmNode{parent: nilNode, left: nilNode, right: nilNode}
	t.free = append(t.free, i)
	t.size--
}

// sync redraws the parent to child edges and moves every node to its
// in-order slot. It closes a step when anything changed.
func (t *TreeMap) sync(r *anim.Recorder) {
	want := make(map[[2]anim.ObjectID]bool)
	var order []int
	var walk func(i, depth int)
	walk = func(i, depth int) {
		if i == nilNode {
			return
		}
		n := t.nodes[i]
		for _, c := range []int{n.left, n.right} {
			if c != nilNode {
				want[[2]anim.ObjectID{n.circle, t.nodes[c].circle}] = true
			}
		}
		walk(n.left, depth+1)
		order = append(order, i)
		t.nodes[i].y = tmStartY + float64(depth*tmHeight)
		walk(n.right, depth+1)
	}

	prevY := make(map[int]float64)
	for i := range t.nodes {
		prevY[i] = t.nodes[i].y
	}
	walk(t.root, 0)

	changed := false
	for _, link := range sortedLinks(t.links) {
		if !want[link] {
			r.Disconnect(link[0], link[1])
			delete(t.links, link)
			changed = true
		}
	}
	for _, link := range sortedLinks(want) {
		if !t.links[link] {
			r.Connect(link[0], link[1])
			r.SetEdgeAlpha(link[0], link[1], tmLinkAlpha)
			t.links[link] = true
			changed = true
		}
	}

	for k, i := range order {
		n := &t.nodes[i]
		x := tmStartX + float64(k*tmWidth)
		if n.x == x && n.y == prevY[i] {
			continue
		}
		n.x = x
		r.Move(n.circle, n.x, n.y)
		r.Move(n.heightLabel, n.x-tmLabelDX, n.y-tmLabelDY)
		r.Move(n.bfLabel, n.x+tmLabelDX, n.y-tmLabelDY)
		changed = true
	}
	if changed {
		r.Step()
	}
}

func sortedLinks(m map[[2]anim.ObjectID]bool) [][2]anim.ObjectID {
	out := make([][2]anim.ObjectID, 0, len(m))
	for link := range m {
		out = append(out, link)
	}
	slices.SortFunc(out, func(a, b [2]anim.ObjectID) int {
		if a[0] != b[0] {
			return int(a[0] - b[0])
		}
		return int(a[1] - b[1])
	})
	return out
}

func (t *TreeMap) update(r *anim.Recorder, i int) {
	n := &t.nodes[i]
	n.height = max(t.heightOf(n.left), t.heightOf(n.right)) + 1
	r.SetText(n.heightLabel, strconv.Itoa(n.height))
	r.SetText(n.bfLabel, strconv.Itoa(t.balanceOf(i)))
}

func (t *TreeMap) put(r *anim.Recorder, i, key int, value string) int {
	const method = "put"

	if i == nilNode {
		r.Highlight(method, 1)
		r.SetText(t.info, "Null found, inserting new node")
		n := t.alloc(r, key, value)
		r.Step()
		r.Unhighlight(method, 1)
		return n
	}

	circle := t.nodes[i].circle
	r.SetHighlight(circle, true)
	switch k := t.nodes[i].key; {
	case key < k:
		r.Highlight(method, 2)
		r.SetText(t.info, fmt.Sprintf("%d < %d. Looking at left subtree", key, k))
		r.Step()
		r.Unhighlight(method, 2)
		t.setLeft(i, t.put(r, t.nodes[i].left, key, value))
		t.sync(r)
	case key > k:
		r.Highlight(method, 3)
		r.SetText(t.info, fmt.Sprintf("%d > %d. Looking at right subtree", key, k))
		r.Step()
		r.Unhighlight(method, 3)
		t.setRight(i, t.put(r, t.nodes[i].right, key, value))
		t.sync(r)
	default:
		r.Highlight(method, 4)
		r.SetText(t.info, fmt.Sprintf("%d == %d. Found duplicate, replacing the value", key, k))
		t.nodes[i].value = value
		r.SetText(circle, nodeText(key, value))
		r.Step()
		r.Unhighlight(method, 4)
	}
	r.SetHighlight(circle, false)
	return t.balance(r, i, method)
}

func (t *TreeMap) get(r *anim.Recorder, key int) {
	const method = "get"

	r.Highlight(method, 1)
	r.SetText(t.info, fmt.Sprintf("Searching for %d", key))
	ring := anim.NoObject
	cur := t.root
	if cur != nilNode {
		ring = r.NextID()
		r.CreateHighlightCircle(ring, tmHighlightColor, t.nodes[cur].x, t.nodes[cur].y)
	}
	r.Step()
	r.Unhighlight(method, 1)

	for cur != nilNode {
		n := t.nodes[cur]
		r.Highlight(method, 2)
		r.Step()
		r.Unhighlight(method, 2)

		if key == n.key {
			r.Highlight(method, 3)
			r.SetHighlight(n.circle, true)
			r.SetText(t.info, fmt.Sprintf("Found %d: value %s", key, n.value))
			r.Step()
			r.SetHighlight(n.circle, false)
			r.Unhighlight(method, 3)
			r.Delete(ring)
			return
		}

		r.Highlight(method, 4)
		next := n.right
		if key < n.key {
			next = n.left
			r.SetText(t.info, fmt.Sprintf("%d < %d (look to left subtree)", key, n.key))
		} else {
			r.SetText(t.info, fmt.Sprintf("%d > %d (look to right subtree)", key, n.key))
		}
		if next != nilNode {
			r.Move(ring, t.nodes[next].x, t.nodes[next].y)
		}
		r.Step()
		r.Unhighlight(method, 4)
		cur = next
	}

	if ring != anim.NoObject {
		r.Delete(ring)
	}
	r.Highlight(method, 5)
	r.SetText(t.info, fmt.Sprintf("%d not found", key))
	r.Step()
	r.Unhighlight(method, 5)
}

func (t *TreeMap) remove(r *anim.Recorder, i, key int) int {
	const method = "remove"

	if i == nilNode {
		r.Highlight(method, 1)
		r.SetText(t.info, fmt.Sprintf("%d not found in the tree", key))
		r.Step()
		r.Unhighlight(method, 1)
		return nilNode
	}

	circle := t.nodes[i].circle
	r.SetHighlight(circle, true)
	switch k := t.nodes[i].key; {
	case key != k:
		r.Highlight(method, 2)
		if key < k {
			r.SetText(t.info, fmt.Sprintf("%d < %d. Looking left", key, k))
			r.Step()
			r.Unhighlight(method, 2)
			t.setLeft(i, t.remove(r, t.nodes[i].left, key))
		} else {
			r.SetText(t.info, fmt.Sprintf("%d > %d. Looking right", key, k))
			r.Step()
			r.Unhighlight(method, 2)
			t.setRight(i, t.remove(r, t.nodes[i].right, key))
		}
		t.sync(r)

	case t.nodes[i].left == nilNode || t.nodes[i].right == nilNode:
		r.Highlight(method, 3)
		child := t.nodes[i].left
		if child == nilNode {
			child = t.nodes[i].right
		}
		if child == nilNode {
			r.SetText(t.info, "Element to delete is a leaf node")
		} else {
			r.SetText(t.info, "One-child case, replace with the child")
		}
		r.Step()
		t.release(r, i)
		r.Step()
		r.Unhighlight(method, 3)
		return child

	default:
		r.Highlight(method, 4)
		r.SetText(t.info, "Two-child case, replace data with successor")
		r.Step()
		right, succKey, succValue := t.removeMin(r, t.nodes[i].right)
		t.setRight(i, right)
		t.nodes[i].key, t.nodes[i].value = succKey, succValue
		r.SetText(circle, nodeText(succKey, succValue))
		t.sync(r)
		r.Unhighlight(method, 4)
	}
	r.SetHighlight(circle, false)
	return t.balance(r, i, method)
}

// removeMin unlinks the smallest node of the subtree at i and returns the
// new subtree root with the removed mapping.
func (t *TreeMap) removeMin(r *anim.Recorder, i int) (int, int, string) {
	circle := t.nodes[i].circle
	r.SetHighlightColor(circle, true, tmSuccessorColor)
	r.Step()

	if t.nodes[i].left == nilNode {
		r.SetText(t.info, "No left child, this is the successor")
		r.Step()
		n := t.nodes[i]
		t.release(r, i)
		r.Step()
		return n.right, n.key, n.value
	}

	r.SetText(t.info, "Left child exists, look left")
	r.Step()
	left, k, v := t.removeMin(r, t.nodes[i].left)
	t.setLeft(i, left)
	t.sync(r)
	r.SetHighlightColor(circle, false, anim.DefaultHighlight)
	return t.balance(r, i, "remove"), k, v
}

func (t *TreeMap) balance(r *anim.Recorder, i int, method string) int {
	t.update(r, i)
	r.Highlight(method, 5)
	r.SetText(t.info, "Adjusting height and balance factor after recursive call")
	r.Step()
	defer r.Unhighlight(method, 5)

	bf := t.balanceOf(i)
	switch {
	case bf < -1:
		bfLabel := t.nodes[i].bfLabel
		r.SetText(t.info, "Balance factor < -1")
		r.SetTextColor(bfLabel, tmAlertColor)
		r.Step()
		if rc := t.nodes[i].right; t.balanceOf(rc) > 0 {
			r.SetText(t.info, "Right child balance factor > 0, right-left rotation")
			r.Step()
			t.rotateRight(r, rc)
		} else {
			r.SetText(t.info, "Left rotation")
			r.Step()
		}
		r.SetTextColor(bfLabel, tmLabelColor)
		return t.rotateLeft(r, i)

	case bf > 1:
		bfLabel := t.nodes[i].bfLabel
		r.SetText(t.info, "Balance factor > 1")
		r.SetTextColor(bfLabel, tmAlertColor)
		r.Step()
		if lc := t.nodes[i].left; t.balanceOf(lc) < 0 {
			r.SetText(t.info, "Left child balance factor < 0, left-right rotation")
			r.Step()
			t.rotateLeft(r, lc)
		} else {
			r.SetText(t.info, "Right rotation")
			r.Step()
		}
		r.SetTextColor(bfLabel, tmLabelColor)
		return t.rotateRight(r, i)
	}
	return i
}

func (t *TreeMap) rotateRight(r *anim.Recorder, b int) int {
	a := t.nodes[b].left
	r.SetEdgeHighlight(t.nodes[b].circle, t.nodes[a].circle, true)
	r.Step()

	parent := t.nodes[b].parent
	t.setLeft(b, t.nodes[a].right)
	t.setRight(a, b)
	t.replaceChild(parent, b, a)
	t.update(r, b)
	t.update(r, a)
	t.sync(r)
	return a
}

func (t *TreeMap) rotateLeft(r *anim.Recorder, a int) int {
	b := t.nodes[a].right
	r.SetEdgeHighlight(t.nodes[a].circle, t.nodes[b].circle, true)
	r.Step()

	parent := t.nodes[a].parent
	t.setRight(a, t.nodes[b].left)
	t.setLeft(b, a)
	t.replaceChild(parent, a, b)
	t.update(r, a)
	t.update(r, b)
	t.sync(r)
	return b
}

func (t *TreeMap) clear(r *anim.Recorder) {
	var walk func(i int)
	walk = func(i int) {
		if i == nilNode {
			return
		}
		left, right := t.nodes[i].left, t.nodes[i].right
		t.release(r, i)
		walk(left)
		walk(right)
	}
	walk(t.root)
	t.nodes, t.free, t.root, t.size = nil, nil, nilNode, 0
	t.links = make(map[[2]anim.ObjectID]bool)
	r.SetText(t.info, "")
}
