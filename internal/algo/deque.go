package algo

import (
	"slices"
	"strings"

	"algoviz/internal/anim"
)

const (
	dequeCapacity = 32
	dequeMaxValue = 4

	dequeStartX      = 100
	dequeStartY      = 200
	dequeNodeWidth   = 100
	dequeNodeHeight  = 30
	dequeInsertX     = 200
	dequeInsertY     = 50
	dequePerLine     = 8
	dequeSpacing     = 150
	dequeLineSpacing = 100

	dequeValueLabelX = 60
	dequeValueLabelY = 30
	dequeValueX      = 130
	dequeValueY      = 30

	dequePointerLabelX = 130
	dequePointerX      = 180
	dequeHeadY         = 100
	dequeTailY         = 300
	dequePointerSize   = 30
)

// Deque animates a doubly linked list with head and tail pointers.
type Deque struct {
	module

	values []string
	nodes  []anim.ObjectID

	head, tail           anim.ObjectID
	leftoverLabel, value anim.ObjectID
}

func NewDeque(c *anim.Controller) Algorithm {
	return &Deque{module: module{ctrl: c}}
}

func (d *Deque) Name() string  { return "deque" }
func (d *Deque) Title() string { return "Deque (Linked List)" }

func (d *Deque) Actions() []Action {
	return []Action{
		{Name: "addFirst", Usage: "addFirst <value>", Help: "add a value at the front"},
		{Name: "addLast", Usage: "addLast <value>", Help: "add a value at the back"},
		{Name: "removeFirst", Usage: "removeFirst", Help: "remove the front value"},
		{Name: "removeLast", Usage: "removeLast", Help: "remove the back value"},
		{Name: "clear", Usage: "clear", Help: "remove every value"},
	}
}

func (d *Deque) Methods() []Method {
	return Pseudocode("deque")
}

func (d *Deque) Setup() error {
	d.values, d.nodes = nil, nil
	return d.setup(func(r *anim.Recorder) {
		d.createInfo(r, infoX, infoY)

		d.leftoverLabel = r.NextID()
		r.CreateLabel(d.leftoverLabel, "", dequeValueLabelX, dequeValueLabelY, true)
		d.value = r.NextID()
		r.CreateLabel(d.value, "", dequeValueX, dequeValueY, true)

		r.CreateLabel(r.NextID(), "Head", dequePointerLabelX, dequeHeadY, true)
		d.head = r.NextID()
		r.CreateRectangle(d.head, "", dequePointerSize, dequePointerSize, dequePointerX, dequeHeadY)
		r.SetNull(d.head, true)

		r.CreateLabel(r.NextID(), "Tail", dequePointerLabelX, dequeTailY, true)
		d.tail = r.NextID()
		r.CreateRectangle(d.tail, "", dequePointerSize, dequePointerSize, dequePointerX, dequeTailY)
		r.SetNull(d.tail, true)
	})
}

func (d *Deque) Run(action string, args ...string) error {
	switch action {
	case "addFirst", "addLast":
		if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
			return d.reject("Enter a value to add")
		}
		v := strings.TrimSpace(args[0])
		if len([]rune(v)) > dequeMaxValue {
			return d.reject("Values are at most %d characters", dequeMaxValue)
		}
		if len(d.values) >= dequeCapacity {
			return d.reject("The deque is full")
		}
		front := action == "addFirst"
		return d.animateState(d.checkpoint(), func(r *anim.Recorder) { d.add(r, v, front) })

	case "removeFirst", "removeLast":
		if len(d.values) == 0 {
			return d.reject("The deque is empty")
		}
		front := action == "removeFirst"
		return d.animateState(d.checkpoint(), func(r *anim.Recorder) { d.remove(r, front) })

	case "clear":
		return d.animateState(d.checkpoint(), d.clear)
	}
	return unknownAction(d.Name(), action)
}

func (d *Deque) checkpoint() func() {
	values := slices.Clone(d.values)
	nodes := slices.Clone(d.nodes)
	return func() { d.values, d.nodes = values, nodes }
}

// Values returns the contents from front to back.
func (d *Deque) Values() []string {
	return append([]string(nil), d.values...)
}

func nodePosition(i int) (float64, float64) {
	x := (i%dequePerLine)*dequeSpacing + dequeStartX
	y := (i/dequePerLine)*dequeLineSpacing + dequeStartY
	return float64(x), float64(y)
}

func (d *Deque) resetNodePositions(r *anim.Recorder) {
	for i, id := range d.nodes {
		x, y := nodePosition(i)
		r.Move(id, x, y)
	}
}

func (d *Deque) add(r *anim.Recorder, v string, front bool) {
	method := "addLast"
	if front {
		method = "addFirst"
	}
	empty := len(d.values) == 0

	r.Highlight(method, 0)
	r.SetText(d.info, "")
	r.SetText(d.leftoverLabel, "")
	r.SetText(d.value, "")
	r.Step()

	r.Highlight(method, 1)
	node := r.NextID()
	r.CreateLinkedListNode(node, "", dequeNodeWidth, dequeNodeHeight, dequeInsertX, dequeInsertY)
	label := r.NextID()
	r.CreateLabel(label, "Enqueuing Value: ", dequeValueLabelX, dequeValueLabelY, true)
	moving := r.NextID()
	r.CreateLabel(moving, v, dequeValueX, dequeValueY, true)
	r.Step()
	r.Unhighlight(method, 1)

	r.Move(moving, dequeInsertX, dequeInsertY)
	r.Step()
	r.SetText(node, v)
	r.Delete(moving)

	r.Highlight(method, 2)
	r.Step()
	r.Unhighlight(method, 2)

	if empty {
		r.Highlight(method, 3)
		r.SetPrevNull(node, true)
		r.SetNextNull(node, true)
		r.SetNull(d.head, false)
		r.SetNull(d.tail, false)
		r.Connect(d.head, node)
		r.Connect(d.tail, node)
		r.Step()
		r.Unhighlight(method, 3)
	} else if front {
		old := d.nodes[0]
		r.Highlight(method, 4)
		r.Highlight(method, 5)
		r.SetPrevNull(node, true)
		r.ConnectNext(node, old)
		r.Step()
		r.Unhighlight(method, 5)

		r.Highlight(method, 6)
		r.SetPrevNull(old, false)
		r.ConnectPrev(old, node)
		r.Step()
		r.Unhighlight(method, 6)

		r.Highlight(method, 7)
		r.Disconnect(d.head, old)
		r.Connect(d.head, node)
		r.Step()
		r.Unhighlight(method, 7)
		r.Unhighlight(method, 4)
	} else {
		old := d.nodes[len(d.nodes)-1]
		r.Highlight(method, 4)
		r.Highlight(method, 5)
		r.SetNextNull(node, true)
		r.ConnectPrev(node, old)
		r.Step()
		r.Unhighlight(method, 5)

		r.Highlight(method, 6)
		r.SetNextNull(old, false)
		r.ConnectNext(old, node)
		r.Step()
		r.Unhighlight(method, 6)

		r.Highlight(method, 7)
		r.Disconnect(d.tail, old)
		r.Connect(d.tail, node)
		r.Step()
		r.Unhighlight(method, 7)
		r.Unhighlight(method, 4)
	}

	if front {
		d.values = append([]string{v}, d.values...)
		d.nodes = append([]anim.ObjectID{node}, d.nodes...)
	} else {
		d.values = append(d.values, v)
		d.nodes = append(d.nodes, node)
	}

	r.Highlight(method, 8)
	r.Delete(label)
	d.resetNodePositions(r)
	r.Step()
	r.Unhighlight(method, 8)
	r.Unhighlight(method, 0)
}

func (d *Deque) remove(r *anim.Recorder, front bool) {
	method := "removeLast"
	index := len(d.values) - 1
	if front {
		method = "removeFirst"
		index = 0
	}
	node := d.nodes[index]
	v := d.values[index]

	r.Highlight(method, 0)
	r.SetText(d.info, "")
	r.SetText(d.leftoverLabel, "")
	r.SetText(d.value, "")
	r.Step()

	r.Highlight(method, 1)
	label := r.NextID()
	r.CreateLabel(label, "Removed Value: ", dequeValueLabelX, dequeValueLabelY, true)
	moving := r.NextID()
	x, y := nodePosition(index)
	r.CreateLabel(moving, v, x, y, true)
	r.Move(moving, dequeValueX, dequeValueY)
	r.Step()
	r.Unhighlight(method, 1)

	r.Highlight(method, 2)
	r.Step()
	r.Unhighlight(method, 2)

	if len(d.values) == 1 {
		r.Highlight(method, 3)
		r.Disconnect(d.head, node)
		r.Disconnect(d.tail, node)
		r.SetNull(d.head, true)
		r.SetNull(d.tail, true)
		r.Step()
		r.Unhighlight(method, 3)
	} else {
		r.Highlight(method, 4)
		r.Highlight(method, 5)
		if front {
			next := d.nodes[1]
			r.Disconnect(d.head, node)
			r.Connect(d.head, next)
			r.Step()
			r.Unhighlight(method, 5)

			r.Highlight(method, 6)
			r.Disconnect(next, node)
			r.SetPrevNull(next, true)
		} else {
			prev := d.nodes[index-1]
			r.Disconnect(d.tail, node)
			r.Connect(d.tail, prev)
			r.Step()
			r.Unhighlight(method, 5)

			r.Highlight(method, 6)
			r.Disconnect(prev, node)
			r.SetNextNull(prev, true)
		}
		r.Step()
		r.Unhighlight(method, 6)
		r.Unhighlight(method, 4)
	}

	r.Highlight(method, 7)
	r.Delete(node)
	d.values = append(d.values[:index], d.values[index+1:]...)
	d.nodes = append(d.nodes[:index], d.nodes[index+1:]...)
	d.resetNodePositions(r)
	r.Step()
	r.Unhighlight(method, 7)

	r.Highlight(method, 8)
	r.SetText(d.leftoverLabel, "Removed Value: ")
	r.SetText(d.value, v)
	r.Delete(moving)
	r.Delete(label)
	r.Step()
	r.Unhighlight(method, 8)
	r.Unhighlight(method, 0)
}

func (d *Deque) clear(r *anim.Recorder) {
	for _, id := range d.nodes {
		r.Delete(id)
	}
	d.values, d.nodes = nil, nil
	r.SetNull(d.head, true)
	r.SetNull(d.tail, true)
	r.SetText(d.leftoverLabel, "")
	r.SetText(d.value, "")
	r.SetText(d.info, "")
}
