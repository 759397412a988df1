package algo

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"algoviz/internal/anim"
)

const (
	msMaxSize  = 15
	msMaxValue = 999

	msStartX     = 650
	msStartY     = 50
	msElemWidth  = 50
	msElemHeight = 50

	msWaitingColor = "#ADD8E6"
	msSortedColor  = "#2ECC71"
)

var msExamples = map[string]string{
	"sorted":  "1,2,3,4,5,6,7,8,9",
	"reverse": "9,8,7,6,5,4,3,2,1",
	"almost":  "2,3,4,5,6,7,8,9,1",
}

// MiracleSort lays out an array and waits for it to sort itself.
type MiracleSort struct {
	module

	values []int
	ids    []anim.ObjectID
}

func NewMiracleSort(c *anim.Controller) Algorithm {
	return &MiracleSort{module: module{ctrl: c}}
}

func (m *MiracleSort) Name() string  { return "miraclesort" }
func (m *MiracleSort) Title() string { return "Miracle Sort" }

func (m *MiracleSort) Actions() []Action {
	return []Action{
		{Name: "sort", Usage: "sort <list>", Help: `sort a comma separated list such as "3,1,2" (max 15, none > 999)`},
		{Name: "example", Usage: "example sorted|reverse|almost|random", Help: "sort one of the sample lists"},
		{Name: "clear", Usage: "clear", Help: "remove the array"},
	}
}

func (m *MiracleSort) Methods() []Method {
	return Pseudocode("miraclesort")
}

func (m *MiracleSort) Setup() error {
	m.values, m.ids = nil, nil
	return m.setup(func(r *anim.Recorder) {
		m.createInfo(r, infoX, infoY)
	})
}

func (m *MiracleSort) Run(action string, args ...string) error {
	switch action {
	case "sort":
		return m.sort(strings.Join(args, ","))

	case "example":
		if len(args) != 1 {
			return m.reject("Pick an example: sorted, reverse, almost or random")
		}
		name := strings.ToLower(args[0])
		if name == "random" {
			return m.sort(randomList())
		}
		list, ok := msExamples[name]
		if !ok {
			return m.reject("Unknown example %s", args[0])
		}
		return m.sort(list)

	case "clear":
		return m.animateState(m.checkpoint(), func(r *anim.Recorder) {
			m.clear(r)
			r.Step()
		})
	}
	return unknownAction(m.Name(), action)
}

func (m *MiracleSort) checkpoint() func() {
	values := slices.Clone(m.values)
	ids := slices.Clone(m.ids)
	return func() { m.values, m.ids = values, ids }
}

// Values returns the array as it was last entered.
func (m *MiracleSort) Values() []int {
	return slices.Clone(m.values)
}

func randomList() string {
	n := rand.IntN(9) + 5
	items := make([]string, n)
	for i := range items {
		items[i] = strconv.Itoa(rand.IntN(13) + 1)
	}
	return strings.Join(items, ",")
}

func (m *MiracleSort) sort(list string) error {
	var items []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	switch {
	case len(items) == 0:
		return m.reject(`Data must contain integers such as "3,1,2"`)
	case len(items) > msMaxSize:
		return m.reject("Data cannot contain more than %d numbers (you put %d)", msMaxSize, len(items))
	}
	values := make([]int, len(items))
	for i, s := range items {
		v, err := strconv.Atoi(s)
		if err != nil || v > msMaxValue {
			return m.reject("Data cannot contain non-numeric values or numbers > %d", msMaxValue)
		}
		values[i] = v
	}

	return m.animateState(m.checkpoint(), func(r *anim.Recorder) {
		const method = "sort"
		m.clear(r)

		r.Highlight(method, 0)
		m.values = values
		m.ids = make([]anim.ObjectID, len(values))
		for i, label := range displayLabels(values) {
			m.ids[i] = r.NextID()
			r.CreateRectangle(m.ids[i], label, msElemWidth, msElemHeight, float64(i*msElemWidth+msStartX), msStartY)
		}
		r.Step()
		r.Unhighlight(method, 0)

		r.Highlight(method, 1)
		if slices.IsSorted(values) {
			r.SetText(m.info, "The array is already sorted. No miracle needed.")
			for _, id := range m.ids {
				r.SetBackground(id, msSortedColor)
			}
			r.Step()
			r.Unhighlight(method, 1)
			r.Highlight(method, 3)
			r.Step()
			r.Unhighlight(method, 3)
			return
		}
		r.Highlight(method, 2)
		r.SetText(m.info, "Waiting for a miracle to happen...\n\nRun sort again once it does.")
		for _, id := range m.ids {
			r.SetBackground(id, msWaitingColor)
		}
		r.Step()
		r.Unhighlight(method, 2)
		r.Unhighlight(method, 1)
	})
}

func (m *MiracleSort) clear(r *anim.Recorder) {
	for _, id := range m.ids {
		r.Delete(id)
	}
	m.values, m.ids = nil, nil
	r.SetText(m.info, "")
}

// displayLabels suffixes every copy of a repeated value with a letter so
// equal elements stay distinguishable: 3,1,3 becomes 3a,1,3b.
func displayLabels(values []int) []string {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	next := make(map[int]rune)
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = strconv.Itoa(v)
		if counts[v] > 1 {
			if next[v] == 0 {
				next[v] = 'a'
			}
			labels[i] += string(next[v])
			next[v]++
		}
	}
	return labels
}
