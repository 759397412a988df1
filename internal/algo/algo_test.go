package algo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/algo"
	"algoviz/internal/anim"
)

// harness wires a module to a controller whose highlight callback checks
// every lit line against the module's pseudocode.
type harness struct {
	t    *testing.T
	ctrl *anim.Controller
	alg  algo.Algorithm
}

func newHarness(t *testing.T, name string) *harness {
	t.Helper()
	h := &harness{t: t}
	lines := map[string]int{}
	for _, m := range algo.Pseudocode(name) {
		require.Len(t, m.Code, len(m.English), "%s.%s", name, m.Name)
		lines[m.Name] = len(m.Code)
	}
	h.ctrl = anim.NewController(anim.WithHighlightFunc(func(method string, line int, _ bool) {
		n, ok := lines[method]
		assert.True(t, ok, "unknown pseudocode method %q", method)
		assert.True(t, line >= 0 && line < n, "line %d out of range for %q", line, method)
	}))

	alg, err := algo.New(name, h.ctrl)
	require.NoError(t, err)
	require.NoError(t, alg.Setup())
	h.alg = alg
	assert.Equal(t, 0, h.ctrl.TotalSteps())
	return h
}

// run records an action, then plays it forward and back checking the live
// state against a replay of the log at every boundary.
func (h *harness) run(action string, args ...string) {
	t := h.t
	t.Helper()

	start := h.ctrl.CurrentStep()
	before := h.ctrl.Snapshot()
	require.NoError(t, h.alg.Run(action, args...))
	require.Equal(t, start, h.ctrl.CurrentStep())
	require.True(t, before.Equal(h.ctrl.Snapshot()), before.Diff(h.ctrl.Snapshot()))

	for h.ctrl.CurrentStep() < h.ctrl.TotalSteps() {
		require.NoError(t, h.ctrl.StepForward())
		require.NoError(t, h.ctrl.Verify())
	}
	end := h.ctrl.Snapshot()
	assert.Empty(t, end.Lines, "pseudocode lines left lit after %s", action)

	for h.ctrl.CurrentStep() > start {
		require.NoError(t, h.ctrl.StepBackward())
		require.NoError(t, h.ctrl.Verify())
	}
	assert.True(t, before.Equal(h.ctrl.Snapshot()), before.Diff(h.ctrl.Snapshot()))

	require.NoError(t, h.ctrl.SkipToEnd())
	assert.True(t, end.Equal(h.ctrl.Snapshot()))
}

func (h *harness) snapshot() anim.Snapshot {
	return h.ctrl.Snapshot()
}

func findText(snap anim.Snapshot, prefix string) (anim.Object, bool) {
	for _, o := range snap.Objects {
		if strings.HasPrefix(o.Text, prefix) {
			return o, true
		}
	}
	return anim.Object{}, false
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"deque", "dfs", "disjointset", "miraclesort", "treemap", "uniquepaths"}, algo.Names())
}

func TestNew_Unknown(t *testing.T) {
	_, err := algo.New("bogosort", anim.NewController())
	assert.ErrorIs(t, err, algo.ErrUnknownAlgorithm)
}

func TestPseudocode(t *testing.T) {
	for _, name := range algo.Names() {
		methods := algo.Pseudocode(name)
		require.NotEmpty(t, methods, name)
		for _, m := range methods {
			assert.NotEmpty(t, m.Name)
			assert.Len(t, m.Code, len(m.English), "%s.%s", name, m.Name)
		}
	}
	got := algo.Pseudocode("dfs", "iterative")
	require.Len(t, got, 1)
	assert.Equal(t, "iterative", got[0].Name)
	assert.Nil(t, algo.Pseudocode("nothing"))
}

func TestUnknownAction(t *testing.T) {
	for _, name := range algo.Names() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, name)
			assert.ErrorIs(t, h.alg.Run("explode"), algo.ErrUnknownAction)
			assert.NotEmpty(t, h.alg.Actions())
			assert.NotEmpty(t, h.alg.Title())
			assert.NotEmpty(t, h.alg.Methods())
		})
	}
}

func TestDFS(t *testing.T) {
	h := newHarness(t, "dfs")
	h.run("run", "A")

	visited := 0
	for _, o := range h.snapshot().Objects {
		if o.Variant == anim.VariantCircle && o.Background == "#99CCFF" {
			visited++
		}
	}
	assert.Equal(t, 8, visited)

	h.run("clear")
	_, ok := findText(h.snapshot(), "DFS(")
	assert.False(t, ok)

	require.NoError(t, h.alg.Run("mode", "stack"))
	assert.Equal(t, 0, h.ctrl.TotalSteps())
	assert.Equal(t, "iterative", h.alg.Methods()[0].Name)
	h.run("run", "h")
	_, ok = findText(h.snapshot(), "Stack is empty, done")
	assert.True(t, ok)
}

func TestDFS_InvalidVertex(t *testing.T) {
	h := newHarness(t, "dfs")
	err := h.alg.Run("run", "Z")
	assert.ErrorIs(t, err, algo.ErrInvalidInput)

	require.NoError(t, h.ctrl.SkipToEnd())
	_, ok := findText(h.snapshot(), "Z is not a vertex")
	assert.True(t, ok)
	assert.ErrorIs(t, h.alg.Run("mode", "sideways"), algo.ErrInvalidInput)
}

func TestDisjointSet(t *testing.T) {
	h := newHarness(t, "disjointset")
	h.run("union", "1", "2")
	h.run("union", "3", "4")
	h.run("union", "2", "4")
	assert.Len(t, h.snapshot().Edges, 3)

	h.run("compression", "on")
	h.run("find", "1")
	assert.Len(t, h.snapshot().Edges, 3)

	h.run("rank", "on")
	h.run("ranktype", "height")
	h.run("union", "5", "1")
	assert.Len(t, h.snapshot().Edges, 4)

	h.run("union", "1", "4")
	_, ok := findText(h.snapshot(), "Already in the same set")
	assert.True(t, ok)

	h.run("clear")
	assert.Empty(t, h.snapshot().Edges)
}

func TestDisjointSet_InvalidInput(t *testing.T) {
	h := newHarness(t, "disjointset")
	assert.ErrorIs(t, h.alg.Run("union", "1", "16"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("find", "x"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("rank", "maybe"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("ranktype", "weight"), algo.ErrInvalidInput)
}

func TestDeque(t *testing.T) {
	h := newHarness(t, "deque")
	d := h.alg.(*algo.Deque)

	h.run("addLast", "1")
	h.run("addLast", "2")
	h.run("addFirst", "0")
	assert.Equal(t, []string{"0", "1", "2"}, d.Values())

	// head + tail + 2 next + 2 prev
	assert.Len(t, h.snapshot().Edges, 6)

	h.run("removeFirst")
	h.run("removeLast")
	assert.Equal(t, []string{"1"}, d.Values())
	removed, ok := findText(h.snapshot(), "2")
	require.True(t, ok)
	assert.Equal(t, anim.VariantLabel, removed.Variant)

	h.run("removeLast")
	assert.Empty(t, d.Values())
	assert.Empty(t, h.snapshot().Edges)
	nulls := 0
	for _, o := range h.snapshot().Objects {
		if o.Variant == anim.VariantRectangle && o.Null {
			nulls++
		}
	}
	assert.Equal(t, 2, nulls)
}

func TestDeque_InvalidInput(t *testing.T) {
	h := newHarness(t, "deque")
	assert.ErrorIs(t, h.alg.Run("removeFirst"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("addFirst", "12345"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("addLast"), algo.ErrInvalidInput)

	h.run("addFirst", "a")
	h.run("addFirst", "b")
	h.run("clear")
	assert.Empty(t, h.alg.(*algo.Deque).Values())
}

func TestDeque_FailedActionKeepsValues(t *testing.T) {
	h := newHarness(t, "deque")
	d := h.alg.(*algo.Deque)
	h.run("addLast", "1")
	h.run("addLast", "2")

	node, ok := findText(h.snapshot(), "1")
	require.True(t, ok)
	require.Equal(t, anim.VariantLinkedListNode, node.Variant)
	require.NoError(t, h.ctrl.Animate(func(r *anim.Recorder) { r.Delete(node.ID) }))
	require.NoError(t, h.ctrl.SkipToEnd())
	before := h.snapshot()

	assert.ErrorIs(t, h.alg.Run("removeFirst"), anim.ErrUnknownID)
	assert.Equal(t, []string{"1", "2"}, d.Values())
	assert.True(t, before.Equal(h.snapshot()), before.Diff(h.snapshot()))
}

func TestUniquePaths(t *testing.T) {
	for _, mode := range []string{"recursion", "memoized", "dp"} {
		t.Run(mode, func(t *testing.T) {
			h := newHarness(t, "uniquepaths")
			h.run("run", "3", "3", mode)
			assert.Equal(t, mode, h.alg.Methods()[0].Name)
			_, ok := findText(h.snapshot(), "Total unique paths: 6")
			assert.True(t, ok)

			h.run("run", "1", "4")
			_, ok = findText(h.snapshot(), "Total unique paths: 1")
			assert.True(t, ok)

			h.run("clear")
			_, ok = findText(h.snapshot(), "START")
			assert.False(t, ok)
		})
	}
}

func TestUniquePaths_Bounds(t *testing.T) {
	h := newHarness(t, "uniquepaths")
	for _, args := range [][]string{{"0", "3"}, {"9", "3"}, {"3", "x"}, {"3"}, {"2", "2", "greedy"}} {
		assert.ErrorIs(t, h.alg.Run("run", args...), algo.ErrInvalidInput, args)
	}
	require.NoError(t, h.ctrl.SkipToEnd())
	_, ok := findText(h.snapshot(), "Unknown mode greedy")
	assert.True(t, ok)
}

func TestMiracleSort(t *testing.T) {
	h := newHarness(t, "miraclesort")
	ms := h.alg.(*algo.MiracleSort)

	h.run("sort", "3,1,3")
	assert.Equal(t, []int{3, 1, 3}, ms.Values())
	for _, label := range []string{"3a", "1", "3b"} {
		o, ok := findText(h.snapshot(), label)
		require.True(t, ok, label)
		assert.Equal(t, anim.VariantRectangle, o.Variant)
		assert.Equal(t, "#ADD8E6", o.Background)
	}
	_, ok := findText(h.snapshot(), "Waiting for a miracle")
	assert.True(t, ok)

	h.run("sort", "7", "8", "9")
	assert.Equal(t, []int{7, 8, 9}, ms.Values())
	_, ok = findText(h.snapshot(), "3a")
	assert.False(t, ok)
	_, ok = findText(h.snapshot(), "The array is already sorted")
	assert.True(t, ok)

	h.run("example", "reverse")
	assert.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, ms.Values())
	h.run("example", "random")
	assert.GreaterOrEqual(t, len(ms.Values()), 5)
	assert.LessOrEqual(t, len(ms.Values()), 13)

	h.run("clear")
	assert.Empty(t, ms.Values())
	for _, o := range h.snapshot().Objects {
		assert.NotEqual(t, anim.VariantRectangle, o.Variant)
	}
}

func TestMiracleSort_InvalidInput(t *testing.T) {
	h := newHarness(t, "miraclesort")
	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{" , "}, "Data must contain integers"},
		{[]string{"1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16"}, "you put 16"},
		{[]string{"1,x"}, "non-numeric values"},
		{[]string{"1000"}, "numbers > 999"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, h.alg.Run("sort", tt.args...), algo.ErrInvalidInput, tt.args)
		require.NoError(t, h.ctrl.SkipToEnd())
		found := false
		for _, o := range h.snapshot().Objects {
			found = found || strings.Contains(o.Text, tt.msg)
		}
		assert.True(t, found, tt.msg)
	}
	assert.ErrorIs(t, h.alg.Run("example", "shuffled"), algo.ErrInvalidInput)
	assert.Empty(t, h.alg.(*algo.MiracleSort).Values())
}

func TestTreeMap(t *testing.T) {
	h := newHarness(t, "treemap")
	tm := h.alg.(*algo.TreeMap)

	for _, k := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		h.run("put", k, "v"+k)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, tm.Keys())
	assert.Equal(t, 7, tm.Len())
	assert.Len(t, h.snapshot().Edges, 6)

	// ascending inserts rotate into a perfect tree rooted at 4
	root, ok := findText(h.snapshot(), "4:v4")
	require.True(t, ok)
	for _, o := range h.snapshot().Objects {
		if o.Variant == anim.VariantCircle {
			assert.GreaterOrEqual(t, o.Y, root.Y)
		}
	}

	h.run("put", "4", "new")
	_, ok = findText(h.snapshot(), "4:new")
	assert.True(t, ok)
	assert.Equal(t, 7, tm.Len())

	h.run("get", "6")
	_, ok = findText(h.snapshot(), "Found 6: value v6")
	assert.True(t, ok)
	h.run("get", "42")
	_, ok = findText(h.snapshot(), "42 not found")
	assert.True(t, ok)

	h.run("remove", "4")
	h.run("remove", "1")
	h.run("remove", "2")
	assert.Equal(t, []int{3, 5, 6, 7}, tm.Keys())
	assert.Len(t, h.snapshot().Edges, 3)

	h.run("remove", "99")
	assert.Equal(t, 4, tm.Len())

	h.run("clear")
	assert.Empty(t, tm.Keys())
	assert.Empty(t, h.snapshot().Edges)
	h.run("put", "10", "x")
	assert.Equal(t, []int{10}, tm.Keys())
}

func TestTreeMap_FailedActionKeepsKeys(t *testing.T) {
	h := newHarness(t, "treemap")
	tm := h.alg.(*algo.TreeMap)
	for _, k := range []string{"1", "2", "3"} {
		h.run("put", k, "v"+k)
	}

	leaf, ok := findText(h.snapshot(), "1:v1")
	require.True(t, ok)
	require.NoError(t, h.ctrl.Animate(func(r *anim.Recorder) { r.Delete(leaf.ID) }))
	require.NoError(t, h.ctrl.SkipToEnd())

	assert.ErrorIs(t, h.alg.Run("remove", "1"), anim.ErrUnknownID)
	assert.Equal(t, []int{1, 2, 3}, tm.Keys())
	assert.Equal(t, 3, tm.Len())
}

func TestTreeMap_InvalidInput(t *testing.T) {
	h := newHarness(t, "treemap")
	assert.ErrorIs(t, h.alg.Run("put", "abc", "v"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("put", "12345", "v"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("put", "1", "toolong"), algo.ErrInvalidInput)
	assert.ErrorIs(t, h.alg.Run("get"), algo.ErrInvalidInput)
}
