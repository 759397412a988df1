package algo

import (
	"fmt"
	"strconv"
	"strings"

	"algoviz/internal/anim"
)

const (
	pathsMaxGrid = 8

	pathsCellSize = 50
	pathsGridX    = 50
	pathsGridY    = 80

	pathsStackX       = 550
	pathsStackY       = 80
	pathsStackWidth   = 100
	pathsStackHeight  = 30
	pathsStackSpacing = 40

	pathsCallsX = 550
	pathsCallsY = 40

	pathsCurrentColor  = "#FFD700"
	pathsVisitedColor  = "#87CEEB"
	pathsBaseColor     = "#98FB98"
	pathsGoalColor     = "#FFB6C1"
	pathsStartColor    = "#FF6347"
	pathsCacheHitColor = "#DDA0DD"
	pathsOutColor      = "#FFB6B6"
)

var pathsModes = []string{"recursion", "memoized", "dp"}

// UniquePaths counts monotone lattice paths through an m by n grid by plain
// recursion, memoized recursion or a bottom-up table.
type UniquePaths struct {
	module
	mode string

	m, n   int
	grid   [][]anim.ObjectID
	values [][]int
	memo   map[[2]int]int
	depth  int
	calls  int

	callsLabel anim.ObjectID
	temp       []anim.ObjectID
}

func NewUniquePaths(c *anim.Controller) Algorithm {
	return &UniquePaths{module: module{ctrl: c}, mode: "recursion"}
}

func (u *UniquePaths) Name() string  { return "uniquepaths" }
func (u *UniquePaths) Title() string { return "Unique Paths" }

func (u *UniquePaths) Actions() []Action {
	return []Action{
		{Name: "run", Usage: "run <m> <n> [recursion|memoized|dp]", Help: fmt.Sprintf("count paths through an m by n grid (1-%d)", pathsMaxGrid)},
		{Name: "clear", Usage: "clear", Help: "remove the grid"},
	}
}

func (u *UniquePaths) Methods() []Method {
	return Pseudocode("uniquepaths", u.mode)
}

func (u *UniquePaths) Setup() error {
	u.grid, u.values, u.temp = nil, nil, nil
	return u.setup(func(r *anim.Recorder) {
		u.createInfo(r, infoX, infoY)
		u.callsLabel = r.NextID()
		r.CreateLabel(u.callsLabel, "", pathsCallsX, pathsCallsY, false)
	})
}

func (u *UniquePaths) Run(action string, args ...string) error {
	switch action {
	case "run":
		if len(args) < 2 || len(args) > 3 {
			return u.reject("Enter the rows and columns of the grid")
		}
		m, errM := parseInt(args[0])
		n, errN := parseInt(args[1])
		if errM != nil || errN != nil || m < 1 || n < 1 || m > pathsMaxGrid || n > pathsMaxGrid {
			return u.reject("Grid dimensions must be between 1 and %d", pathsMaxGrid)
		}
		if len(args) == 3 {
			mode := strings.ToLower(args[2])
			known := false
			for _, k := range pathsModes {
				known = known || k == mode
			}
			if !known {
				return u.reject("Unknown mode %s", args[2])
			}
			u.mode = mode
		}
		return u.animate(func(r *anim.Recorder) { u.run(r, m, n) })

	case "clear":
		return u.animate(u.clear)
	}
	return unknownAction(u.Name(), action)
}

func (u *UniquePaths) clear(r *anim.Recorder) {
	for _, id := range u.temp {
		r.Delete(id)
	}
	u.temp, u.grid, u.values = nil, nil, nil
	r.SetText(u.info, "")
	r.SetText(u.callsLabel, "")
}

func (u *UniquePaths) track(id anim.ObjectID) anim.ObjectID {
	u.temp = append(u.temp, id)
	return id
}

func (u *UniquePaths) run(r *anim.Recorder, m, n int) {
	u.clear(r)
	u.buildGrid(r, m, n)

	var result int
	switch u.mode {
	case "memoized":
		r.SetText(u.info, "Starting memoized solution...")
		r.Step()
		u.memo = make(map[[2]int]int)
		result = u.memoized(r, 0, 0)
	case "dp":
		r.SetText(u.info, "Starting bottom-up DP solution...")
		r.Step()
		result = u.table(r)
	default:
		r.SetText(u.info, "Starting pure recursive solution...")
		r.Step()
		result = u.recursive(r, 0, 0)
	}

	r.SetText(u.info, fmt.Sprintf("Total unique paths: %d", result))
	r.SetText(u.grid[0][0], strconv.Itoa(result))
	r.SetBackground(u.grid[0][0], pathsStartColor)
	r.Step()
}

func (u *UniquePaths) buildGrid(r *anim.Recorder, m, n int) {
	u.m, u.n = m, n
	u.depth, u.calls = 0, 0
	u.grid = make([][]anim.ObjectID, m)
	u.values = make([][]int, m)
	for i := range m {
		u.grid[i] = make([]anim.ObjectID, n)
		u.values[i] = make([]int, n)
		for j := range n {
			u.grid[i][j] = u.track(r.NextID())
			x, y := u.cell(i, j)
			r.CreateRectangle(u.grid[i][j], "", pathsCellSize, pathsCellSize, x, y)
		}
	}
	r.SetBackground(u.grid[0][0], pathsStartColor)
	r.SetBackground(u.grid[m-1][n-1], pathsGoalColor)

	x, y := u.cell(0, 0)
	r.CreateLabel(u.track(r.NextID()), "START", x, y-pathsCellSize/2-10, true)
	x, y = u.cell(m-1, n-1)
	r.CreateLabel(u.track(r.NextID()), "END", x, y-pathsCellSize/2-10, true)
	r.Step()
}

func (u *UniquePaths) cell(i, j int) (float64, float64) {
	return float64(pathsGridX + j*pathsCellSize), float64(pathsGridY + i*pathsCellSize)
}

func (u *UniquePaths) inBounds(i, j int) bool {
	return i < u.m && j < u.n
}

// push shows a new frame on the call stack panel.
func (u *UniquePaths) push(r *anim.Recorder, i, j int) anim.ObjectID {
	u.calls++
	r.SetText(u.callsLabel, fmt.Sprintf("Calls: %d", u.calls))
	id := r.NextID()
	r.CreateRectangle(id, fmt.Sprintf("(%d,%d)", i, j), pathsStackWidth, pathsStackHeight,
		pathsStackX, float64(pathsStackY+u.depth*pathsStackSpacing))
	r.SetBackground(id, pathsCurrentColor)
	return id
}

func (u *UniquePaths) recursive(r *anim.Recorder, i, j int) int {
	const method = "recursion"

	frame := u.push(r, i, j)
	in := u.inBounds(i, j)
	if in {
		r.SetHighlight(u.grid[i][j], true)
		r.SetBackground(u.grid[i][j], pathsCurrentColor)
	}
	r.SetText(u.info, fmt.Sprintf("Recursive call: paths(%d, %d)", i, j))
	r.Highlight(method, 0)
	r.Step()
	r.Unhighlight(method, 0)

	var result int
	switch {
	case i == u.m-1 && j == u.n-1:
		r.Highlight(method, 1)
		r.SetText(u.info, fmt.Sprintf("Base case: reached the goal (%d, %d) = 1", i, j))
		r.SetBackground(u.grid[i][j], pathsBaseColor)
		r.SetText(frame, fmt.Sprintf("(%d,%d): 1", i, j))
		r.SetBackground(frame, pathsBaseColor)
		r.Step()
		r.Unhighlight(method, 1)
		result = 1

	case !in:
		r.Highlight(method, 2)
		r.SetText(u.info, fmt.Sprintf("Base case: out of bounds (%d, %d) = 0", i, j))
		r.SetText(frame, fmt.Sprintf("(%d,%d): 0", i, j))
		r.SetBackground(frame, pathsOutColor)
		r.Step()
		r.Unhighlight(method, 2)

	default:
		r.Highlight(method, 3)
		r.SetText(u.info, fmt.Sprintf("Exploring paths from (%d, %d)", i, j))
		r.Step()
		r.Unhighlight(method, 3)

		u.depth++
		down := u.recursive(r, i+1, j)
		right := u.recursive(r, i, j+1)
		u.depth--
		result = down + right

		r.Highlight(method, 3)
		u.solved(r, frame, i, j, down, right)
		r.Step()
		r.Unhighlight(method, 3)
	}

	if in {
		r.SetHighlight(u.grid[i][j], false)
	}
	r.Delete(frame)
	return result
}

func (u *UniquePaths) memoized(r *anim.Recorder, i, j int) int {
	const method = "memoized"

	if v, ok := u.memo[[2]int{i, j}]; ok {
		r.Highlight(method, 3)
		r.SetHighlight(u.grid[i][j], true)
		r.SetBackground(u.grid[i][j], pathsCacheHitColor)
		r.SetText(u.info, fmt.Sprintf("Cache hit: (%d, %d) = %d", i, j, v))
		r.Step()
		r.SetHighlight(u.grid[i][j], false)
		r.Unhighlight(method, 3)
		return v
	}

	frame := u.push(r, i, j)
	in := u.inBounds(i, j)
	if in {
		r.SetHighlight(u.grid[i][j], true)
		r.SetBackground(u.grid[i][j], pathsCurrentColor)
	}
	r.SetText(u.info, fmt.Sprintf("Computing: paths(%d, %d)", i, j))
	r.Highlight(method, 0)
	r.Step()
	r.Unhighlight(method, 0)

	var result int
	switch {
	case i == u.m-1 && j == u.n-1:
		r.Highlight(method, 1)
		r.SetText(u.info, fmt.Sprintf("Base case: reached the goal (%d, %d) = 1", i, j))
		r.SetBackground(u.grid[i][j], pathsBaseColor)
		r.SetText(frame, fmt.Sprintf("(%d,%d): 1", i, j))
		r.SetBackground(frame, pathsBaseColor)
		r.Step()
		r.Unhighlight(method, 1)
		result = 1

	case !in:
		r.Highlight(method, 2)
		r.SetText(u.info, fmt.Sprintf("Base case: out of bounds (%d, %d) = 0", i, j))
		r.SetText(frame, fmt.Sprintf("(%d,%d): 0", i, j))
		r.SetBackground(frame, pathsOutColor)
		r.Step()
		r.Unhighlight(method, 2)
		r.Delete(frame)
		return 0

	default:
		u.depth++
		down := u.memoized(r, i+1, j)
		right := u.memoized(r, i, j+1)
		u.depth--
		result = down + right

		r.Highlight(method, 4)
		u.solved(r, frame, i, j, down, right)
		r.Step()
		r.Unhighlight(method, 4)
	}

	u.memo[[2]int{i, j}] = result
	r.SetHighlight(u.grid[i][j], false)
	r.Delete(frame)
	return result
}

func (u *UniquePaths) solved(r *anim.Recorder, frame anim.ObjectID, i, j, down, right int) {
	total := down + right
	u.values[i][j] = total
	r.SetText(u.info, fmt.Sprintf("(%d, %d): %d + %d = %d", i, j, down, right, total))
	r.SetText(frame, fmt.Sprintf("(%d,%d): %d", i, j, total))
	r.SetBackground(frame, pathsVisitedColor)
	r.SetText(u.grid[i][j], strconv.Itoa(total))
	r.SetBackground(u.grid[i][j], pathsVisitedColor)
}

// table fills the grid from the goal back to the start.
func (u *UniquePaths) table(r *anim.Recorder) int {
	const method = "dp"

	r.Highlight(method, 1)
	for i := range u.m {
		u.values[i][u.n-1] = 1
		r.SetText(u.grid[i][u.n-1], "1")
		r.SetBackground(u.grid[i][u.n-1], pathsBaseColor)
	}
	for j := range u.n {
		u.values[u.m-1][j] = 1
		r.SetText(u.grid[u.m-1][j], "1")
		r.SetBackground(u.grid[u.m-1][j], pathsBaseColor)
	}
	r.SetText(u.info, "The last row and column have one path each")
	r.Step()
	r.Unhighlight(method, 1)

	r.Highlight(method, 2)
	for i := u.m - 2; i >= 0; i-- {
		for j := u.n - 2; j >= 0; j-- {
			r.SetHighlight(u.grid[i][j], true)
			r.SetBackground(u.grid[i][j], pathsCurrentColor)
			r.Highlight(method, 3)
			down, right := u.values[i+1][j], u.values[i][j+1]
			u.values[i][j] = down + right
			r.SetText(u.info, fmt.Sprintf("(%d, %d): %d + %d = %d", i, j, down, right, down+right))
			r.SetText(u.grid[i][j], strconv.Itoa(down+right))
			r.SetBackground(u.grid[i][j], pathsVisitedColor)
			r.Step()
			r.Unhighlight(method, 3)
			r.SetHighlight(u.grid[i][j], false)
		}
	}
	r.Unhighlight(method, 2)

	r.Highlight(method, 4)
	r.SetBackground(u.grid[u.m-1][u.n-1], pathsGoalColor)
	r.Step()
	r.Unhighlight(method, 4)
	return u.values[0][0]
}
