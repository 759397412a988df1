// Package algo holds the animated algorithm modules. Each module records its
// actions through an anim.Controller and never touches the store directly.
package algo

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"algoviz/internal/anim"
)

var (
	// ErrInvalidInput is returned for user input a module rejects. The
	// module has already recorded an explanation on its info label.
	ErrInvalidInput     = errors.New("algo: invalid input")
	ErrUnknownAction    = errors.New("algo: unknown action")
	ErrUnknownAlgorithm = errors.New("algo: unknown algorithm")
)

// Action describes one command a module accepts.
type Action struct {
	Name  string
	Usage string
	Help  string
}

// Algorithm is an animated module driven by the player or the exporter.
type Algorithm interface {
	Name() string
	Title() string
	// Setup draws the initial scene. It is not rewindable.
	Setup() error
	Actions() []Action
	// Run records one action as a new animation segment.
	Run(action string, args ...string) error
	// Methods returns the pseudocode currently relevant to the module.
	Methods() []Method
}

// Factory builds a module bound to a controller.
type Factory func(c *anim.Controller) Algorithm

var factories = map[string]Factory{
	"dfs":         NewDFS,
	"disjointset": NewDisjointSet,
	"deque":       NewDeque,
	"miraclesort": NewMiracleSort,
	"uniquepaths": NewUniquePaths,
	"treemap":     NewTreeMap,
}

// Names lists the registered modules in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named module. The caller runs Setup.
func New(name string, c *anim.Controller) (Algorithm, error) {
	f, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return f(c), nil
}

// Method is the pseudocode of one procedure in plain English and in code.
type Method struct {
	Name    string   `yaml:"method"`
	English []string `yaml:"english"`
	Code    []string `yaml:"code"`
}

//go:embed pseudocode.yaml
var pseudocodeYAML []byte

var catalogue = sync.OnceValues(func() (map[string][]Method, error) {
	var out map[string][]Method
	if err := yaml.Unmarshal(pseudocodeYAML, &out); err != nil {
		return nil, fmt.Errorf("parse pseudocode: %w", err)
	}
	return out, nil
})

// Pseudocode returns the named methods of a module's pseudocode, or all of
// them when no method is named.
func Pseudocode(module string, methods ...string) []Method {
	all, err := catalogue()
	if err != nil {
		return nil
	}
	if len(methods) == 0 {
		return all[module]
	}
	var out []Method
	for _, m := range all[module] {
		for _, want := range methods {
			if m.Name == want {
				out = append(out, m)
			}
		}
	}
	return out
}

// module carries what every algorithm shares: the controller and the info
// label used for explanations.
type module struct {
	ctrl *anim.Controller
	info anim.ObjectID
}

// setup records fn and folds it into the base state so it cannot be
// rewound.
func (m *module) setup(fn func(r *anim.Recorder)) error {
	if err := m.ctrl.Animate(fn); err != nil {
		return err
	}
	if err := m.ctrl.SkipToEnd(); err != nil {
		return err
	}
	return m.ctrl.ClearHistory()
}

func (m *module) animate(fn func(r *anim.Recorder)) error {
	return m.ctrl.Animate(fn)
}

// animateState is animate for actions that update module bookkeeping while
// recording. When the segment is rolled back, restore puts that bookkeeping
// back so it keeps matching the store.
func (m *module) animateState(restore func(), fn func(r *anim.Recorder)) error {
	if err := m.ctrl.Animate(fn); err != nil {
		restore()
		return err
	}
	return nil
}

// reject records an explanation on the info label and reports the input as
// invalid.
func (m *module) reject(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err := m.animate(func(r *anim.Recorder) { r.SetText(m.info, msg) }); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func (m *module) createInfo(r *anim.Recorder, x, y float64) {
	m.info = r.NextID()
	r.CreateLabel(m.info, "", x, y, false)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func unknownAction(module, action string) error {
	return fmt.Errorf("%w: %s has no action %q", ErrUnknownAction, module, action)
}

func onOff(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, true
	case "off", "false", "0", "no":
		return false, true
	}
	return false, false
}
