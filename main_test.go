package main

import (
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/anim"
)

func newTestModel(t *testing.T, name string) model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m, err := initialModel(config, slog.New(slog.DiscardHandler), name)
	require.NoError(t, err)
	m.width, m.height = 120, 40
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestInitialModel(t *testing.T) {
	m := newTestModel(t, "TreeMap")
	assert.Equal(t, "treemap", m.alg.Name())
	assert.Equal(t, "treemap", m.names[m.index])
	assert.Equal(t, 0, m.ctrl.TotalSteps())
	assert.NotEmpty(t, m.ctrl.SessionID())
	assert.NotEqual(t, m.ctrl.SessionID(), newTestModel(t, "dfs").ctrl.SessionID())

	config := defaultConfig()
	_, err := initialModel(config, slog.New(slog.DiscardHandler), "bogosort")
	assert.Error(t, err)
}

func TestModel_ActionAndTransport(t *testing.T) {
	m := newTestModel(t, "deque")

	m, _ = press(t, m, runes(":"))
	assert.Equal(t, ModeAction, m.mode)
	m, cmd := press(t, m, runes("addLast 5"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.errorMessage)
	require.NotNil(t, cmd)
	assert.True(t, m.playing)
	assert.Equal(t, []string{"addLast 5"}, m.history)

	total := m.ctrl.TotalSteps()
	require.Greater(t, total, 1)
	assert.Equal(t, 0, m.ctrl.CurrentStep())

	m, _ = press(t, m, runes("l"))
	assert.False(t, m.playing)
	assert.Equal(t, 1, m.ctrl.CurrentStep())

	m, _ = press(t, m, runes("L"))
	assert.Equal(t, total, m.ctrl.CurrentStep())
	m, _ = press(t, m, runes("l"))
	assert.Equal(t, total, m.ctrl.CurrentStep())
	assert.Equal(t, "At last step", m.successMessage)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, total-1, m.ctrl.CurrentStep())
	m, _ = press(t, m, runes("H"))
	assert.Equal(t, 0, m.ctrl.CurrentStep())
}

func TestModel_Autoplay(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes(":"), runes("addFirst 7"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.playing)

	stale := tickMsg{id: m.tickID - 1}
	m, cmd := press(t, m, stale)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.ctrl.CurrentStep())

	for m.playing {
		m, _ = press(t, m, tickMsg{id: m.tickID})
	}
	assert.Equal(t, m.ctrl.TotalSteps(), m.ctrl.CurrentStep())

	m, cmd = press(t, m, runes(" "))
	assert.Nil(t, cmd)
	assert.False(t, m.playing)

	m, _ = press(t, m, runes("H"), runes(" "))
	assert.True(t, m.playing)
	m, _ = press(t, m, runes(" "))
	assert.False(t, m.playing)
}

func TestModel_InvalidAction(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes(":"), runes("removeFirst"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.errorMessage, "The deque is empty")

	m, _ = press(t, m, runes(":"), runes("explode"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.errorMessage, "explode")
	assert.False(t, m.playing)
}

func TestModel_InputEditing(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes(":"), runes("addLat"), tea.KeyMsg{Type: tea.KeyLeft}, runes("s"))
	assert.Equal(t, "addLast", m.input)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeySpace}, runes("9"))
	assert.Equal(t, "addLast 9", m.input)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "addLast ", m.input)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, m.ctrl.TotalSteps())
}

func TestModel_Jump(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes(":"), runes("addLast 1"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Greater(t, m.ctrl.TotalSteps(), 2)

	m, _ = press(t, m, runes("g"), runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.ctrl.CurrentStep())
	assert.Empty(t, m.errorMessage)

	m, _ = press(t, m, runes("g"), runes("999"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.ctrl.CurrentStep())
	assert.Contains(t, m.errorMessage, "Invalid step")
}

func TestModel_ClearHistory(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes(":"), runes("addLast 1"), tea.KeyMsg{Type: tea.KeyEnter}, runes("L"))
	end := m.ctrl.Snapshot()

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, ModeConfirm, m.mode)
	m, _ = press(t, m, runes("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.NotZero(t, m.ctrl.TotalSteps())

	m, _ = press(t, m, runes("c"), runes("y"))
	assert.Equal(t, 0, m.ctrl.TotalSteps())
	assert.Equal(t, 0, m.ctrl.CurrentStep())
	assert.True(t, end.Equal(m.ctrl.Snapshot()))
}

func TestModel_ResetAndSwitch(t *testing.T) {
	m := newTestModel(t, "deque")
	initial := m.ctrl.Snapshot()
	m, _ = press(t, m, runes(":"), runes("addLast 1"), tea.KeyMsg{Type: tea.KeyEnter}, runes("L"))

	m, _ = press(t, m, runes("R"), runes("y"))
	assert.Equal(t, 0, m.ctrl.TotalSteps())
	assert.Len(t, m.ctrl.Snapshot().Objects, len(initial.Objects))
	assert.Len(t, m.ctrl.Snapshot().Edges, len(initial.Edges))
	assert.Equal(t, "Reset "+m.alg.Title(), m.successMessage)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "dfs", m.alg.Name())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "deque", m.alg.Name())
}

func TestModel_Layers(t *testing.T) {
	m := newTestModel(t, "dfs")
	assert.True(t, m.ctrl.Layers().IsVisible(anim.LayerEnglish))
	assert.False(t, m.ctrl.Layers().IsVisible(anim.LayerCode))

	m, _ = press(t, m, runes("e"), runes("p"), runes("a"))
	assert.False(t, m.ctrl.Layers().IsVisible(anim.LayerEnglish))
	assert.True(t, m.ctrl.Layers().IsVisible(anim.LayerCode))
	assert.False(t, m.ctrl.Layers().IsVisible(anim.LayerAnnotation))
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "dfs")
	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m, _ = press(t, m, runes(":"), runes("run A"), tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = press(t, m, runes("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)
	_, cmd = press(t, m, runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "dfs")
	view := m.View()
	assert.Contains(t, view, m.alg.Title())
	assert.Contains(t, view, "Step 0/0")
	assert.Contains(t, view, "Mode: PAUSED")

	m, _ = press(t, m, runes("?"))
	assert.True(t, strings.HasPrefix(m.View(), "algoviz Help"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.help)

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.NotEmpty(t, m.View())
}

func TestModel_SaveFrame(t *testing.T) {
	m := newTestModel(t, "deque")
	m, _ = press(t, m, runes("t"))
	require.Empty(t, m.errorMessage)
	assert.Contains(t, m.successMessage, m.config.SaveDirectory)

	m, _ = press(t, m, runes("s"))
	require.Empty(t, m.errorMessage)
	assert.True(t, strings.HasSuffix(m.successMessage, ".png"))
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "put 1 a", cleanClipboardText("put\t1\r\n a\n"))
	assert.Equal(t, "", cleanClipboardText(""))
}
