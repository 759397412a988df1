package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"algoviz/internal/algo"
	"algoviz/internal/anim"
	"algoviz/internal/render"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#20B9B4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
	litStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0F1923")).Background(lipgloss.Color("#F4D03F"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

func newController(config *Config, logger *slog.Logger) *anim.Controller {
	return anim.NewController(
		anim.WithLogger(logger),
		anim.WithVerify(config.VerifyReplay),
		anim.WithVisibleLayers(config.Layers()...),
		anim.WithHighlightFunc(func(method string, line int, active bool) {
			logger.Debug("pseudocode line", "method", method, "line", line, "active", active)
		}),
	)
}

func initialModel(config *Config, logger *slog.Logger, name string) (model, error) {
	m := model{
		config:   config,
		ctrl:     newController(config, logger),
		names:    algo.Names(),
		interval: config.Interval(),
	}
	m.logger = logger.With("session_id", m.ctrl.SessionID())
	for i, n := range m.names {
		if n == strings.ToLower(name) {
			m.index = i
		}
	}
	if err := m.loadAlgorithm(name); err != nil {
		return m, err
	}
	return m, nil
}

func (m *model) loadAlgorithm(name string) error {
	if err := m.ctrl.ResetAll(); err != nil {
		return err
	}
	alg, err := algo.New(name, m.ctrl)
	if err != nil {
		return err
	}
	if err := alg.Setup(); err != nil {
		return fmt.Errorf("setup %s: %w", name, err)
	}
	m.alg = alg
	m.playing = false
	m.logger.Info("algorithm loaded", "algorithm", alg.Name())
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *model) startPlaying() tea.Cmd {
	if m.atEnd() {
		return nil
	}
	m.playing = true
	m.tickID++
	return m.tick()
}

func (m *model) stopPlaying() {
	m.playing = false
	m.tickID++
}

func (m *model) setError(err error) {
	m.successMessage = ""
	if err == nil {
		m.errorMessage = ""
		return
	}
	m.errorMessage = err.Error()
	if !errors.Is(err, algo.ErrInvalidInput) {
		m.logger.Error("player error", "error", err)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.playing || msg.id != m.tickID {
			return m, nil
		}
		if err := m.ctrl.StepForward(); err != nil {
			m.stopPlaying()
			m.setError(err)
			return m, nil
		}
		if m.ctrl.CurrentStep() >= m.ctrl.TotalSteps() {
			m.stopPlaying()
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		key := msg.String()
		if m.help {
			return m.handleHelpKey(key), nil
		}
		switch m.mode {
		case ModeAction, ModeJump:
			return m.handleInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(key)
		}
		return m.handleNormalKey(key)
	}
	return m, nil
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if len(m.history) == 0 {
			return m, tea.Quit
		}
		m.stopPlaying()
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil
	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case " ", "space":
		if m.playing {
			m.stopPlaying()
			return m, nil
		}
		return m, m.startPlaying()
	case ":":
		m.stopPlaying()
		m.mode = ModeAction
		m.input = ""
		m.inputCursor = 0
		return m, nil
	case "g":
		m.stopPlaying()
		m.mode = ModeJump
		m.input = ""
		m.inputCursor = 0
		return m, nil
	case "c":
		m.stopPlaying()
		m.mode = ModeConfirm
		m.confirmAction = ConfirmClearHistory
		return m, nil
	case "R":
		m.stopPlaying()
		m.mode = ModeConfirm
		m.confirmAction = ConfirmResetModule
		return m, nil
	case "tab", "shift+tab":
		m.stopPlaying()
		step := 1
		if key == "shift+tab" {
			step = len(m.names) - 1
		}
		m.index = (m.index + step) % len(m.names)
		m.setError(m.loadAlgorithm(m.names[m.index]))
		return m, nil
	case "e":
		m.toggleLayer(anim.LayerEnglish)
		return m, nil
	case "p":
		m.toggleLayer(anim.LayerCode)
		return m, nil
	case "a":
		m.toggleLayer(anim.LayerAnnotation)
		return m, nil
	case "y":
		m.copyFrame()
		return m, nil
	case "s":
		m.saveFrame(ExportPNG)
		return m, nil
	case "t":
		m.saveFrame(ExportTXT)
		return m, nil
	}
	return m.handleTransport(key), nil
}

func (m *model) toggleLayer(layer int) {
	m.ctrl.SetLayerVisible(layer, !m.ctrl.Layers().IsVisible(layer))
}

func (m model) handleHelpKey(key string) tea.Model {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines())-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input = ""
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.input)
		mode := m.mode
		m.mode = ModeNormal
		m.input = ""
		if input == "" {
			return m, nil
		}
		if mode == ModeJump {
			m.jumpTo(input)
			return m, nil
		}
		return m.runAction(input)
	case "ctrl+v":
		m.pasteInput()
		return m, nil
	case "backspace":
		if m.inputCursor > 0 {
			runes := []rune(m.input)
			m.input = string(append(runes[:m.inputCursor-1], runes[m.inputCursor:]...))
			m.inputCursor--
		}
		return m, nil
	case "left":
		if m.inputCursor > 0 {
			m.inputCursor--
		}
		return m, nil
	case "right":
		if m.inputCursor < len([]rune(m.input)) {
			m.inputCursor++
		}
		return m, nil
	case "up":
		if m.mode == ModeAction && len(m.history) > 0 {
			m.input = m.history[len(m.history)-1]
			m.inputCursor = len([]rune(m.input))
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		typed := msg.Runes
		if msg.Type == tea.KeySpace {
			typed = []rune{' '}
		}
		runes := []rune(m.input)
		out := make([]rune, 0, len(runes)+len(typed))
		out = append(out, runes[:m.inputCursor]...)
		out = append(out, typed...)
		out = append(out, runes[m.inputCursor:]...)
		m.input = string(out)
		m.inputCursor += len(typed)
	}
	return m, nil
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if key != "y" && key != "Y" && key != "enter" {
		return m, nil
	}
	switch m.confirmAction {
	case ConfirmClearHistory:
		m.clearHistory()
	case ConfirmResetModule:
		m.resetModule()
	case ConfirmQuit:
		return m, tea.Quit
	}
	return m, nil
}

// runAction records one action on the current module and starts playing it.
func (m model) runAction(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	m.history = append(m.history, input)
	m.logger.Info("running action", "algorithm", m.alg.Name(), "action", fields[0], "args", fields[1:])

	err := m.alg.Run(fields[0], fields[1:]...)
	m.setError(err)
	if err != nil && !errors.Is(err, algo.ErrInvalidInput) {
		return m, nil
	}
	return m, m.startPlaying()
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width, height := m.width, m.height
	if width < 1 {
		width = 80
	}
	if height < 3 {
		height = 24
	}
	bodyHeight := height - 2

	var panel string
	showPanel := m.showCode() || m.showEnglish()
	frameWidth := width
	if showPanel && width-codePanelWidth >= minFrameWidth {
		panel = m.codePanel(bodyHeight)
		frameWidth = width - lipgloss.Width(panel)
	}

	lines := render.Text(m.ctrl.VisibleSnapshot(), frameWidth, bodyHeight)
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	frame := lipgloss.NewStyle().Width(frameWidth).Render(strings.Join(lines, "\n"))

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.alg.Title()))
	result.WriteString("\n")
	if panel != "" {
		result.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, frame, panel))
	} else {
		result.WriteString(frame)
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) showEnglish() bool { return m.ctrl.Layers().IsVisible(anim.LayerEnglish) }
func (m model) showCode() bool    { return m.ctrl.Layers().IsVisible(anim.LayerCode) }

func (m model) codePanel(height int) string {
	snap := m.ctrl.Snapshot()
	inner := codePanelWidth - 4

	var b strings.Builder
	for i, method := range m.alg.Methods() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(method.Name))
		b.WriteString("\n")
		var text []string
		if m.showEnglish() {
			text = method.English
		}
		if m.showCode() {
			text = method.Code
			if m.showEnglish() {
				text = interleave(method.English, method.Code)
			}
		}
		for j, line := range text {
			n := j
			if m.showEnglish() && m.showCode() {
				n = j / 2
			}
			line = truncate(line, inner)
			if snap.Lit(method.Name, n) {
				line = litStyle.Render(line)
			} else if m.showEnglish() && m.showCode() && j%2 == 1 {
				line = mutedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return panelStyle.Width(codePanelWidth - 2).Height(max(height-2, 1)).Render(strings.TrimRight(b.String(), "\n"))
}

func interleave(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for i := range max(len(a), len(b)) {
		if i < len(a) {
			out = append(out, a[i])
		} else {
			out = append(out, "")
		}
		if i < len(b) {
			out = append(out, b[i])
		} else {
			out = append(out, "")
		}
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeAction:
		return "ACTION"
	case ModeJump:
		return "JUMP"
	case ModeConfirm:
		return "CONFIRM"
	}
	if m.playing {
		return "PLAYING"
	}
	return "PAUSED"
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeAction:
		usage := make([]string, 0, len(m.alg.Actions()))
		for _, a := range m.alg.Actions() {
			usage = append(usage, a.Usage)
		}
		return statusStyle.Render(fmt.Sprintf("Mode: ACTION | :%s | %s | Enter=run, Esc=cancel",
			withCursor(m.input, m.inputCursor), strings.Join(usage, ", ")))
	case ModeJump:
		return statusStyle.Render(fmt.Sprintf("Mode: JUMP | Step (0-%d): %s | Enter=jump, Esc=cancel",
			m.ctrl.TotalSteps(), withCursor(m.input, m.inputCursor)))
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClearHistory:
			message = "Forget every step before the current one? (y/n)"
		case ConfirmResetModule:
			message = fmt.Sprintf("Reset %s to its initial state? (y/n)", m.alg.Title())
		case ConfirmQuit:
			message = "Quit? (y/n)"
		}
		return statusStyle.Render("Mode: CONFIRM | " + message)
	}

	status := fmt.Sprintf("Mode: %s | %s | Step %d/%d | Layers %v",
		m.modeString(), m.alg.Name(), m.ctrl.CurrentStep(), m.ctrl.TotalSteps(), m.ctrl.VisibleLayers())
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		return statusStyle.Render(status+" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	if m.successMessage == "" {
		status += " | : action | ? for help | q to quit"
	}
	return statusStyle.Render(status)
}

func withCursor(s string, pos int) string {
	runes := []rune(s)
	if pos > len(runes) {
		pos = len(runes)
	}
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

func helpLines() []string {
	return []string{
		"algoviz Help",
		"============",
		"",
		"Playback:",
		"---------",
		"  l/→             Step forward",
		"  h/←             Step backward",
		"  L/End           Skip to the end",
		"  H/Home          Skip to the start",
		"  Space           Play / pause",
		"  g               Jump to a step",
		"",
		"Algorithm:",
		"----------",
		"  :               Run an action, e.g. ':run A' or ':addFirst 5'",
		"  Tab/Shift+Tab   Switch algorithm",
		"  R               Reset the algorithm",
		"  c               Clear history up to the current step",
		"",
		"Display:",
		"--------",
		"  e               Toggle English pseudocode",
		"  p               Toggle code pseudocode",
		"  a               Toggle annotations",
		"",
		"Export:",
		"-------",
		"  s               Save the current frame as PNG",
		"  t               Save the current frame as text",
		"  y               Copy the current frame to the clipboard",
		"",
		"  ?/Esc           Close help",
		"  q               Quit",
	}
}

func (m model) helpView() string {
	lines := helpLines()
	height := m.height
	if height < 1 {
		height = len(lines)
	}
	start := min(m.helpScroll, max(len(lines)-height, 0))
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}
