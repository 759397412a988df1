package main

import (
	"fmt"
	"strconv"
)

// clearHistory makes the current frame the new starting point. The steps
// after the cursor stay playable.
func (m *model) clearHistory() {
	dropped := m.ctrl.CurrentStep()
	if err := m.ctrl.ClearHistory(); err != nil {
		m.setError(err)
		return
	}
	m.successMessage = fmt.Sprintf("Cleared %d steps", dropped)
	m.logger.Info("history cleared", "algorithm", m.alg.Name(), "steps", dropped)
}

// resetModule discards all history and redraws the current algorithm from
// scratch.
func (m *model) resetModule() {
	m.stopPlaying()
	if err := m.loadAlgorithm(m.alg.Name()); err != nil {
		m.setError(err)
		return
	}
	m.successMessage = "Reset " + m.alg.Title()
}

func (m *model) jumpTo(input string) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 || n > m.ctrl.TotalSteps() {
		m.errorMessage = fmt.Sprintf("Invalid step %q (0-%d)", input, m.ctrl.TotalSteps())
		return
	}
	m.setError(m.ctrl.JumpToStep(n))
}
