package main

// handleTransport moves the replay cursor. Shifted keys jump to either end.
func (m model) handleTransport(key string) model {
	var err error
	switch key {
	case "h", "left":
		m.stopPlaying()
		if m.atStart() {
			m.successMessage = "At first step"
			return m
		}
		err = m.ctrl.StepBackward()
	case "l", "right":
		m.stopPlaying()
		if m.atEnd() {
			m.successMessage = "At last step"
			return m
		}
		err = m.ctrl.StepForward()
	case "H", "shift+left", "home":
		m.stopPlaying()
		err = m.ctrl.SkipToStart()
	case "L", "shift+right", "end":
		m.stopPlaying()
		err = m.ctrl.SkipToEnd()
	default:
		return m
	}
	m.setError(err)
	return m
}

func (m *model) atStart() bool {
	return m.ctrl.CurrentStep() == 0
}

func (m *model) atEnd() bool {
	return m.ctrl.CurrentStep() >= m.ctrl.TotalSteps()
}
