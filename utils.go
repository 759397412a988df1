package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// frameText renders the visible frame the way the player shows it, without
// the pseudocode panel.
func (m *model) frameText() string {
	width, height := m.width, m.height-2
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	return renderFrame(m.ctrl.VisibleSnapshot(), width, height)
}

func (m *model) copyFrame() {
	if err := clipboard.WriteAll(m.frameText()); err != nil {
		m.setError(err)
		return
	}
	m.successMessage = "Frame copied to clipboard"
}

// pasteInput inserts the clipboard contents at the prompt cursor.
func (m *model) pasteInput() {
	text, err := readClipboardText()
	if err != nil {
		m.setError(err)
		return
	}
	text = cleanClipboardText(text)
	runes := []rune(m.input)
	pasted := []rune(text)
	out := make([]rune, 0, len(runes)+len(pasted))
	out = append(out, runes[:m.inputCursor]...)
	out = append(out, pasted...)
	out = append(out, runes[m.inputCursor:]...)
	m.input = string(out)
	m.inputCursor += len(pasted)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText flattens pasted text to one line of printable runes.
func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(' ')
		case r >= 32:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
