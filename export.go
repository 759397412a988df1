package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"algoviz/internal/algo"
	"algoviz/internal/anim"
	"algoviz/internal/render"
)

func (f ExportFormat) ext() string {
	if f == ExportTXT {
		return "txt"
	}
	return "png"
}

func parseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return ExportPNG, nil
	case "txt", "text":
		return ExportTXT, nil
	}
	return ExportPNG, fmt.Errorf("unknown format %q (want png or txt)", s)
}

func renderFrame(snap anim.Snapshot, width, height int) string {
	return strings.Join(render.Text(snap, width, height), "\n") + "\n"
}

func writeFrame(filename string, format ExportFormat, snap anim.Snapshot, width, height int) error {
	if format == ExportPNG {
		return render.SavePNG(filename, snap)
	}
	return os.WriteFile(filename, []byte(renderFrame(snap, width, height)), 0644)
}

// saveFrame writes the visible frame to the save directory.
func (m *model) saveFrame(format ExportFormat) {
	name := fmt.Sprintf("%s_%s_step%03d.%s", m.alg.Name(), time.Now().Format("20060102_150405"),
		m.ctrl.CurrentStep(), format.ext())
	filename := m.config.GetSavePath(name)

	width, height := m.width, m.height-2
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	if err := writeFrame(filename, format, m.ctrl.VisibleSnapshot(), width, height); err != nil {
		m.setError(fmt.Errorf("save frame: %w", err))
		return
	}
	m.logger.Info("frame saved", "file", filename, "step", m.ctrl.CurrentStep())
	m.successMessage = "Saved " + filename
}

// exportSteps records actions on a fresh module and writes one frame per
// step boundary, the initial frame included. It returns the files written.
func exportSteps(ctrl *anim.Controller, alg algo.Algorithm, actions [][]string, dir string, format ExportFormat, width, height int) ([]string, error) {
	if err := alg.Setup(); err != nil {
		return nil, fmt.Errorf("setup %s: %w", alg.Name(), err)
	}
	for _, action := range actions {
		if len(action) == 0 {
			continue
		}
		if err := alg.Run(action[0], action[1:]...); err != nil && !errors.Is(err, algo.ErrInvalidInput) {
			return nil, fmt.Errorf("run %s: %w", strings.Join(action, " "), err)
		}
	}
	if err := ctrl.SkipToStart(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var files []string
	for {
		filename := filepath.Join(dir, fmt.Sprintf("%s_%03d.%s", alg.Name(), ctrl.CurrentStep(), format.ext()))
		if err := writeFrame(filename, format, ctrl.VisibleSnapshot(), width, height); err != nil {
			return files, fmt.Errorf("write %s: %w", filename, err)
		}
		files = append(files, filename)
		if ctrl.CurrentStep() >= ctrl.TotalSteps() {
			return files, nil
		}
		if err := ctrl.StepForward(); err != nil {
			return files, err
		}
	}
}
