package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/algo"
)

func TestSplitActions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want [][]string
	}{
		{"single spread", []string{"run", "A"}, [][]string{{"run", "A"}}},
		{"quoted", []string{"put 1 a", "put 2 b"}, [][]string{{"put", "1", "a"}, {"put", "2", "b"}}},
		{"separator", []string{"union", "1", "2", ";", "find", "1"}, [][]string{{"union", "1", "2"}, {"find", "1"}}},
		{"mixed", []string{"clear", "put 3 c"}, [][]string{{"clear"}, {"put", "3", "c"}}},
		{"empty", []string{";"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitActions(tt.args))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, ExportPNG, f)
	f, err = parseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, ExportTXT, f)
	_, err = parseFormat("gif")
	assert.Error(t, err)
}

func TestExportSteps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	ctrl := newController(defaultConfig(), slog.New(slog.DiscardHandler))
	alg, err := algo.New("deque", ctrl)
	require.NoError(t, err)

	files, err := exportSteps(ctrl, alg, [][]string{{"addLast", "1"}, {"addFirst", "2"}}, dir, ExportTXT, 100, 30)
	require.NoError(t, err)
	assert.Len(t, files, ctrl.TotalSteps()+1)
	assert.Equal(t, ctrl.TotalSteps(), ctrl.CurrentStep())
	assert.Equal(t, filepath.Join(dir, "deque_000.txt"), files[0])

	last, err := os.ReadFile(files[len(files)-1])
	require.NoError(t, err)
	assert.Contains(t, string(last), "2")
	assert.LessOrEqual(t, strings.Count(string(last), "\n"), 30)
}

func TestExportSteps_InvalidInputIsRecorded(t *testing.T) {
	dir := t.TempDir()
	ctrl := newController(defaultConfig(), slog.New(slog.DiscardHandler))
	alg, err := algo.New("deque", ctrl)
	require.NoError(t, err)

	files, err := exportSteps(ctrl, alg, [][]string{{"removeFirst"}}, dir, ExportPNG, 100, 30)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	ctrl = newController(defaultConfig(), slog.New(slog.DiscardHandler))
	alg, err = algo.New("deque", ctrl)
	require.NoError(t, err)
	_, err = exportSteps(ctrl, alg, [][]string{{"explode"}}, dir, ExportTXT, 100, 30)
	assert.ErrorIs(t, err, algo.ErrUnknownAction)
}
