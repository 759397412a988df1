package render_test

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/anim"
	"algoviz/internal/render"
)

func frame(t *testing.T, fn func(r *anim.Recorder)) anim.Snapshot {
	t.Helper()
	c := anim.NewController()
	require.NoError(t, c.Animate(fn))
	require.NoError(t, c.SkipToEnd())
	return c.Snapshot()
}

func TestText_Empty(t *testing.T) {
	assert.Nil(t, render.Text(anim.Snapshot{}, 0, 0))
}

func TestText_CirclesAndEdge(t *testing.T) {
	snap := frame(t, func(r *anim.Recorder) {
		r.CreateCircle(1, "A", 0, 0)
		r.CreateCircle(2, "B", 100, 0)
		r.Connect(1, 2)
	})

	out := strings.Join(render.Text(snap, 0, 0), "\n")
	assert.Contains(t, out, "(A)-")
	assert.Contains(t, out, "->(B)")
}

func TestText_HighlightAndNull(t *testing.T) {
	snap := frame(t, func(r *anim.Recorder) {
		r.CreateRectangle(1, "box", 80, 40, 0, 0)
		r.SetHighlight(1, true)
		r.CreateLinkedListNode(2, "7", 96, 40, 0, 100)
		r.SetNextNull(2, true)
		r.CreateLabel(3, "head", 0, 200, false)
	})

	lines := render.Text(snap, 0, 0)
	out := strings.Join(lines, "\n")
	assert.Contains(t, out, "###")
	assert.Contains(t, out, "box")
	assert.Contains(t, out, "/")
	assert.Contains(t, out, "head")
	assert.Contains(t, out, "+--")
}

func TestText_ClipsToSize(t *testing.T) {
	snap := frame(t, func(r *anim.Recorder) {
		r.CreateRectangle(1, "wide", 800, 400, 0, 0)
	})
	lines := render.Text(snap, 20, 5)
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 20)
	}
}

func TestText_SkipsTransparent(t *testing.T) {
	snap := frame(t, func(r *anim.Recorder) {
		r.CreateLabel(1, "shown", 0, 0, true)
		r.CreateLabel(2, "hidden", 0, 40, true)
		r.SetAlpha(2, 0)
	})
	out := strings.Join(render.Text(snap, 0, 0), "\n")
	assert.Contains(t, out, "shown")
	assert.NotContains(t, out, "hidden")
}

func TestPNG(t *testing.T) {
	snap := frame(t, func(r *anim.Recorder) {
		r.CreateCircle(1, "A", 0, 0)
		r.CreateCircle(2, "B", 100, 50)
		r.Connect(1, 2, anim.WithCurve(0.2), anim.WithEdgeLabel("w"))
		r.CreateHighlightCircle(3, "", 0, 0)
		r.CreateLinkedListNode(4, "n", 70, 30, 50, 120)
		r.SetPrevNull(4, true)
	})

	img, err := render.Image(snap)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 100)
	assert.Greater(t, img.Bounds().Dy(), 50)

	var buf bytes.Buffer
	require.NoError(t, render.WritePNG(&buf, snap))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, render.WritePNG(&buf, anim.Snapshot{}), render.ErrNothingToExport)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}, false},
		{"#00000080", color.NRGBA{A: 0x80}, false},
		{"", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := render.ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
