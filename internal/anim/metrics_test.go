package anim

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountPlayback(t *testing.T) {
	created := testutil.ToFloat64(commandsRecorded.WithLabelValues(KindCreate.String()))
	forward := testutil.ToFloat64(stepsPlayed.WithLabelValues(directionForward))
	backward := testutil.ToFloat64(stepsPlayed.WithLabelValues(directionBackward))
	cleared := testutil.ToFloat64(historyCleared)

	c := NewController()
	require.NoError(t, c.Animate(func(r *Recorder) {
		r.CreateCircle(1, "a", 0, 0)
		r.Step()
		r.CreateCircle(2, "b", 0, 0)
	}))
	require.NoError(t, c.StepForward())
	require.NoError(t, c.StepForward())
	require.NoError(t, c.ClearHistory())

	assert.Equal(t, created+2, testutil.ToFloat64(commandsRecorded.WithLabelValues(KindCreate.String())))
	// two groups rewound by EndAnimation, two replayed
	assert.Equal(t, forward+2, testutil.ToFloat64(stepsPlayed.WithLabelValues(directionForward)))
	assert.Equal(t, backward+2, testutil.ToFloat64(stepsPlayed.WithLabelValues(directionBackward)))
	assert.Equal(t, cleared+2, testutil.ToFloat64(historyCleared))
}

func TestVerify_DetectsDivergence(t *testing.T) {
	before := testutil.ToFloat64(replayDivergence)

	c := NewController()
	require.NoError(t, c.Animate(func(r *Recorder) {
		r.CreateCircle(1, "a", 0, 0)
		r.Step()
		r.SetText(1, "b")
	}))
	require.NoError(t, c.SkipToEnd())
	require.NoError(t, c.Verify())

	// tamper with the live store behind the log's back
	require.NoError(t, c.store.Mutate(1, func(a *Attrs) { a.Text = "tampered" }))

	err := c.Verify()
	assert.ErrorIs(t, err, ErrReplayDivergence)
	assert.Contains(t, err.Error(), "object 1")
	assert.Equal(t, before+1, testutil.ToFloat64(replayDivergence))
}

func TestInvert_CapturesPriorState(t *testing.T) {
	s := NewStore(nil)
	b := NewBridge(nil)
	require.NoError(t, s.Create(1, VariantRectangle, DefaultAttrs(VariantRectangle)))

	undo, err := invert(Command{Kind: KindMove, Target: 1, Data: PointData{X: 5, Y: 6}}, s, b)
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: KindMove, Target: 1, Data: PointData{}}, undo)

	undo, err = invert(Command{Kind: KindSetHighlight, Target: 1, Data: HighlightData{On: true, Color: "#0000FF"}}, s, b)
	require.NoError(t, err)
	assert.Equal(t, HighlightData{On: false, Color: DefaultHighlight}, undo.Data)

	undo, err = invert(Command{Kind: KindHighlightLine, Target: NoObject, Data: LineData{Method: "m", Line: 2, On: true}}, s, b)
	require.NoError(t, err)
	assert.Equal(t, LineData{Method: "m", Line: 2, On: false}, undo.Data)

	_, err = invert(Command{Kind: Kind(99)}, s, b)
	assert.ErrorIs(t, err, ErrCorruptLog)
	assert.ErrorIs(t, apply(Command{Kind: Kind(99)}, s, b), ErrCorruptLog)
}
