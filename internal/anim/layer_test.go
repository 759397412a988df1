package anim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"algoviz/internal/anim"
)

func TestLayers_DefaultShowsOnlyLayerZero(t *testing.T) {
	l := anim.NewLayers()
	assert.True(t, l.IsVisible(anim.LayerDefault))
	assert.False(t, l.IsVisible(anim.LayerCode))
	assert.Equal(t, []int{0}, l.Visible())
}

func TestLayers_Filter(t *testing.T) {
	obj := func(id anim.ObjectID, layer int) anim.Object {
		a := anim.DefaultAttrs(anim.VariantLabel)
		a.Layer = layer
		return anim.Object{ID: id, Variant: anim.VariantLabel, Attrs: a}
	}
	snap := anim.Snapshot{
		Objects: []anim.Object{obj(1, 0), obj(2, anim.LayerEnglish), obj(3, 0)},
		Edges: []anim.Edge{
			{From: 1, To: 2},
			{From: 1, To: 3},
		},
		Lines: []anim.LineRef{{Method: "m", Line: 1}},
	}

	l := anim.NewLayers()
	got := l.Filter(snap)
	assert.Len(t, got.Objects, 2)
	assert.Equal(t, []anim.Edge{{From: 1, To: 3}}, got.Edges)
	assert.Equal(t, snap.Lines, got.Lines)

	l.SetVisible(anim.LayerEnglish, true)
	assert.Len(t, l.Filter(snap).Objects, 3)
	assert.Len(t, l.Filter(snap).Edges, 2)

	l.SetAll(anim.LayerEnglish)
	got = l.Filter(snap)
	assert.Len(t, got.Objects, 1)
	assert.Empty(t, got.Edges)
}
