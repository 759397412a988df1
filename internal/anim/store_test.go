package anim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/anim"
)

func TestStore_CreateDuplicate(t *testing.T) {
	s := anim.NewStore(nil)
	require.NoError(t, s.Create(1, anim.VariantCircle, anim.DefaultAttrs(anim.VariantCircle)))

	err := s.Create(1, anim.VariantLabel, anim.DefaultAttrs(anim.VariantLabel))
	assert.ErrorIs(t, err, anim.ErrDuplicateID)

	obj, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, anim.VariantCircle, obj.Variant, "failed create must not replace the object")
}

func TestStore_MutateUnknown(t *testing.T) {
	s := anim.NewStore(nil)
	err := s.Mutate(7, func(a *anim.Attrs) { a.Text = "x" })
	assert.ErrorIs(t, err, anim.ErrUnknownID)
}

func TestStore_DeleteMissingIsNoop(t *testing.T) {
	s := anim.NewStore(nil)
	require.NoError(t, s.Create(1, anim.VariantRectangle, anim.DefaultAttrs(anim.VariantRectangle)))

	assert.Nil(t, s.Delete(42))
	assert.Equal(t, 1, s.Len())
}

func TestStore_SnapshotIsSortedCopy(t *testing.T) {
	s := anim.NewStore(nil)
	for _, id := range []anim.ObjectID{5, 2, 9} {
		require.NoError(t, s.Create(id, anim.VariantLabel, anim.DefaultAttrs(anim.VariantLabel)))
	}

	snap := s.Snapshot()
	require.Len(t, snap.Objects, 3)
	assert.Equal(t, anim.ObjectID(2), snap.Objects[0].ID)
	assert.Equal(t, anim.ObjectID(5), snap.Objects[1].ID)
	assert.Equal(t, anim.ObjectID(9), snap.Objects[2].ID)
	assert.NotNil(t, snap.Edges)
	assert.NotNil(t, snap.Lines)

	require.NoError(t, s.Mutate(5, func(a *anim.Attrs) { a.Text = "changed" }))
	obj, ok := snap.Object(5)
	require.True(t, ok)
	assert.Empty(t, obj.Text, "snapshot must not alias the store")
}

func TestDefaultAttrs(t *testing.T) {
	circle := anim.DefaultAttrs(anim.VariantCircle)
	assert.Equal(t, 40.0, circle.Width)
	assert.Equal(t, 1.0, circle.Alpha)
	assert.Equal(t, anim.LayerDefault, circle.Layer)

	hl := anim.DefaultAttrs(anim.VariantHighlightCircle)
	assert.Equal(t, anim.DefaultHighlight, hl.Foreground)
	assert.Empty(t, hl.Background)
}
