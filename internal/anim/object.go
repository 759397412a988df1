package anim

import "fmt"

// ObjectID identifies a visual object. IDs are handed out by
// Controller.NextID and are never reused within a session.
type ObjectID int

// NoObject marks an absent object reference.
const NoObject ObjectID = -1

// Variant is the drawable kind of a visual object. An object keeps its
// variant for its whole lifetime.
type Variant int

const (
	VariantRectangle Variant = iota
	VariantCircle
	VariantLabel
	VariantHighlightCircle
	VariantLinkedListNode
)

func (v Variant) String() string {
	switch v {
	case VariantRectangle:
		return "rectangle"
	case VariantCircle:
		return "circle"
	case VariantLabel:
		return "label"
	case VariantHighlightCircle:
		return "highlight-circle"
	case VariantLinkedListNode:
		return "linked-list-node"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// NullSlot selects which null-pointer decoration a SetNull command toggles.
type NullSlot int

const (
	NullSelf NullSlot = iota
	NullPrev
	NullNext
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
	DefaultHighlight  = "#FF0000"

	defaultCircleRadius = 20
)

// Attrs holds the mutable display attributes shared by every variant.
// It contains only value fields so copying an Attrs is a deep copy.
type Attrs struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	Text       string
	Foreground string
	Background string
	TextColor  string

	Highlighted    bool
	HighlightColor string

	Alpha    float64
	Layer    int
	Centered bool

	// Null-pointer decorations: a slash drawn instead of an outgoing edge.
	Null     bool
	NullPrev bool
	NullNext bool
}

// DefaultAttrs returns the attributes a freshly created object of the given
// variant starts with.
func DefaultAttrs(v Variant) Attrs {
	a := Attrs{
		Foreground:     DefaultForeground,
		Background:     DefaultBackground,
		TextColor:      DefaultForeground,
		HighlightColor: DefaultHighlight,
		Alpha:          1,
		Centered:       true,
	}
	switch v {
	case VariantCircle:
		a.Width = 2 * defaultCircleRadius
		a.Height = 2 * defaultCircleRadius
	case VariantHighlightCircle:
		a.Width = 2 * defaultCircleRadius
		a.Height = 2 * defaultCircleRadius
		a.Foreground = DefaultHighlight
		a.Background = ""
	}
	return a
}

// Object is one entry of the visual object store.
type Object struct {
	ID      ObjectID
	Variant Variant
	Attrs
}
