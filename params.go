package richtext

import "github.com/foldline/richtext/shape"

// TextAlign selects horizontal alignment of finished lines within
// MaxWidth (SPEC_FULL.md §2; spec.md §6 lists the four values).
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// BaseDirection is the paragraph-level direction passed to the bidi
// delegate and used to resolve per-run DirectionOverride.Auto.
type BaseDirection uint8

const (
	BaseDirectionAuto BaseDirection = iota
	BaseDirectionLTR
	BaseDirectionRTL
)

// LayoutParams bundles the layout parameters of §6 Inputs into one
// struct, mirroring the teacher's RichText.ToText(width, height,
// halign, valign, indent, lineStretch) positional-struct style rather
// than functional options (SPEC_FULL.md §2). A zero MaxWidth/MaxHeight/
// MaxLines means "unbounded" in that dimension.
type LayoutParams struct {
	MaxWidth  float64
	MaxHeight float64
	MaxLines  int
	Align     TextAlign
	Base      BaseDirection
	Ellipsis  bool
}

func (p LayoutParams) baseShapeDirection() shape.Direction {
	if p.Base == BaseDirectionRTL {
		return shape.RTL
	}
	return shape.LTR
}
