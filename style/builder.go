package style

import "image/color"

// Builder accumulates Style fields before freezing them with Seal. A
// Builder wraps a single Style value in place; after Seal any setter
// call panics via panicSealed rather than silently doing nothing,
// because a silent no-op would let a caller believe a later style
// change took effect when Style Runs elsewhere already reference the
// sealed value.
type Builder struct {
	s *Style
}

// NewBuilder returns a Builder seeded with sensible defaults: regular
// weight, upright, no decoration, single line height.
func NewBuilder() *Builder {
	return &Builder{s: &Style{
		fontSize:             12.0,
		fontWeight:           WeightRegular,
		lineHeightMultiplier: 1.0,
		foreground:           color.RGBA{0, 0, 0, 0xff},
		strokeStyle:          StrokeSolid,
	}}
}

func (b *Builder) mustNotSeal(field string) {
	if b.s.sealed {
		panicSealed(field)
	}
}

func (b *Builder) FontFamily(v string) *Builder {
	b.mustNotSeal("FontFamily")
	b.s.fontFamily = v
	return b
}

func (b *Builder) FontSize(v float64) *Builder {
	b.mustNotSeal("FontSize")
	b.s.fontSize = v
	return b
}

func (b *Builder) FontWeight(v Weight) *Builder {
	b.mustNotSeal("FontWeight")
	b.s.fontWeight = v
	return b
}

func (b *Builder) Italic(v bool) *Builder {
	b.mustNotSeal("Italic")
	b.s.italic = v
	return b
}

func (b *Builder) Underline(v Underline) *Builder {
	b.mustNotSeal("Underline")
	b.s.underline = v
	return b
}

func (b *Builder) StrikeThrough(v StrikeThrough) *Builder {
	b.mustNotSeal("StrikeThrough")
	b.s.strikeThrough = v
	return b
}

func (b *Builder) LineHeightMultiplier(v float64) *Builder {
	b.mustNotSeal("LineHeightMultiplier")
	b.s.lineHeightMultiplier = v
	return b
}

func (b *Builder) Foreground(v color.RGBA) *Builder {
	b.mustNotSeal("Foreground")
	b.s.foreground = v
	return b
}

func (b *Builder) Background(v color.RGBA) *Builder {
	b.mustNotSeal("Background")
	b.s.background = v
	return b
}

func (b *Builder) UnderlineColor(v color.RGBA) *Builder {
	b.mustNotSeal("UnderlineColor")
	b.s.underlineColor = v
	return b
}

func (b *Builder) LetterSpacing(v float64) *Builder {
	b.mustNotSeal("LetterSpacing")
	b.s.letterSpacing = v
	return b
}

func (b *Builder) Variant(v Variant) *Builder {
	b.mustNotSeal("Variant")
	b.s.variant = v
	return b
}

func (b *Builder) Direction(v DirectionOverride) *Builder {
	b.mustNotSeal("Direction")
	b.s.direction = v
	return b
}

func (b *Builder) ReplacementChar(v rune) *Builder {
	b.mustNotSeal("ReplacementChar")
	b.s.replacementChar = v
	return b
}

func (b *Builder) StrokeThickness(v float64) *Builder {
	b.mustNotSeal("StrokeThickness")
	b.s.strokeThickness = &v
	return b
}

func (b *Builder) UnderlineOffset(v float64) *Builder {
	b.mustNotSeal("UnderlineOffset")
	b.s.underlineOffset = &v
	return b
}

func (b *Builder) OverlineOffset(v float64) *Builder {
	b.mustNotSeal("OverlineOffset")
	b.s.overlineOffset = &v
	return b
}

func (b *Builder) StrikeOffset(v float64) *Builder {
	b.mustNotSeal("StrikeOffset")
	b.s.strikeOffset = &v
	return b
}

func (b *Builder) StrokeStyleKind(v StrokeStyle) *Builder {
	b.mustNotSeal("StrokeStyle")
	b.s.strokeStyle = v
	return b
}

func (b *Builder) InkSkip(v bool) *Builder {
	b.mustNotSeal("InkSkip")
	b.s.inkSkip = v
	return b
}

func (b *Builder) Effects(v ...TextEffect) *Builder {
	b.mustNotSeal("Effects")
	b.s.effects = v
	return b
}

// Seal freezes the Style and returns it. Calling Seal more than once
// is harmless (idempotent); calling any setter afterwards panics.
func (b *Builder) Seal() *Style {
	b.s.sealed = true
	return b.s
}
