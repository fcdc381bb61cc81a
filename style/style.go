// Package style defines the immutable Style Descriptor used by the
// Style Run Table: the single concrete type layout reads style
// information from, built up through a Builder and frozen with Seal.
//
// This mirrors the teacher's FontFace/FontStyle/FontVariant split in
// fontface.go, generalized to the fuller descriptor spec.md's Style
// Descriptor calls for (decorations, stroke styles, directional
// override, replacement character, ...) instead of the teacher's
// paint-oriented face (which carried a *Font and color for drawing).
package style

import "image/color"

// Weight is a font weight on the usual 100-900 scale. Named constants
// follow the teacher's FontStyle boldness mapping in fontface.go.
type Weight int

const (
	WeightExtraLight Weight = 100
	WeightLight      Weight = 200
	WeightBook       Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightSemibold   Weight = 600
	WeightBold       Weight = 700
	WeightBlack      Weight = 800
	WeightExtraBlack Weight = 900
)

// Underline is a bitflag enum: none/gapped/solid/overline plus IME
// composition variants, as spec.md's Style Descriptor requires.
type Underline uint8

const (
	UnderlineNone Underline = 0
	UnderlineGapped Underline = 1 << iota
	UnderlineSolid
	UnderlineOverline
	UnderlineIMEInput
	UnderlineIMEConverted
	UnderlineIMETarget
)

// StrikeThrough is the strike-through enum.
type StrikeThrough uint8

const (
	StrikeThroughNone StrikeThrough = iota
	StrikeThroughSingle
	StrikeThroughDouble
)

// Variant selects normal, superscript or subscript rendering. Font
// size scaling (0.65x) and the paint-time vertical offsets
// (-0.35*size for super, +0.10*size for sub) are FRB/LB concerns
// (spec.md §4.3); Variant only records the caller's intent.
type Variant uint8

const (
	VariantNormal Variant = iota
	VariantSuperscript
	VariantSubscript
)

// DirectionOverride resolves per-run directionality; Auto defers to
// the Text Block's base direction (Open Question 2, SPEC_FULL.md §5).
type DirectionOverride uint8

const (
	DirectionAuto DirectionOverride = iota
	DirectionLTR
	DirectionRTL
)

// StrokeStyle selects the line pattern used to paint underline,
// strike-through and overline decorations. Named after the teacher's
// own FontDecorator implementations in fontface.go (FontUnderline,
// FontDottedUnderline, FontDashedUnderline, FontDoubleUnderline,
// FontSineUnderline).
type StrokeStyle uint8

const (
	StrokeSolid StrokeStyle = iota
	StrokeDashed
	StrokeDotted
	StrokeDouble
	StrokeWavy
)

// TextEffect names an additional paint-time effect (e.g. "shadow",
// "outline-glow") that the paint layer interprets; the layout engine
// only carries the list through unmodified.
type TextEffect string

// Style is the immutable style descriptor attached to each Style Run.
// All fields are set through Builder before Seal; after Seal any
// further attempt to mutate through the Builder panics with a
// *SealedMutationError (spec.md §7 kind 1 — programmer error, fatal).
type Style struct {
	sealed bool

	fontFamily           string
	fontSize             float64
	fontWeight           Weight
	italic               bool
	underline            Underline
	strikeThrough        StrikeThrough
	lineHeightMultiplier float64
	foreground           color.RGBA
	background           color.RGBA
	underlineColor       color.RGBA
	letterSpacing        float64
	variant              Variant
	direction            DirectionOverride
	replacementChar      rune // 0 means "no replacement"
	strokeThickness      *float64
	underlineOffset      *float64
	overlineOffset       *float64
	strikeOffset         *float64
	strokeStyle          StrokeStyle
	inkSkip              bool
	effects              []TextEffect
}

func (s *Style) FontFamily() string                 { return s.fontFamily }
func (s *Style) FontSize() float64                  { return s.fontSize }
func (s *Style) FontWeight() Weight                 { return s.fontWeight }
func (s *Style) Italic() bool                       { return s.italic }
func (s *Style) UnderlineKind() Underline           { return s.underline }
func (s *Style) StrikeThroughKind() StrikeThrough   { return s.strikeThrough }
func (s *Style) LineHeightMultiplier() float64      { return s.lineHeightMultiplier }
func (s *Style) Foreground() color.RGBA             { return s.foreground }
func (s *Style) Background() color.RGBA             { return s.background }
func (s *Style) UnderlineColor() color.RGBA         { return s.underlineColor }
func (s *Style) LetterSpacing() float64             { return s.letterSpacing }
func (s *Style) Variant() Variant                   { return s.variant }
func (s *Style) Direction() DirectionOverride       { return s.direction }
func (s *Style) ReplacementChar() rune              { return s.replacementChar }
func (s *Style) StrokeThickness() (float64, bool) {
	if s.strokeThickness == nil {
		return 0, false
	}
	return *s.strokeThickness, true
}
func (s *Style) UnderlineOffset() (float64, bool) { return derefOffset(s.underlineOffset) }
func (s *Style) OverlineOffset() (float64, bool)  { return derefOffset(s.overlineOffset) }
func (s *Style) StrikeOffset() (float64, bool)    { return derefOffset(s.strikeOffset) }
func (s *Style) StrokeStyleKind() StrokeStyle     { return s.strokeStyle }
func (s *Style) InkSkip() bool                    { return s.inkSkip }
func (s *Style) Effects() []TextEffect            { return s.effects }
func (s *Style) Sealed() bool                     { return s.sealed }

func derefOffset(f *float64) (float64, bool) {
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Equals reports whether two sealed styles describe the same
// typographic treatment, used by TextBlock.DecorationRuns to decide
// whether adjacent decoration spans may be coalesced (SPEC_FULL.md §4).
func (s *Style) Equals(other *Style) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.fontFamily == other.fontFamily &&
		s.fontSize == other.fontSize &&
		s.fontWeight == other.fontWeight &&
		s.italic == other.italic &&
		s.underline == other.underline &&
		s.strikeThrough == other.strikeThrough &&
		s.foreground == other.foreground &&
		s.underlineColor == other.underlineColor &&
		s.strokeStyle == other.strokeStyle
}
