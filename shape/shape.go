// Package shape defines the vocabulary the Font Run Builder and Line
// Builder use to talk to the three external collaborators spec.md §1
// keeps out of core: the shaping engine, the font-matching/fallback
// registry, and the bidi algorithm. Each is a plain function type, not
// an interface with a large surface — spec.md §9's design note that
// "dynamic dispatch on Style collapses to a single concrete type with
// an interface boundary" applies equally here: the smallest capability
// set a delegate needs, expressed as a func type, keeps test doubles
// trivial to write (the teacher's own non-cgo shaper/bidi fallbacks in
// text/shaper.go and text/bidi.go are exactly this kind of drop-in
// swap, gated by build tags instead of an explicit func value).
package shape

import "github.com/foldline/richtext/style"

// Codepoint mirrors richtext.Codepoint; kept as a distinct type here
// (rather than importing the root package, which would cycle back
// into shape) since both are plain int32 scalar values.
type Codepoint int32

// Direction is the shaping direction of a Font Run.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

// FontMetrics carries the handful of typeface metrics layout needs:
// ascent/descent for baseline placement, leading for line spacing.
// Real typeface handles may carry much more (glyph outlines, hinting
// tables, ...) but layout never reads past this capability set.
type FontMetrics struct {
	Ascent, Descent, Leading float64
}

// Typeface is the resolved font handle the font-matching registry
// returns. Layout treats it as opaque beyond Metrics and Name.
type Typeface interface {
	Name() string
	Metrics(size float64) FontMetrics
}

// ShapeResult is what the shaping engine returns for one directional,
// single-typeface segment: parallel glyph id / cluster / advance
// arrays (spec.md §4.3 step 3).
type ShapeResult struct {
	GlyphIDs []uint16
	Clusters []uint32 // codepoint index (relative to the segment) each glyph belongs to
	Advances []float64
	OffsetsX []float64 // per-glyph x offset from the pen position, e.g. for mark attachment
	OffsetsY []float64
}

// ShapeFunc is the delegated shaping engine: a pure function from a
// styled codepoint slice to glyphs, clusters and advances.
type ShapeFunc func(cps []Codepoint, face Typeface, size float64, dir Direction, features string) (ShapeResult, error)

// FontMatcherFunc is the delegated font-matching/fallback registry:
// codepoint + style → typeface.
type FontMatcherFunc func(cp Codepoint, st *style.Style) (Typeface, error)

// BidiLevelsFunc is the delegated bidi algorithm: codepoint slice +
// base direction → per-codepoint embedding level (even = LTR, odd =
// RTL, per UAX #9).
type BidiLevelsFunc func(cps []Codepoint, base Direction) []int

// LineBreakClass classifies a codepoint boundary for word-wrap
// purposes, a coarsening of UAX #14's full class table down to the
// three outcomes the Line Builder actually branches on (spec.md
// §4.5 step 1).
type LineBreakClass uint8

const (
	BreakProhibited LineBreakClass = iota
	BreakAllowed
	BreakMandatory
)

// LineBreakClassFunc is the delegated UAX #14 line-break analyzer:
// codepoint slice → per-codepoint break class of the boundary
// following that codepoint.
type LineBreakClassFunc func(cps []Codepoint) []LineBreakClass
