// Package sfntshape supplies the default shape.ShapeFunc and a
// trivial default shape.FontMatcherFunc, both grounded on the
// teacher's non-cgo shaper fallback (text/shaper.go, build-tagged
// "!harfbuzz js"): one glyph per codepoint, advances and kerning read
// straight off the parsed SFNT table, no ligature formation or mark
// attachment. A real shaping engine (HarfBuzz via cgo, as the
// teacher's text/harfbuzz.go wires up) remains a drop-in replacement
// behind the same shape.ShapeFunc signature; this package exists so
// the module has a working, dependency-light default.
package sfntshape

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/foldline/richtext/shape"
	"github.com/foldline/richtext/style"
)

// Face wraps a parsed golang.org/x/image/font/sfnt.Font as a
// shape.Typeface.
type Face struct {
	name string
	font *sfnt.Font
	buf  sfnt.Buffer
}

// NewFace parses SFNT (TrueType/OpenType) bytes into a Face usable
// both as a shape.Typeface and as the shaping target of Shape.
func NewFace(name string, data []byte) (*Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sfntshape: parse %q: %w", name, err)
	}
	return &Face{name: name, font: f}, nil
}

func (f *Face) Name() string { return f.name }

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func (f *Face) Metrics(size float64) shape.FontMetrics {
	m, err := f.font.Metrics(&f.buf, ppem(size), font.HintingNone)
	if err != nil {
		return shape.FontMetrics{}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	height := fixedToFloat(m.Height)
	return shape.FontMetrics{
		Ascent:  ascent,
		Descent: descent,
		Leading: height - ascent - descent,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Shape implements shape.ShapeFunc: one glyph per input codepoint,
// advances (with pairwise kerning folded into the preceding glyph)
// read from the Face's SFNT tables. Combining marks and ligatures are
// not formed — each codepoint maps to exactly one glyph, matching the
// teacher's non-cgo fallback shaper.
func Shape(cps []shape.Codepoint, face shape.Typeface, size float64, dir shape.Direction, features string) (shape.ShapeResult, error) {
	f, ok := face.(*Face)
	if !ok {
		return shape.ShapeResult{}, fmt.Errorf("sfntshape: Shape called with non-Face typeface %T", face)
	}

	n := len(cps)
	res := shape.ShapeResult{
		GlyphIDs: make([]uint16, n),
		Clusters: make([]uint32, n),
		Advances: make([]float64, n),
		OffsetsX: make([]float64, n),
		OffsetsY: make([]float64, n),
	}
	size26_6 := ppem(size)

	var prevGID sfnt.GlyphIndex
	for i, cp := range cps {
		r := rune(cp)
		gid, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			gid = 0 // .notdef
		}
		adv, err := f.font.GlyphAdvance(&f.buf, gid, size26_6, font.HintingNone)
		if err != nil {
			adv = 0
		}
		res.GlyphIDs[i] = uint16(gid)
		res.Clusters[i] = uint32(i)
		res.Advances[i] = fixedToFloat(adv)

		if i > 0 {
			kern, err := f.font.Kern(&f.buf, prevGID, gid, size26_6, font.HintingNone)
			if err == nil {
				res.Advances[i-1] += fixedToFloat(kern)
			}
		}
		prevGID = gid
	}

	if dir == shape.RTL {
		reverseShapeResult(&res)
	}
	return res, nil
}

func reverseShapeResult(r *shape.ShapeResult) {
	n := len(r.GlyphIDs)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		r.GlyphIDs[i], r.GlyphIDs[j] = r.GlyphIDs[j], r.GlyphIDs[i]
		r.Clusters[i], r.Clusters[j] = r.Clusters[j], r.Clusters[i]
		r.Advances[i], r.Advances[j] = r.Advances[j], r.Advances[i]
		r.OffsetsX[i], r.OffsetsX[j] = r.OffsetsX[j], r.OffsetsX[i]
		r.OffsetsY[i], r.OffsetsY[j] = r.OffsetsY[j], r.OffsetsY[i]
	}
}

// StaticMatcher is a trivial default shape.FontMatcherFunc: it always
// resolves to the one Face it was built with, regardless of codepoint
// or style, doing no fallback or family/weight/italic matching. A
// real font-matching registry (family name → installed font, with a
// fallback chain for codepoints the primary face lacks) is an external
// collaborator per spec.md §1; this exists so the module has a
// working default for callers with a single embedded font.
func StaticMatcher(face *Face) shape.FontMatcherFunc {
	return func(cp shape.Codepoint, st *style.Style) (shape.Typeface, error) {
		return face, nil
	}
}
