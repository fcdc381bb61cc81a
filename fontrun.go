package richtext

import "github.com/foldline/richtext/shape"

// FontRunKind distinguishes ordinary shaped text from the two special
// kinds the Line Builder produces: trailing whitespace at a line's
// logical end, and a synthesized ellipsis run.
type FontRunKind uint8

const (
	FontRunNormal FontRunKind = iota
	FontRunTrailingWhitespace
	FontRunEllipsis
)

// FontRun is the physical unit produced by shaping: a maximal
// contiguous codepoint range rendered with a single typeface at a
// single direction (§3 Font Run).
type FontRun struct {
	Kind FontRunKind

	// StyleRunIndex is a non-owning back-reference into the owning
	// TextBlock's StyleRunTable (§9 design note: relations are indices,
	// not strong references).
	StyleRunIndex int

	Start, Length int32
	Direction     shape.Direction

	Typeface shape.Typeface
	Metrics  shape.FontMetrics

	GlyphIDs  []uint16
	PositionX []float64
	PositionY []float64
	Clusters  []uint32 // glyph index -> codepoint index in CB, relative to Start

	// RelativeCPX holds Length+1 entries: the leading x-coordinate of
	// each codepoint within the run, measured from the run's left edge,
	// plus one sentinel (§4.3 step 4). For LTR runs RelativeCPX[0] is 0
	// and the sentinel RelativeCPX[Length] equals Width; for RTL runs
	// RelativeCPX[0] equals Width and the sentinel is 0.
	RelativeCPX []float64

	Width   float64
	XCoord  float64
	LineIdx int // back-reference to the owning Line, -1 until assigned

	// TrailingPadding is set by the Line Builder on runs it reclassifies
	// as FontRunTrailingWhitespace (SPEC_FULL.md §4): the advance of that
	// whitespace, which a decoration renderer may choose to extend under
	// or stop short of. It is zero on all other runs.
	TrailingPadding float64
}

// leadingWidth returns the leading-edge x-coordinate of codepoint at
// logical offset i within the run (0 <= i <= Length).
func (fr *FontRun) leadingWidth(i int32) float64 {
	return fr.RelativeCPX[i]
}

// glyphSplitIndex finds the smallest glyph index whose cluster is >= p
// (LTR) or, for RTL runs, the largest glyph index whose cluster is
// >= p, plus one — assigning whole clusters to one side of a split
// (§4.4).
func (fr *FontRun) glyphSplitIndex(p int32) int {
	if fr.Direction == shape.RTL {
		idx := len(fr.Clusters)
		for i := len(fr.Clusters) - 1; i >= 0; i-- {
			if fr.Clusters[i] >= uint32(p) {
				idx = i
			} else {
				break
			}
		}
		return idx
	}
	idx := len(fr.Clusters)
	for i, c := range fr.Clusters {
		if c >= uint32(p) {
			idx = i
			break
		}
	}
	return idx
}

// Split implements §4.4 Font Run Split: produces two Font Runs whose
// concatenation reproduces the original after x-origin renormalization.
// p is a codepoint offset relative to fr.Start, strictly interior to
// (0, fr.Length). pool, if non-nil, supplies the two returned Font Runs
// via its Get (§2 item 6) rather than allocating them directly; fr
// itself is never recycled here, since callers may still hold other
// references to it (e.g. to re-slice frs[i] in place).
func (fr *FontRun) Split(p int32, pool *Pool) (left, right *FontRun, err error) {
	if p <= 0 || p >= fr.Length {
		return nil, nil, &IndexOutOfRangeError{Op: "FontRun.Split", Index: p, Low: 1, High: fr.Length}
	}

	gsplit := fr.glyphSplitIndex(p)

	// "left"/"right" name visual order. For LTR, visual order matches
	// logical order, so left owns codepoints [Start, Start+p). For RTL
	// it is the reverse: the later logical codepoints [Start+p, End)
	// form the visual-left half (§4.4's RTL mirror rule).
	if fr.Direction != shape.RTL {
		left = allocFontRun(pool)
		left.Kind, left.StyleRunIndex = fr.Kind, fr.StyleRunIndex
		left.Start, left.Length, left.Direction = fr.Start, p, fr.Direction
		left.Typeface, left.Metrics = fr.Typeface, fr.Metrics
		left.XCoord = fr.XCoord

		right = allocFontRun(pool)
		right.Kind, right.StyleRunIndex = fr.Kind, fr.StyleRunIndex
		right.Start, right.Length, right.Direction = fr.Start+p, fr.Length-p, fr.Direction
		right.Typeface, right.Metrics = fr.Typeface, fr.Metrics

		left.GlyphIDs = append([]uint16(nil), fr.GlyphIDs[:gsplit]...)
		left.PositionX = append([]float64(nil), fr.PositionX[:gsplit]...)
		left.PositionY = append([]float64(nil), fr.PositionY[:gsplit]...)
		left.Clusters = append([]uint32(nil), fr.Clusters[:gsplit]...)
		left.RelativeCPX = append([]float64(nil), fr.RelativeCPX[:p+1]...)
		left.Width = left.RelativeCPX[len(left.RelativeCPX)-1]

		right.GlyphIDs = append([]uint16(nil), fr.GlyphIDs[gsplit:]...)
		right.Clusters = make([]uint32, len(fr.Clusters)-gsplit)
		for i, c := range fr.Clusters[gsplit:] {
			right.Clusters[i] = c - uint32(p)
		}
		right.PositionX = make([]float64, len(fr.PositionX)-gsplit)
		for i, x := range fr.PositionX[gsplit:] {
			right.PositionX[i] = x - left.Width
		}
		right.PositionY = append([]float64(nil), fr.PositionY[gsplit:]...)
		right.RelativeCPX = make([]float64, len(fr.RelativeCPX)-int(p))
		for i, x := range fr.RelativeCPX[p:] {
			right.RelativeCPX[i] = x - left.Width
		}
		right.Width = right.RelativeCPX[len(right.RelativeCPX)-1]
		right.XCoord = fr.XCoord + left.Width
	} else {
		// RTL: logical codepoints [p,Length) form the visual-left half
		// and keep the original run's own origin (left.XCoord =
		// fr.XCoord); logical codepoints [0,p) form the visual-right
		// half and move, translated by -left.Width, mirroring the LTR
		// branch's treatment of its own moving ("right") side.
		left = allocFontRun(pool)
		left.Kind, left.StyleRunIndex = fr.Kind, fr.StyleRunIndex
		left.Start, left.Length, left.Direction = fr.Start+p, fr.Length-p, fr.Direction
		left.Typeface, left.Metrics = fr.Typeface, fr.Metrics
		left.XCoord = fr.XCoord

		right = allocFontRun(pool)
		right.Kind, right.StyleRunIndex = fr.Kind, fr.StyleRunIndex
		right.Start, right.Length, right.Direction = fr.Start, p, fr.Direction
		right.Typeface, right.Metrics = fr.Typeface, fr.Metrics

		left.GlyphIDs = append([]uint16(nil), fr.GlyphIDs[gsplit:]...)
		left.Clusters = make([]uint32, len(fr.Clusters)-gsplit)
		for i, c := range fr.Clusters[gsplit:] {
			left.Clusters[i] = c - uint32(p)
		}
		// codepoints [p, Length) already carry their own correct
		// relative_cp_x range (fr.RelativeCPX[p] down to 0) in the
		// original run, since RTL relative_cp_x decreases from width
		// at index 0 to 0 at index Length — no renormalization needed.
		left.RelativeCPX = append([]float64(nil), fr.RelativeCPX[p:]...)
		left.Width = left.RelativeCPX[0]
		left.PositionX = append([]float64(nil), fr.PositionX[gsplit:]...)
		left.PositionY = append([]float64(nil), fr.PositionY[gsplit:]...)

		right.GlyphIDs = append([]uint16(nil), fr.GlyphIDs[:gsplit]...)
		right.Clusters = append([]uint32(nil), fr.Clusters[:gsplit]...)
		right.PositionY = append([]float64(nil), fr.PositionY[:gsplit]...)
		right.RelativeCPX = make([]float64, p+1)
		for i, rx := range fr.RelativeCPX[:p+1] {
			right.RelativeCPX[i] = rx - left.Width
		}
		right.Width = right.RelativeCPX[0]
		right.PositionX = make([]float64, gsplit)
		for i, px := range fr.PositionX[:gsplit] {
			right.PositionX[i] = px - left.Width
		}
		right.XCoord = fr.XCoord + left.Width
	}

	return left, right, nil
}
