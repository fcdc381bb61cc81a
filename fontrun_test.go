package richtext

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/foldline/richtext/shape"
)

func makeLTRRun(n int32) *FontRun {
	glyphs := make([]uint16, n)
	clusters := make([]uint32, n)
	positions := make([]float64, n)
	relative := make([]float64, n+1)
	for i := int32(0); i < n; i++ {
		glyphs[i] = uint16(i + 1)
		clusters[i] = uint32(i)
		positions[i] = float64(i) * 10
		relative[i] = float64(i) * 10
	}
	relative[n] = float64(n) * 10
	return &FontRun{
		Kind: FontRunNormal, Start: 0, Length: n, Direction: shape.LTR,
		GlyphIDs: glyphs, Clusters: clusters, PositionX: positions,
		PositionY: make([]float64, n), RelativeCPX: relative,
		Width: float64(n) * 10, LineIdx: -1,
	}
}

// TestFontRunSplitLTRReproducesOriginal covers quantified invariant 3
// in spec.md §8: concatenating the split halves (after x-origin
// renormalization) reproduces the original.
func TestFontRunSplitLTRReproducesOriginal(t *testing.T) {
	fr := makeLTRRun(6)
	left, right, err := fr.Split(3, nil)
	test.Error(t, err)

	test.T(t, left.Length, int32(3))
	test.T(t, right.Length, int32(3))
	test.T(t, left.Width, 30.0)
	test.T(t, right.Width, 30.0)

	// glyph concatenation
	test.T(t, append(append([]uint16{}, left.GlyphIDs...), right.GlyphIDs...), fr.GlyphIDs)

	// clusters, offset-adjusted, concatenate back to the original
	gotClusters := append([]uint32{}, left.Clusters...)
	for _, c := range right.Clusters {
		gotClusters = append(gotClusters, c+3)
	}
	test.T(t, gotClusters, fr.Clusters)

	// positions, offset-adjusted, concatenate back to the original
	gotPos := append([]float64{}, left.PositionX...)
	for _, x := range right.PositionX {
		gotPos = append(gotPos, x+left.Width)
	}
	test.T(t, gotPos, fr.PositionX)
}

func makeRTLRun(n int32) *FontRun {
	glyphs := make([]uint16, n)
	clusters := make([]uint32, n)
	positions := make([]float64, n)
	relative := make([]float64, n+1)
	for i := int32(0); i < n; i++ {
		glyphs[i] = uint16(i + 1)
		clusters[i] = uint32(i)
		positions[i] = float64(n-1-i) * 10
	}
	for i := int32(0); i <= n; i++ {
		relative[i] = float64(n-i) * 10
	}
	return &FontRun{
		Kind: FontRunNormal, Start: 0, Length: n, Direction: shape.RTL,
		GlyphIDs: glyphs, Clusters: clusters, PositionX: positions,
		PositionY: make([]float64, n), RelativeCPX: relative,
		Width: float64(n) * 10, LineIdx: -1,
	}
}

// TestFontRunSplitRTLReproducesOriginal covers the RTL mirror of
// quantified invariant 3: the visual-left and visual-right halves,
// positioned at their own XCoord, reproduce the original run's
// continuous extent with no gap or overlap.
func TestFontRunSplitRTLReproducesOriginal(t *testing.T) {
	fr := makeRTLRun(6)
	left, right, err := fr.Split(3, nil)
	test.Error(t, err)

	test.T(t, left.Start, int32(3))
	test.T(t, left.Length, int32(3))
	test.T(t, right.Start, int32(0))
	test.T(t, right.Length, int32(3))

	test.T(t, left.Width, 30.0)
	test.T(t, right.Width, 30.0)
	test.T(t, left.XCoord, 0.0)
	test.T(t, right.XCoord, 30.0)

	test.T(t, left.GlyphIDs, []uint16{4, 5, 6})
	test.T(t, right.GlyphIDs, []uint16{1, 2, 3})

	test.T(t, left.RelativeCPX, []float64{30, 20, 10, 0})
	test.T(t, right.RelativeCPX, []float64{30, 20, 10, 0})
	test.T(t, left.PositionX, []float64{20, 10, 0})
	test.T(t, right.PositionX, []float64{20, 10, 0})

	// visual-left occupies [0, left.Width), visual-right the remainder
	// up to the original run's full width, with no gap or overlap.
	test.Float(t, left.XCoord+left.Width, right.XCoord)
	test.Float(t, right.XCoord+right.Width, fr.Width)
}

func TestFontRunSplitOutOfRange(t *testing.T) {
	fr := makeLTRRun(6)
	_, _, err := fr.Split(0, nil)
	test.That(t, err != nil)
	_, _, err = fr.Split(6, nil)
	test.That(t, err != nil)
}

func TestFontRunSplitDrawsFromPool(t *testing.T) {
	pool := NewPool()
	a, b := &FontRun{LineIdx: -1}, &FontRun{LineIdx: -1}
	pool.Put(a)
	pool.Put(b)

	fr := makeLTRRun(6)
	left, right, err := fr.Split(3, pool)
	test.Error(t, err)

	test.That(t, left == b || left == a)
	test.That(t, right == b || right == a)
	test.That(t, left != right)
	test.T(t, len(pool.free), 0)
}

func TestFontRunLeadingWidth(t *testing.T) {
	fr := makeLTRRun(4)
	test.T(t, fr.leadingWidth(0), 0.0)
	test.T(t, fr.leadingWidth(4), 40.0)
}
