package sfntshape

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/foldline/richtext/shape"
)

// fakeFace is a minimal shape.Typeface double that needs no real SFNT
// bytes on disk (the teacher's own font fixtures in font/ were dropped
// along with the SFNT parser subpackage, since binary font parsing is an
// external collaborator per spec.md §1). StaticMatcher takes a *Face, so
// the StaticMatcher test below builds a bare Face instead.
type fakeFace struct{ name string }

func (f *fakeFace) Name() string { return f.name }
func (f *fakeFace) Metrics(size float64) shape.FontMetrics {
	return shape.FontMetrics{Ascent: size * 0.8, Descent: size * 0.2, Leading: 0}
}

func TestStaticMatcherIgnoresCodepointAndStyle(t *testing.T) {
	face := &Face{name: "embedded"}
	matcher := StaticMatcher(face)

	got, err := matcher(shape.Codepoint('A'), nil)
	test.Error(t, err)
	test.T(t, got, shape.Typeface(face))

	got2, err := matcher(shape.Codepoint('漢'), nil)
	test.Error(t, err)
	test.T(t, got2, shape.Typeface(face))
}

func TestReverseShapeResult(t *testing.T) {
	res := shape.ShapeResult{
		GlyphIDs: []uint16{1, 2, 3},
		Clusters: []uint32{0, 1, 2},
		Advances: []float64{10, 20, 30},
		OffsetsX: []float64{0, 0, 0},
		OffsetsY: []float64{0, 0, 0},
	}
	reverseShapeResult(&res)
	test.T(t, res.GlyphIDs, []uint16{3, 2, 1})
	test.T(t, res.Clusters, []uint32{2, 1, 0})
	test.T(t, res.Advances, []float64{30, 20, 10})
}

func TestPpemRoundTrip(t *testing.T) {
	test.Float(t, fixedToFloat(ppem(12.0)), 12.0)
	test.Float(t, fixedToFloat(ppem(9.5)), 9.5)
}
