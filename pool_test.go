package richtext

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPoolGetResetsState(t *testing.T) {
	p := NewPool()
	fr := p.Get()
	fr.Kind = FontRunTrailingWhitespace
	fr.Width = 42
	fr.GlyphIDs = []uint16{1, 2, 3}
	p.Put(fr)

	got := p.Get()
	test.That(t, got == fr) // reused, not a fresh allocation
	test.T(t, got.Kind, FontRunNormal)
	test.T(t, got.Width, 0.0)
	test.T(t, len(got.GlyphIDs), 0)
	test.T(t, got.LineIdx, -1)
}

func TestPoolGetWithoutPriorPutAllocates(t *testing.T) {
	p := NewPool()
	fr := p.Get()
	test.T(t, fr.LineIdx, -1)
}

func TestPoolPutNilIsNoop(t *testing.T) {
	p := NewPool()
	p.Put(nil)
	test.T(t, len(p.free), 0)
}

// TestLayoutReusesPooledFontRuns covers §2 item 6: re-running Layout on
// the same TextBlock recycles the previous Font Runs through the Pool
// rather than only ever allocating new ones.
func TestLayoutReusesPooledFontRuns(t *testing.T) {
	pool := NewPool()
	tb := NewTextBlock(monoDelegates(10), pool)
	tb.AppendStyledString("hi", plainStyle())
	test.Error(t, tb.Layout(LayoutParams{}))
	test.That(t, len(pool.free) == 0) // runs are in use, not yet recycled

	first := tb.RunsForLine(0)[0]

	test.Error(t, tb.Layout(LayoutParams{}))
	second := tb.RunsForLine(0)[0]

	test.That(t, second == first) // the Pool handed back the same *FontRun
}
