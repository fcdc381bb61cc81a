package richtext

// Pool is an explicit, caller-owned Font Run recycler (§5, §9 design
// note: "prefer an explicit arena argument passed through the layout
// call to avoid hidden global state" rather than a per-thread global
// pool). A Pool is never shared across goroutines laying out different
// Text Blocks concurrently.
type Pool struct {
	free []*FontRun
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Get checks out a Font Run, resetting it via the cleaner step before
// handing it back (§5's "Checking out a run resets it via a cleaner").
func (p *Pool) Get() *FontRun {
	if n := len(p.free); n > 0 {
		fr := p.free[n-1]
		p.free = p.free[:n-1]
		resetFontRun(fr)
		return fr
	}
	return &FontRun{LineIdx: -1}
}

// Put returns a run to the pool, releasing any embedded shaping data
// it held (§5: "returning a run to the pool releases any embedded
// shaping cache").
func (p *Pool) Put(fr *FontRun) {
	if fr == nil {
		return
	}
	resetFontRun(fr)
	p.free = append(p.free, fr)
}

// allocFontRun checks out a Font Run from pool, or allocates a fresh
// one directly when no pool was supplied (§2 item 6: the Pool is
// optional, callers that don't pass one simply allocate as before).
func allocFontRun(pool *Pool) *FontRun {
	if pool != nil {
		return pool.Get()
	}
	return &FontRun{LineIdx: -1}
}

func resetFontRun(fr *FontRun) {
	fr.Kind = FontRunNormal
	fr.StyleRunIndex = 0
	fr.Start, fr.Length = 0, 0
	fr.Typeface = nil
	fr.Metrics.Ascent, fr.Metrics.Descent, fr.Metrics.Leading = 0, 0, 0
	fr.GlyphIDs = fr.GlyphIDs[:0]
	fr.PositionX = fr.PositionX[:0]
	fr.PositionY = fr.PositionY[:0]
	fr.Clusters = fr.Clusters[:0]
	fr.RelativeCPX = fr.RelativeCPX[:0]
	fr.Width, fr.XCoord = 0, 0
	fr.LineIdx = -1
	fr.TrailingPadding = 0
}
