package richtext

// Point is a 2D coordinate in layout space (x increases rightward, y
// increases downward, matching the teacher's own `Point` convention in
// canvas's geometry helpers, trimmed here to the handful of operations
// the layout engine actually needs).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle, used for selection highlighting
// and caret geometry returned from the query surface.
type Rect struct {
	X, Y, W, H float64
}

// Add returns the smallest Rect containing both r and q, growing an
// empty Rect to match the other side — the same accumulation pattern
// the teacher's Rect.Add uses to build up text bounding boxes line by
// line.
func (r Rect) Add(q Rect) Rect {
	if r.W == 0.0 && r.H == 0.0 {
		return q
	} else if q.W == 0.0 && q.H == 0.0 {
		return r
	}
	x0 := min(r.X, q.X)
	y0 := min(r.Y, q.Y)
	x1 := max(r.X+r.W, q.X+q.W)
	y1 := max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}
