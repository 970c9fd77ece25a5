package choreographer

// MouseEngine advances a mouse indicator's position in response to
// relative deltas. It holds no state of its own: the cursor's current
// position is owned by the Indicator (the same way wlr_cursor, not the
// compositor, is the source of truth for cursor position in the teacher),
// so that an external caller priming the indicator's position (as the
// tests do) is immediately reflected on the next delta.
type MouseEngine struct{}

// NewMouseEngine returns a MouseEngine.
func NewMouseEngine() *MouseEngine {
	return &MouseEngine{}
}

// Advance reads ind's current position, applies the relative delta
// (dx, dy), clamps to vp's logical bounds when vp is known, persists the
// result on ind and returns it.
func (m *MouseEngine) Advance(ind Indicator, vp *Viewport, dx, dy float32) (x, y float32) {
	x, y = ind.Position()
	x += dx
	y += dy
	if vp != nil {
		x = clamp(x, 0, float32(vp.LogicalWidth)-1)
		y = clamp(y, 0, float32(vp.LogicalHeight)-1)
	}
	ind.SetPosition(x, y)
	return x, y
}
