package choreographer

// DisplayTopology holds the current set of display viewports and answers
// viewport lookups. The teacher's wlr_output_layout plays the same role
// for a wlroots compositor: a flat, fully-replaced set of rectangles
// keyed by display/output identity.
type DisplayTopology struct {
	viewports map[DisplayID]Viewport
}

// NewDisplayTopology returns an empty topology.
func NewDisplayTopology() *DisplayTopology {
	return &DisplayTopology{viewports: make(map[DisplayID]Viewport)}
}

// Viewport looks up the viewport for id.
func (t *DisplayTopology) Viewport(id DisplayID) (Viewport, bool) {
	v, ok := t.viewports[id]
	return v, ok
}

// SetViewports atomically replaces the full set of viewports.
func (t *DisplayTopology) SetViewports(viewports []Viewport) {
	next := make(map[DisplayID]Viewport, len(viewports))
	for _, v := range viewports {
		next[v.DisplayID] = v
	}
	t.viewports = next
}

// Equal reports whether viewports describes the same set currently held,
// used to make SetDisplayViewports idempotent on repeated identical input.
func (t *DisplayTopology) Equal(viewports []Viewport) bool {
	if len(viewports) != len(t.viewports) {
		return false
	}
	for _, v := range viewports {
		cur, ok := t.viewports[v.DisplayID]
		if !ok || cur != v {
			return false
		}
	}
	return true
}

// All returns every known viewport, order unspecified.
func (t *DisplayTopology) All() []Viewport {
	out := make([]Viewport, 0, len(t.viewports))
	for _, v := range t.viewports {
		out = append(out, v)
	}
	return out
}
