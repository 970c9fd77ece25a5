package choreographer

// indicatorEntry is the registry's private bookkeeping for one active
// pointer instance. The choreographer itself only ever holds the key; the
// *Indicator* and its viewport binding live here.
type indicatorEntry struct {
	key       IndicatorKey
	indicator Indicator
	viewport  *Viewport
}

// IndicatorRegistry is the sole owner of every live Indicator. Entries are
// created lazily, on the first event that actually needs the indicator to
// exist, never eagerly on device add — that deferral is what keeps the
// factory from allocating graphical resources nothing is showing yet.
type IndicatorRegistry struct {
	factory  IndicatorFactory
	entries  map[IndicatorKey]*indicatorEntry
	creating bool
}

// NewIndicatorRegistry returns an empty registry backed by factory.
func NewIndicatorRegistry(factory IndicatorFactory) *IndicatorRegistry {
	return &IndicatorRegistry{
		factory: factory,
		entries: make(map[IndicatorKey]*indicatorEntry),
	}
}

// Ensure idempotently returns the indicator for key, creating it via the
// factory on first call.
func (r *IndicatorRegistry) Ensure(key IndicatorKey, kind IndicatorKind) Indicator {
	if e, ok := r.entries[key]; ok {
		return e.indicator
	}

	if r.creating {
		panic("choreographer: IndicatorRegistry.Ensure re-entered while a create was already outstanding")
	}
	r.creating = true
	ind := r.factory.CreateIndicator(kind)
	r.creating = false

	r.entries[key] = &indicatorEntry{key: key, indicator: ind}
	return ind
}

// Get returns the indicator for key without creating it.
func (r *IndicatorRegistry) Get(key IndicatorKey) (Indicator, bool) {
	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.indicator, true
}

// Has reports whether key currently has a live entry.
func (r *IndicatorRegistry) Has(key IndicatorKey) bool {
	_, ok := r.entries[key]
	return ok
}

// Drop destroys the entry for key, if any. After Drop returns, the
// registry holds no reference to the indicator that was there.
func (r *IndicatorRegistry) Drop(key IndicatorKey) {
	delete(r.entries, key)
}

// AttachViewport binds key's entry to v, if the entry exists.
func (r *IndicatorRegistry) AttachViewport(key IndicatorKey, v Viewport) {
	e, ok := r.entries[key]
	if !ok {
		return
	}
	e.viewport = &v
	e.indicator.SetDisplayViewport(v)
}

// DetachViewport unbinds key's entry from any viewport, if the entry
// exists and currently has one.
func (r *IndicatorRegistry) DetachViewport(key IndicatorKey) {
	e, ok := r.entries[key]
	if !ok || e.viewport == nil {
		return
	}
	e.viewport = nil
	e.indicator.ClearDisplayViewport()
}

// Viewport returns the viewport currently bound to key's entry, if any.
func (r *IndicatorRegistry) Viewport(key IndicatorKey) (Viewport, bool) {
	e, ok := r.entries[key]
	if !ok || e.viewport == nil {
		return Viewport{}, false
	}
	return *e.viewport, true
}

// Keys returns the keys of every live entry of the given kind.
func (r *IndicatorRegistry) Keys(kind IndicatorKind) []IndicatorKey {
	out := make([]IndicatorKey, 0)
	for k := range r.entries {
		if k.Kind == kind {
			out = append(out, k)
		}
	}
	return out
}

// ForEach applies fn to every live entry of the given kind. fn must not
// mutate the registry; Keys+Drop/Get should be used for that instead.
func (r *IndicatorRegistry) ForEach(kind IndicatorKind, fn func(key IndicatorKey, ind Indicator)) {
	for _, k := range r.Keys(kind) {
		fn(k, r.entries[k].indicator)
	}
}

// Count returns the number of live entries, for diagnostics.
func (r *IndicatorRegistry) Count() int {
	return len(r.entries)
}
