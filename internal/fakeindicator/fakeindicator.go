// Package fakeindicator provides an in-memory Indicator/IndicatorFactory
// pair for exercising the choreographer package without a real rendering
// backend, the same role a FakePointerController-style test double plays
// against a pointer-controller-owning production component.
package fakeindicator

import (
	"sort"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
)

// Indicator is a recording, no-op Indicator: it tracks every bit of state
// the interface exposes, with no side effects beyond that bookkeeping.
type Indicator struct {
	kind choreographer.IndicatorKind

	hasViewport bool
	viewport    choreographer.Viewport

	x, y float32

	shown bool

	spots map[choreographer.DisplayID][]int32

	// Events records, in order, every visibility/fade transition this
	// indicator went through, for assertions that care about ordering
	// rather than just final state.
	Events []string
}

// New returns an Indicator of the given kind with no viewport and no
// spots.
func New(kind choreographer.IndicatorKind) *Indicator {
	return &Indicator{kind: kind, spots: make(map[choreographer.DisplayID][]int32)}
}

func (ind *Indicator) SetDisplayViewport(v choreographer.Viewport) {
	ind.hasViewport = true
	ind.viewport = v
}

func (ind *Indicator) ClearDisplayViewport() {
	ind.hasViewport = false
	ind.viewport = choreographer.Viewport{}
}

func (ind *Indicator) DisplayID() choreographer.DisplayID {
	if !ind.hasViewport {
		return choreographer.DisplayNone
	}
	return ind.viewport.DisplayID
}

func (ind *Indicator) Viewport() (choreographer.Viewport, bool) {
	return ind.viewport, ind.hasViewport
}

func (ind *Indicator) SetPosition(x, y float32) {
	ind.x, ind.y = x, y
}

func (ind *Indicator) Position() (x, y float32) {
	return ind.x, ind.y
}

func (ind *Indicator) Show() {
	ind.shown = true
	ind.Events = append(ind.Events, "show")
}

func (ind *Indicator) Hide() {
	ind.shown = false
	ind.Events = append(ind.Events, "hide")
}

func (ind *Indicator) Fade() {
	ind.shown = false
	ind.Events = append(ind.Events, "fade")
}

func (ind *Indicator) IsPointerShown() bool {
	return ind.shown
}

func (ind *Indicator) SetSpots(displayID choreographer.DisplayID, pointerIDs []int32) {
	cp := append([]int32(nil), pointerIDs...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	ind.spots[displayID] = cp
}

func (ind *Indicator) ClearSpots(displayID choreographer.DisplayID) {
	delete(ind.spots, displayID)
}

func (ind *Indicator) Spots() map[choreographer.DisplayID][]int32 {
	return ind.spots
}

// Factory creates fakeindicator.Indicator values and remembers every one
// it has created, keyed by creation order, so tests can assert on exactly
// which indicators came into existence and when.
type Factory struct {
	Created []*Indicator
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateIndicator implements choreographer.IndicatorFactory.
func (f *Factory) CreateIndicator(kind choreographer.IndicatorKind) choreographer.Indicator {
	ind := &Indicator{kind: kind, spots: make(map[choreographer.DisplayID][]int32)}
	f.Created = append(f.Created, ind)
	return ind
}

// CountOf returns how many indicators of kind have been created so far.
func (f *Factory) CountOf(kind choreographer.IndicatorKind) int {
	n := 0
	for _, ind := range f.Created {
		if ind.kind == kind {
			n++
		}
	}
	return n
}

// Policy wraps a Factory with a recording
// NotifyPointerDisplayIDChanged, giving a complete choreographer.Policy.
type Policy struct {
	*Factory

	// Notifications records every call to NotifyPointerDisplayIDChanged,
	// in order.
	Notifications []Notification
}

// Notification is one recorded call to NotifyPointerDisplayIDChanged.
type Notification struct {
	DisplayID choreographer.DisplayID
	Position  choreographer.Point
}

// NewPolicy returns a Policy backed by a fresh Factory.
func NewPolicy() *Policy {
	return &Policy{Factory: NewFactory()}
}

// NotifyPointerDisplayIDChanged implements choreographer.Policy.
func (p *Policy) NotifyPointerDisplayIDChanged(displayID choreographer.DisplayID, position choreographer.Point) {
	p.Notifications = append(p.Notifications, Notification{DisplayID: displayID, Position: position})
}

// LastNotification returns the most recent notification, if any.
func (p *Policy) LastNotification() (Notification, bool) {
	if len(p.Notifications) == 0 {
		return Notification{}, false
	}
	return p.Notifications[len(p.Notifications)-1], true
}
