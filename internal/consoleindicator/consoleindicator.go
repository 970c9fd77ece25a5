// Package consoleindicator is a minimal Indicator/IndicatorFactory that
// logs every visual transition instead of drawing one. It exists so the
// demo driver has a Policy to hand the choreographer without pulling in a
// real rendering backend, consistent with indicator rendering staying an
// external concern.
package consoleindicator

import (
	"github.com/sirupsen/logrus"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
)

// Indicator logs state changes via a logrus entry tagged with its kind.
type Indicator struct {
	log  *logrus.Entry
	kind choreographer.IndicatorKind

	hasViewport bool
	viewport    choreographer.Viewport

	x, y  float32
	shown bool

	spots map[choreographer.DisplayID][]int32
}

func newIndicator(log *logrus.Entry, kind choreographer.IndicatorKind) *Indicator {
	return &Indicator{
		log:   log.WithField("kind", kind),
		kind:  kind,
		spots: make(map[choreographer.DisplayID][]int32),
	}
}

func (ind *Indicator) SetDisplayViewport(v choreographer.Viewport) {
	ind.hasViewport = true
	ind.viewport = v
	ind.log.WithField("displayId", v.DisplayID).Debug("bound to viewport")
}

func (ind *Indicator) ClearDisplayViewport() {
	ind.hasViewport = false
	ind.log.Debug("unbound from viewport")
}

func (ind *Indicator) DisplayID() choreographer.DisplayID {
	if !ind.hasViewport {
		return choreographer.DisplayNone
	}
	return ind.viewport.DisplayID
}

func (ind *Indicator) SetPosition(x, y float32) {
	ind.x, ind.y = x, y
}

func (ind *Indicator) Position() (x, y float32) {
	return ind.x, ind.y
}

func (ind *Indicator) Show() {
	if !ind.shown {
		ind.log.WithField("pos", [2]float32{ind.x, ind.y}).Debug("shown")
	}
	ind.shown = true
}

func (ind *Indicator) Hide() {
	if ind.shown {
		ind.log.Debug("hidden")
	}
	ind.shown = false
}

func (ind *Indicator) Fade() {
	if ind.shown {
		ind.log.Debug("faded")
	}
	ind.shown = false
}

func (ind *Indicator) IsPointerShown() bool {
	return ind.shown
}

func (ind *Indicator) SetSpots(displayID choreographer.DisplayID, pointerIDs []int32) {
	ind.spots[displayID] = pointerIDs
	ind.log.WithFields(logrus.Fields{"displayId": displayID, "spots": pointerIDs}).Debug("spots updated")
}

func (ind *Indicator) ClearSpots(displayID choreographer.DisplayID) {
	delete(ind.spots, displayID)
	ind.log.WithField("displayId", displayID).Debug("spots cleared")
}

func (ind *Indicator) Spots() map[choreographer.DisplayID][]int32 {
	return ind.spots
}

// Policy implements both choreographer.IndicatorFactory and
// choreographer.Policy by logging everything asked of it.
type Policy struct {
	log *logrus.Entry
}

// NewPolicy returns a Policy that logs through log (nil-safe, defaults to
// the standard logger).
func NewPolicy(log *logrus.Logger) *Policy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Policy{log: log.WithField("component", "console-indicator")}
}

// CreateIndicator implements choreographer.IndicatorFactory.
func (p *Policy) CreateIndicator(kind choreographer.IndicatorKind) choreographer.Indicator {
	p.log.WithField("kind", kind).Info("creating indicator")
	return newIndicator(p.log, kind)
}

// NotifyPointerDisplayIDChanged implements choreographer.Policy.
func (p *Policy) NotifyPointerDisplayIDChanged(displayID choreographer.DisplayID, position choreographer.Point) {
	p.log.WithFields(logrus.Fields{"displayId": displayID, "x": position.X, "y": position.Y}).
		Info("pointer display changed")
}
