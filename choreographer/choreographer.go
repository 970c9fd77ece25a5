package choreographer

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Choreographer is the orchestrator described in the package doc: it
// consumes upstream input events, reconciles which pointer indicators
// should exist, advances mouse cursor state, rewrites motion events to
// match, and forwards everything to the inner listener. It also emits
// pointer-display notifications to the policy.
//
// A Choreographer is not safe for concurrent use: exactly like wlr_cursor
// in the teacher, all of its state is meant to be touched from one input
// thread.
type Choreographer struct {
	inner  InnerListener
	policy Policy
	log    *logrus.Logger

	topology   *DisplayTopology
	devices    *DeviceRegistry
	indicators *IndicatorRegistry
	mouse      *MouseEngine

	defaultMouseDisplayID DisplayID
	showTouchesEnabled    bool
	stylusIconEnabled     bool
	pointerCaptureEnabled bool

	lastNotifiedPointerDisplayID *DisplayID
}

// Option customizes a Choreographer at construction time.
type Option func(*Choreographer)

// WithLogger overrides the default (package-level) logger. A nil logger
// keeps the default.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Choreographer) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a Choreographer that forwards to inner and calls back into
// policy for indicator creation and pointer-display notifications.
func New(inner InnerListener, policy Policy, opts ...Option) *Choreographer {
	c := &Choreographer{
		inner:                 inner,
		policy:                policy,
		log:                   logrus.StandardLogger(),
		topology:              NewDisplayTopology(),
		devices:               NewDeviceRegistry(),
		mouse:                 NewMouseEngine(),
		defaultMouseDisplayID: DisplayNone,
	}
	c.indicators = NewIndicatorRegistry(policy)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify dispatches one upstream event by kind, reconciling indicator
// state as needed, and forwards the (possibly rewritten) event downstream.
func (c *Choreographer) Notify(args NotifyArgs) {
	switch a := args.(type) {
	case InputDevicesChangedArgs:
		c.handleDeviceListChanged(a)
		c.inner.Notify(args)
	case MotionArgs:
		c.inner.Notify(c.handleMotion(a))
	case DeviceResetArgs:
		c.handleDeviceReset(a)
		c.inner.Notify(args)
	case PointerCaptureChangedArgs:
		c.handlePointerCaptureChanged(a)
		c.inner.Notify(args)
	default:
		c.inner.Notify(args)
	}
}

// SetDisplayViewports replaces the display topology wholesale and
// reconciles viewport bindings on existing indicators.
func (c *Choreographer) SetDisplayViewports(viewports []Viewport) {
	if c.topology.Equal(viewports) {
		return
	}
	c.topology.SetViewports(viewports)
	c.reconcileViewports()
	c.notifyPointerDisplayIfChanged()
}

// SetDefaultMouseDisplayID changes which display hosts the cursor for
// mice with no explicit device association.
func (c *Choreographer) SetDefaultMouseDisplayID(id DisplayID) {
	if id == c.defaultMouseDisplayID {
		return
	}
	c.defaultMouseDisplayID = id
	c.reconcileMouseIndicators()
	c.reconcileViewports()
	c.notifyPointerDisplayIfChanged()
}

// SetShowTouchesEnabled toggles whether touch contact spots are drawn.
func (c *Choreographer) SetShowTouchesEnabled(enabled bool) {
	if c.showTouchesEnabled == enabled {
		return
	}
	c.showTouchesEnabled = enabled
	if !enabled {
		c.dropAll(KindTouch)
	}
}

// SetStylusPointerIconEnabled toggles whether the stylus hover icon is
// drawn.
func (c *Choreographer) SetStylusPointerIconEnabled(enabled bool) {
	if c.stylusIconEnabled == enabled {
		return
	}
	c.stylusIconEnabled = enabled
	if !enabled {
		c.dropAll(KindStylus)
	}
}

func (c *Choreographer) dropAll(kind IndicatorKind) {
	for _, key := range c.indicators.Keys(kind) {
		c.log.WithFields(logrus.Fields{"kind": kind, "key": key}).Debug("dropping disqualified indicator")
		c.indicators.Drop(key)
	}
}

// --- device list / reset / capture -----------------------------------

func (c *Choreographer) handleDeviceListChanged(a InputDevicesChangedArgs) {
	removed := c.devices.Replace(a.Devices)
	for _, dev := range removed {
		if dev.HasSource(SourceTouchscreen) {
			c.indicators.Drop(TouchKey(dev.DeviceID))
		}
		if dev.HasSource(SourceStylus) {
			c.indicators.Drop(StylusKey(dev.DeviceID))
		}
	}
	c.reconcileMouseIndicators()
	c.reconcileViewports()
	c.notifyPointerDisplayIfChanged()
}

func (c *Choreographer) handleDeviceReset(a DeviceResetArgs) {
	if ind, ok := c.indicators.Get(TouchKey(a.DeviceID)); ok {
		if dev, known := c.devices.Get(a.DeviceID); known && dev.AssociatedDisplayID != DisplayNone {
			ind.ClearSpots(dev.AssociatedDisplayID)
		} else {
			for d := range ind.Spots() {
				ind.ClearSpots(d)
			}
		}
	}
	if ind, ok := c.indicators.Get(StylusKey(a.DeviceID)); ok {
		ind.Fade()
	}
}

func (c *Choreographer) handlePointerCaptureChanged(a PointerCaptureChangedArgs) {
	c.pointerCaptureEnabled = a.Request.Enable
	if c.pointerCaptureEnabled {
		c.indicators.ForEach(KindMouse, func(_ IndicatorKey, ind Indicator) {
			ind.Hide()
		})
	}
}

// --- motion -------------------------------------------------------------

func (c *Choreographer) handleMotion(a MotionArgs) MotionArgs {
	switch {
	case a.Source.Has(SourceMouse) || a.Source.Has(SourceMouseRelative):
		return c.handleMouseMotion(a)
	case a.Source.Has(SourceTouchscreen) && a.Action.isTouchSpotAction():
		c.handleTouchSpots(a)
		return a
	case a.Source.Has(SourceStylus) && a.Action.isHoverAction():
		c.handleStylusHover(a)
		return a
	default:
		return a
	}
}

func (c *Choreographer) handleMouseMotion(a MotionArgs) MotionArgs {
	if c.pointerCaptureEnabled && a.Source.Has(SourceMouseRelative) {
		a.DisplayID = DisplayNone
		a.CursorPosition = InvalidCursorPosition
		return a
	}

	target := c.defaultMouseDisplayID
	if dev, known := c.devices.Get(a.DeviceID); known && dev.AssociatedDisplayID != DisplayNone {
		target = dev.AssociatedDisplayID
	}

	key := MouseKey(target)
	ind := c.indicators.Ensure(key, KindMouse)
	c.bindMouseViewport(key, target)

	var dx, dy float32
	if len(a.Pointers) > 0 {
		dx, dy = a.Pointers[0].RelativeX, a.Pointers[0].RelativeY
	}
	vp, hasVP := c.indicators.Viewport(key)
	var vpPtr *Viewport
	if hasVP {
		vpPtr = &vp
	}
	x, y := c.mouse.Advance(ind, vpPtr, dx, dy)
	ind.Show()

	a.DisplayID = target
	a.CursorPosition = Point{X: x, Y: y}
	if len(a.Pointers) > 0 {
		a.Pointers[0].X = x
		a.Pointers[0].Y = y
	}

	c.notifyPointerDisplayIfChanged()
	return a
}

func (c *Choreographer) bindMouseViewport(key IndicatorKey, target DisplayID) {
	if vp, ok := c.topology.Viewport(target); ok {
		c.indicators.AttachViewport(key, vp)
	} else {
		c.indicators.DetachViewport(key)
	}
}

func (c *Choreographer) handleTouchSpots(a MotionArgs) {
	if !c.showTouchesEnabled {
		return
	}
	key := TouchKey(a.DeviceID)
	ind := c.indicators.Ensure(key, KindTouch)

	if dev, known := c.devices.Get(a.DeviceID); known {
		if vp, ok := c.topology.Viewport(dev.AssociatedDisplayID); ok {
			c.indicators.AttachViewport(key, vp)
		} else {
			c.indicators.DetachViewport(key)
		}
	}

	display := a.DisplayID
	set := make(map[int32]struct{})
	for _, id := range ind.Spots()[display] {
		set[id] = struct{}{}
	}

	switch a.Action {
	case ActionDown:
		if len(a.Pointers) > 0 {
			set[a.Pointers[0].ID] = struct{}{}
		}
	case ActionPointerDown:
		if a.ActionIndex < len(a.Pointers) {
			set[a.Pointers[a.ActionIndex].ID] = struct{}{}
		}
	case ActionPointerUp:
		if a.ActionIndex < len(a.Pointers) {
			delete(set, a.Pointers[a.ActionIndex].ID)
		}
	case ActionUp, ActionCancel:
		if len(a.Pointers) > 0 {
			delete(set, a.Pointers[0].ID)
		}
	case ActionMove:
		// positions only; membership unchanged.
	}

	ids := make([]int32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	ind.SetSpots(display, ids)
}

func (c *Choreographer) handleStylusHover(a MotionArgs) {
	if !c.stylusIconEnabled {
		return
	}
	key := StylusKey(a.DeviceID)

	switch a.Action {
	case ActionHoverEnter, ActionHoverMove:
		ind := c.indicators.Ensure(key, KindStylus)
		if dev, known := c.devices.Get(a.DeviceID); known {
			if vp, ok := c.topology.Viewport(dev.AssociatedDisplayID); ok {
				c.indicators.AttachViewport(key, vp)
			} else {
				c.indicators.DetachViewport(key)
			}
		}
		if len(a.Pointers) > 0 {
			ind.SetPosition(a.Pointers[0].X, a.Pointers[0].Y)
		}
		ind.Show()
	case ActionHoverExit:
		if ind, ok := c.indicators.Get(key); ok {
			ind.Fade()
		}
	}
}

// --- reconciliation ------------------------------------------------------

// mouseTargetDisplay returns the display a mouse device's cursor lands
// on: its explicit association, or the default mouse display.
func (c *Choreographer) mouseTargetDisplay(dev Device) DisplayID {
	if dev.AssociatedDisplayID != DisplayNone {
		return dev.AssociatedDisplayID
	}
	return c.defaultMouseDisplayID
}

func (c *Choreographer) mouseDisplayStillNeeded(d DisplayID) bool {
	for _, dev := range c.devices.WithSource(SourceMouse | SourceMouseRelative) {
		if c.mouseTargetDisplay(dev) == d {
			return true
		}
	}
	return false
}

// reconcileMouseIndicators drops every Mouse(d) entry no live mouse
// device targets any more.
func (c *Choreographer) reconcileMouseIndicators() {
	for _, key := range c.indicators.Keys(KindMouse) {
		if !c.mouseDisplayStillNeeded(key.DisplayID) {
			c.log.WithField("displayId", key.DisplayID).Debug("dropping mouse indicator no device targets")
			c.indicators.Drop(key)
		}
	}
}

// reconcileViewports re-attaches/detaches viewports on every live Mouse
// and Stylus entry to match the current topology and device associations.
func (c *Choreographer) reconcileViewports() {
	for _, key := range c.indicators.Keys(KindMouse) {
		c.bindMouseViewport(key, key.DisplayID)
	}
	for _, key := range c.indicators.Keys(KindStylus) {
		dev, known := c.devices.Get(key.DeviceID)
		if !known {
			c.indicators.DetachViewport(key)
			continue
		}
		if vp, ok := c.topology.Viewport(dev.AssociatedDisplayID); ok {
			c.indicators.AttachViewport(key, vp)
		} else {
			c.indicators.DetachViewport(key)
		}
	}
}

// notifyPointerDisplayIfChanged recomputes the displayId the policy should
// believe the default mouse pointer is currently on, and notifies it
// exactly when that value changed since the last notification.
func (c *Choreographer) notifyPointerDisplayIfChanged() {
	reported := DisplayNone
	pos := Point{}
	if ind, ok := c.indicators.Get(MouseKey(c.defaultMouseDisplayID)); ok {
		reported = ind.DisplayID()
		pos.X, pos.Y = ind.Position()
	}

	if c.lastNotifiedPointerDisplayID != nil && *c.lastNotifiedPointerDisplayID == reported {
		return
	}
	c.log.WithField("displayId", reported).Debug("notifying pointer display id changed")
	c.policy.NotifyPointerDisplayIDChanged(reported, pos)
	c.lastNotifiedPointerDisplayID = &reported
}

// CheckInvariants re-derives and checks the invariants that must hold
// after any public operation returns. It is intended for tests and for
// debug builds of the demo driver, not for the hot path.
func (c *Choreographer) CheckInvariants() error {
	for _, key := range c.indicators.Keys(KindTouch) {
		if !c.devices.has(key.DeviceID) {
			return fmt.Errorf("invariant 1 violated: touch indicator %v has no live device", key)
		}
	}
	for _, key := range c.indicators.Keys(KindStylus) {
		if !c.devices.has(key.DeviceID) {
			return fmt.Errorf("invariant 1 violated: stylus indicator %v has no live device", key)
		}
	}

	for _, key := range c.indicators.Keys(KindMouse) {
		if key.DisplayID != c.defaultMouseDisplayID && !c.mouseDisplayStillNeeded(key.DisplayID) {
			return fmt.Errorf("invariant 2 violated: mouse indicator %v is neither default nor targeted", key)
		}
	}

	if c.pointerCaptureEnabled {
		var err error
		c.indicators.ForEach(KindMouse, func(key IndicatorKey, ind Indicator) {
			if ind.IsPointerShown() {
				err = fmt.Errorf("invariant 3 violated: mouse indicator %v visible under capture", key)
			}
		})
		if err != nil {
			return err
		}
	}

	if !c.showTouchesEnabled && len(c.indicators.Keys(KindTouch)) != 0 {
		return fmt.Errorf("invariant 4 violated: touch indicators exist while disabled")
	}
	if !c.stylusIconEnabled && len(c.indicators.Keys(KindStylus)) != 0 {
		return fmt.Errorf("invariant 5 violated: stylus indicators exist while disabled")
	}

	for _, key := range c.indicators.Keys(KindMouse) {
		_, hasVP := c.indicators.Viewport(key)
		_, inTopology := c.topology.Viewport(key.DisplayID)
		if hasVP != inTopology {
			return fmt.Errorf("invariant 6 violated: mouse indicator %v viewport binding mismatch", key)
		}
	}
	for _, kind := range []IndicatorKind{KindTouch, KindStylus} {
		for _, key := range c.indicators.Keys(kind) {
			_, hasVP := c.indicators.Viewport(key)
			inTopology := false
			if dev, known := c.devices.Get(key.DeviceID); known {
				_, inTopology = c.topology.Viewport(dev.AssociatedDisplayID)
			}
			if hasVP != inTopology {
				return fmt.Errorf("invariant 6 violated: %v indicator %v viewport binding mismatch", kind, key)
			}
		}
	}

	return nil
}
