package choreographer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
	"github.com/JunkYard-XD/frameworks-native-13/internal/fakeindicator"
)

const (
	displayA choreographer.DisplayID = 1
	displayB choreographer.DisplayID = 2
)

type recordingListener struct {
	received []choreographer.NotifyArgs
}

func (l *recordingListener) Notify(args choreographer.NotifyArgs) {
	l.received = append(l.received, args)
}

func (l *recordingListener) lastMotion() choreographer.MotionArgs {
	for i := len(l.received) - 1; i >= 0; i-- {
		if m, ok := l.received[i].(choreographer.MotionArgs); ok {
			return m
		}
	}
	panic("no motion event recorded")
}

func newHarness() (*choreographer.Choreographer, *recordingListener, *fakeindicator.Policy) {
	listener := &recordingListener{}
	policy := fakeindicator.NewPolicy()
	c := choreographer.New(listener, policy)
	return c, listener, policy
}

func viewports(ids ...choreographer.DisplayID) []choreographer.Viewport {
	out := make([]choreographer.Viewport, 0, len(ids))
	for _, id := range ids {
		out = append(out, choreographer.Viewport{DisplayID: id, LogicalWidth: 1000, LogicalHeight: 1000})
	}
	return out
}

func mouseDevice(id int32, associated choreographer.DisplayID) choreographer.Device {
	return choreographer.Device{
		DeviceID:            id,
		Sources:             choreographer.SourceMouse | choreographer.SourceMouseRelative,
		AssociatedDisplayID: associated,
	}
}

func touchDevice(id int32, associated choreographer.DisplayID) choreographer.Device {
	return choreographer.Device{
		DeviceID:            id,
		Sources:             choreographer.SourceTouchscreen,
		AssociatedDisplayID: associated,
	}
}

func stylusDevice(id int32, associated choreographer.DisplayID) choreographer.Device {
	return choreographer.Device{
		DeviceID:            id,
		Sources:             choreographer.SourceStylus,
		AssociatedDisplayID: associated,
	}
}

func mouseMotion(deviceID int32, dx, dy float32) choreographer.MotionArgs {
	return choreographer.MotionArgs{
		Source:   choreographer.SourceMouse,
		DeviceID: deviceID,
		Action:   choreographer.ActionMove,
		Pointers: []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolMouse, RelativeX: dx, RelativeY: dy}},
	}
}

func TestMouseMotionCreatesIndicatorLazily(t *testing.T) {
	c, _, policy := newHarness()

	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})
	assert.Equal(t, 0, policy.CountOf(choreographer.KindMouse), "no indicator before any motion")

	c.Notify(mouseMotion(1, 5, 5))
	assert.Equal(t, 1, policy.CountOf(choreographer.KindMouse))
}

func TestMouseEventOccursCreatesIndicatorEvenAtDisplayNone(t *testing.T) {
	// Mirrors the upstream behavior where no default display is ever set
	// yet the first qualifying mouse motion still creates a Mouse
	// indicator, keyed at DisplayNone.
	c, _, policy := newHarness()
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})

	c.Notify(mouseMotion(1, 1, 1))

	require.Equal(t, 1, policy.CountOf(choreographer.KindMouse))
}

func TestMouseMovesPointerAndReturnsNewArgs(t *testing.T) {
	c, listener, policy := newHarness()
	c.SetDisplayViewports(viewports(displayA))
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})

	c.Notify(mouseMotion(1, 10, 20))
	require.Len(t, policy.Created, 1)
	policy.Created[0].SetPosition(100, 100)

	c.Notify(mouseMotion(1, 10, 20))

	m := listener.lastMotion()
	assert.Equal(t, displayA, m.DisplayID)
	assert.Equal(t, float32(110), m.CursorPosition.X)
	assert.Equal(t, float32(120), m.CursorPosition.Y)
}

func TestMouseMotionClampsToViewport(t *testing.T) {
	c, listener, _ := newHarness()
	c.SetDisplayViewports([]choreographer.Viewport{{DisplayID: displayA, LogicalWidth: 50, LogicalHeight: 50}})
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})

	c.Notify(mouseMotion(1, 10000, 10000))

	m := listener.lastMotion()
	assert.Equal(t, float32(49), m.CursorPosition.X)
	assert.Equal(t, float32(49), m.CursorPosition.Y)
}

func TestWhenMouseIsRemovedRemovesIndicator(t *testing.T) {
	c, _, policy := newHarness()
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})
	c.Notify(mouseMotion(1, 1, 1))
	require.Equal(t, 1, policy.CountOf(choreographer.KindMouse))

	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{}})

	assert.False(t, c.CheckInvariants() != nil, "invariants still hold after removal")

	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})
	c.Notify(mouseMotion(1, 1, 1))
	assert.Equal(t, 2, policy.CountOf(choreographer.KindMouse), "the removed indicator is gone, so the next motion creates a fresh one")
}

func TestAssociatedMouseIsolatedFromDefaultDisplay(t *testing.T) {
	c, _, policy := newHarness()
	c.SetDisplayViewports(viewports(displayA, displayB))
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{
		mouseDevice(1, choreographer.DisplayNone),
		mouseDevice(2, displayB),
	}})

	c.Notify(mouseMotion(1, 1, 1))
	c.Notify(mouseMotion(2, 1, 1))

	assert.Equal(t, 2, policy.CountOf(choreographer.KindMouse), "default and associated mice get distinct indicators")
}

func TestDefaultMouseDisplayChangeNotifiesPolicy(t *testing.T) {
	c, _, policy := newHarness()
	c.SetDisplayViewports(viewports(displayA, displayB))
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})

	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(mouseMotion(1, 1, 1))

	last, ok := policy.LastNotification()
	require.True(t, ok)
	assert.Equal(t, displayA, last.DisplayID)

	c.SetDefaultMouseDisplayID(displayB)
	c.Notify(mouseMotion(1, 1, 1))

	last, ok = policy.LastNotification()
	require.True(t, ok)
	assert.Equal(t, displayB, last.DisplayID)
}

func TestMouseRelativeUnderCaptureReportsInvalidPosition(t *testing.T) {
	c, listener, _ := newHarness()
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})
	c.Notify(choreographer.PointerCaptureChangedArgs{Request: choreographer.PointerCaptureRequest{Enable: true}})

	m := mouseMotion(1, 1, 1)
	m.Source = choreographer.SourceMouseRelative
	c.Notify(m)

	out := listener.lastMotion()
	assert.Equal(t, choreographer.DisplayNone, out.DisplayID)
	assert.True(t, choreographer.IsInvalidCursorPosition(out.CursorPosition))
}

func TestPointerCaptureHidesMouseIndicators(t *testing.T) {
	c, _, policy := newHarness()
	c.SetDefaultMouseDisplayID(displayA)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{mouseDevice(1, choreographer.DisplayNone)}})
	c.Notify(mouseMotion(1, 1, 1))
	require.Len(t, policy.Created, 1)
	assert.True(t, policy.Created[0].IsPointerShown())

	c.Notify(choreographer.PointerCaptureChangedArgs{Request: choreographer.PointerCaptureRequest{Enable: true}})

	assert.False(t, policy.Created[0].IsPointerShown())
}

func TestTouchSpotsLifecycle(t *testing.T) {
	c, _, policy := newHarness()
	c.SetShowTouchesEnabled(true)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{touchDevice(5, displayA)}})

	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceTouchscreen,
		DeviceID:  5,
		DisplayID: displayA,
		Action:    choreographer.ActionDown,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolFinger}},
	})
	require.Len(t, policy.Created, 1)
	assert.Equal(t, []int32{0}, policy.Created[0].Spots()[displayA])

	c.Notify(choreographer.MotionArgs{
		Source:      choreographer.SourceTouchscreen,
		DeviceID:    5,
		DisplayID:   displayA,
		Action:      choreographer.ActionPointerDown,
		ActionIndex: 1,
		Pointers: []choreographer.PointerData{
			{ID: 0, ToolType: choreographer.ToolFinger},
			{ID: 1, ToolType: choreographer.ToolFinger},
		},
	})
	assert.Equal(t, []int32{0, 1}, policy.Created[0].Spots()[displayA])

	c.Notify(choreographer.MotionArgs{
		Source:      choreographer.SourceTouchscreen,
		DeviceID:    5,
		DisplayID:   displayA,
		Action:      choreographer.ActionPointerUp,
		ActionIndex: 1,
		Pointers: []choreographer.PointerData{
			{ID: 0, ToolType: choreographer.ToolFinger},
			{ID: 1, ToolType: choreographer.ToolFinger},
		},
	})
	assert.Equal(t, []int32{0}, policy.Created[0].Spots()[displayA])

	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceTouchscreen,
		DeviceID:  5,
		DisplayID: displayA,
		Action:    choreographer.ActionUp,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolFinger}},
	})
	assert.Empty(t, policy.Created[0].Spots()[displayA], "the last pointer lifting leaves an empty set, not a removed entry")
}

func TestTouchDeviceResetClearsSpotsEntirely(t *testing.T) {
	c, _, policy := newHarness()
	c.SetShowTouchesEnabled(true)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{touchDevice(5, displayA)}})
	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceTouchscreen,
		DeviceID:  5,
		DisplayID: displayA,
		Action:    choreographer.ActionDown,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolFinger}},
	})
	require.Len(t, policy.Created, 1)
	require.Contains(t, policy.Created[0].Spots(), displayA)

	c.Notify(choreographer.DeviceResetArgs{DeviceID: 5})

	_, present := policy.Created[0].Spots()[displayA]
	assert.False(t, present, "reset must delete the map entry, not empty it")
}

func TestShowTouchesDisabledDropsTouchIndicators(t *testing.T) {
	c, _, policy := newHarness()
	c.SetShowTouchesEnabled(true)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{touchDevice(5, displayA)}})
	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceTouchscreen,
		DeviceID:  5,
		DisplayID: displayA,
		Action:    choreographer.ActionDown,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolFinger}},
	})
	require.Equal(t, 1, policy.CountOf(choreographer.KindTouch))

	c.SetShowTouchesEnabled(false)

	require.NoError(t, c.CheckInvariants())
}

func TestStylusHoverShowsAndFades(t *testing.T) {
	c, _, policy := newHarness()
	c.SetStylusPointerIconEnabled(true)
	c.SetDisplayViewports(viewports(displayA))
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{stylusDevice(9, displayA)}})

	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceStylus,
		DeviceID:  9,
		DisplayID: displayA,
		Action:    choreographer.ActionHoverEnter,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolStylus, X: 5, Y: 7}},
	})
	require.Len(t, policy.Created, 1)
	assert.True(t, policy.Created[0].IsPointerShown())
	x, y := policy.Created[0].Position()
	assert.Equal(t, float32(5), x)
	assert.Equal(t, float32(7), y)

	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceStylus,
		DeviceID:  9,
		DisplayID: displayA,
		Action:    choreographer.ActionHoverExit,
	})
	assert.False(t, policy.Created[0].IsPointerShown())
}

func TestStylusDeviceResetFadesWithoutDestroying(t *testing.T) {
	c, _, policy := newHarness()
	c.SetStylusPointerIconEnabled(true)
	c.Notify(choreographer.InputDevicesChangedArgs{Devices: []choreographer.Device{stylusDevice(9, displayA)}})
	c.Notify(choreographer.MotionArgs{
		Source:    choreographer.SourceStylus,
		DeviceID:  9,
		DisplayID: displayA,
		Action:    choreographer.ActionHoverEnter,
		Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolStylus}},
	})
	require.Equal(t, 1, policy.CountOf(choreographer.KindStylus))

	c.Notify(choreographer.DeviceResetArgs{DeviceID: 9})

	assert.Equal(t, 1, policy.CountOf(choreographer.KindStylus), "reset fades, it does not destroy")
	assert.False(t, policy.Created[0].IsPointerShown())
}

func TestOtherEventKindsForwardUnchanged(t *testing.T) {
	c, listener, _ := newHarness()

	key := choreographer.KeyArgs{DeviceID: 3, KeyCode: 42}
	c.Notify(key)

	require.Len(t, listener.received, 1)
	assert.Equal(t, key, listener.received[0])
}
