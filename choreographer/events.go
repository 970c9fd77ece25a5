package choreographer

// EventKind discriminates the NotifyArgs variants the choreographer can
// receive from the upstream reader/classifier stage.
type EventKind int

const (
	EventInputDevicesChanged EventKind = iota
	EventConfigurationChanged
	EventKey
	EventMotion
	EventSensor
	EventSwitch
	EventDeviceReset
	EventPointerCaptureChanged
	EventVibratorState
)

// NotifyArgs is the sealed interface implemented by every upstream event
// kind. It mirrors the tagged-variant NotifyArgs described in the
// choreographer's listener contract.
type NotifyArgs interface {
	Kind() EventKind
}

// InputDevicesChangedArgs reports the complete, replacing list of live
// input devices.
type InputDevicesChangedArgs struct {
	SeqID   uint32
	Devices []Device
}

func (InputDevicesChangedArgs) Kind() EventKind { return EventInputDevicesChanged }

// ConfigurationChangedArgs is forwarded unchanged.
type ConfigurationChangedArgs struct {
	SeqID     uint32
	EventTime int64
}

func (ConfigurationChangedArgs) Kind() EventKind { return EventConfigurationChanged }

// KeyArgs is forwarded unchanged.
type KeyArgs struct {
	SeqID     uint32
	EventTime int64
	DeviceID  int32
	Source    Source
	Action    int32
	KeyCode   int32
}

func (KeyArgs) Kind() EventKind { return EventKey }

// MotionArgs carries one motion sample from a device. The choreographer
// may rewrite Pointers, DisplayID and CursorPosition before forwarding it.
type MotionArgs struct {
	SeqID          uint32
	EventTime      int64
	Source         Source
	DeviceID       int32
	DisplayID      DisplayID
	Action         MotionAction
	ActionIndex    int
	Pointers       []PointerData
	CursorPosition Point
}

func (MotionArgs) Kind() EventKind { return EventMotion }

// SensorArgs is forwarded unchanged.
type SensorArgs struct {
	SeqID     uint32
	EventTime int64
	DeviceID  int32
}

func (SensorArgs) Kind() EventKind { return EventSensor }

// SwitchArgs is forwarded unchanged.
type SwitchArgs struct {
	SeqID     uint32
	EventTime int64
}

func (SwitchArgs) Kind() EventKind { return EventSwitch }

// DeviceResetArgs reports that a device's in-progress gesture/stream was
// reset, e.g. after a disconnect/reconnect blip.
type DeviceResetArgs struct {
	SeqID     uint32
	EventTime int64
	DeviceID  int32
}

func (DeviceResetArgs) Kind() EventKind { return EventDeviceReset }

// PointerCaptureRequest is the payload of PointerCaptureChangedArgs.
type PointerCaptureRequest struct {
	Enable bool
	Seq    uint32
}

// PointerCaptureChangedArgs reports a change to pointer-capture mode.
type PointerCaptureChangedArgs struct {
	SeqID     uint32
	EventTime int64
	Request   PointerCaptureRequest
}

func (PointerCaptureChangedArgs) Kind() EventKind { return EventPointerCaptureChanged }

// VibratorStateArgs is forwarded unchanged.
type VibratorStateArgs struct {
	SeqID     uint32
	EventTime int64
	DeviceID  int32
	IsOn      bool
}

func (VibratorStateArgs) Kind() EventKind { return EventVibratorState }

// InnerListener is the downstream input dispatcher the choreographer
// forwards every (possibly rewritten) event to.
type InnerListener interface {
	Notify(args NotifyArgs)
}

// Policy is the narrow downward contract the choreographer uses to create
// indicators and to report which display currently hosts the default
// mouse pointer.
type Policy interface {
	// CreateIndicator creates a fresh Indicator of the given kind. The
	// caller (the choreographer, via IndicatorRegistry) becomes the sole
	// owner. At most one call may be outstanding at a time.
	CreateIndicator(kind IndicatorKind) Indicator
	// NotifyPointerDisplayIDChanged is called whenever the display hosting
	// the default mouse pointer changes, including transitions to
	// DisplayNone. It runs synchronously on the caller's stack.
	NotifyPointerDisplayIDChanged(displayID DisplayID, position Point)
}
