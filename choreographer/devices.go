package choreographer

import "gitlab.com/mstarongitlab/goutils/sliceutils"

// DeviceRegistry tracks the currently live input devices, their
// capabilities and their enumeration-time display association. Its
// lifetime model mirrors wlr_seat's input-device bookkeeping in the
// teacher: a device exists exactly while it appears in the most recent
// device-list-changed notification.
type DeviceRegistry struct {
	devices map[int32]Device
}

// NewDeviceRegistry returns an empty registry.
func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{devices: make(map[int32]Device)}
}

// Replace installs newList as the current device set and returns the
// devices that were present before and are absent from newList.
func (r *DeviceRegistry) Replace(newList []Device) []Device {
	next := make(map[int32]Device, len(newList))
	for _, d := range newList {
		next[d.DeviceID] = d
	}

	removed := make([]Device, 0)
	for id, d := range r.devices {
		if _, stillPresent := next[id]; !stillPresent {
			removed = append(removed, d)
		}
	}

	r.devices = next
	return removed
}

// Get looks up a device by id.
func (r *DeviceRegistry) Get(id int32) (Device, bool) {
	d, ok := r.devices[id]
	return d, ok
}

// has reports whether a device with the given id is currently live.
func (r *DeviceRegistry) has(id int32) bool {
	_, ok := r.devices[id]
	return ok
}

// All returns every currently live device, order unspecified.
func (r *DeviceRegistry) All() []Device {
	out := make([]Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out
}

// WithSource returns the live devices carrying any bit of want.
func (r *DeviceRegistry) WithSource(want Source) []Device {
	return sliceutils.Filter(r.All(), func(d Device) bool {
		return d.HasSource(want)
	})
}
