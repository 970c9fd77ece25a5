package choreographer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
)

func TestDeviceRegistryReplaceReturnsRemoved(t *testing.T) {
	reg := choreographer.NewDeviceRegistry()
	reg.Replace([]choreographer.Device{
		{DeviceID: 1, Sources: choreographer.SourceMouse},
		{DeviceID: 2, Sources: choreographer.SourceTouchscreen},
	})

	removed := reg.Replace([]choreographer.Device{
		{DeviceID: 1, Sources: choreographer.SourceMouse},
	})

	require.Len(t, removed, 1)
	assert.Equal(t, int32(2), removed[0].DeviceID)

	_, ok := reg.Get(2)
	assert.False(t, ok)
	_, ok = reg.Get(1)
	assert.True(t, ok)
}

func TestDeviceRegistryWithSourceFilters(t *testing.T) {
	reg := choreographer.NewDeviceRegistry()
	reg.Replace([]choreographer.Device{
		{DeviceID: 1, Sources: choreographer.SourceMouse},
		{DeviceID: 2, Sources: choreographer.SourceTouchscreen},
		{DeviceID: 3, Sources: choreographer.SourceMouse | choreographer.SourceMouseRelative},
	})

	mice := reg.WithSource(choreographer.SourceMouse)
	assert.Len(t, mice, 2)
}
