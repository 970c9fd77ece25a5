package choreographer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
)

func TestDisplayTopologyEqualDetectsNoChange(t *testing.T) {
	topo := choreographer.NewDisplayTopology()
	vps := []choreographer.Viewport{{DisplayID: 1, LogicalWidth: 100, LogicalHeight: 100}}
	topo.SetViewports(vps)

	assert.True(t, topo.Equal(vps))
	assert.False(t, topo.Equal([]choreographer.Viewport{{DisplayID: 1, LogicalWidth: 200, LogicalHeight: 100}}))
	assert.False(t, topo.Equal(nil))
}

func TestDisplayTopologyViewportLookup(t *testing.T) {
	topo := choreographer.NewDisplayTopology()
	topo.SetViewports([]choreographer.Viewport{{DisplayID: 1, LogicalWidth: 100, LogicalHeight: 50}})

	vp, ok := topo.Viewport(1)
	assert.True(t, ok)
	assert.Equal(t, int32(100), vp.LogicalWidth)

	_, ok = topo.Viewport(2)
	assert.False(t, ok)
}
