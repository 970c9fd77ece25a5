package choreographer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
	"github.com/JunkYard-XD/frameworks-native-13/internal/fakeindicator"
)

func TestMouseEngineAdvanceAccumulatesFromIndicatorPosition(t *testing.T) {
	ind := fakeindicator.New(choreographer.KindMouse)
	ind.SetPosition(40, 40)

	engine := choreographer.NewMouseEngine()
	x, y := engine.Advance(ind, nil, 5, -5)

	assert.Equal(t, float32(45), x)
	assert.Equal(t, float32(35), y)

	gotX, gotY := ind.Position()
	assert.Equal(t, x, gotX)
	assert.Equal(t, y, gotY)
}

func TestMouseEngineAdvanceClampsToViewport(t *testing.T) {
	ind := fakeindicator.New(choreographer.KindMouse)
	vp := choreographer.Viewport{DisplayID: 1, LogicalWidth: 10, LogicalHeight: 10}

	engine := choreographer.NewMouseEngine()
	x, y := engine.Advance(ind, &vp, -100, 100)

	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(9), y)
}
