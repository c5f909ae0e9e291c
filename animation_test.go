package cadview

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestTweenFocus_ReachesExactTarget(t *testing.T) {
	c := NewCamera()
	target := mgl64.Vec3{0.1, 1.0 / 3, -7.77}
	radius := math.Log(12.345)
	g := TweenFocus(c, target, radius, 1, ease.InOutQuad)

	for i := 0; i < 20 && !g.Done; i++ {
		g.Update(0.1)
	}
	assert.True(t, g.Done)
	assert.Equal(t, target, c.Center())
	assert.Equal(t, radius, c.Radius())
}

func TestTweenGroup_DoneFlagTransition(t *testing.T) {
	c := NewCamera()
	g := TweenFocus(c, mgl64.Vec3{1, 0, 0}, 0, 0.5, nil)
	assert.False(t, g.Done)
	g.Update(0.25)
	assert.False(t, g.Done)
	g.Update(0.25)
	assert.True(t, g.Done)

	// no-op once done
	c.SetState(DefaultCameraState())
	g.Update(0.1)
	assert.Equal(t, mgl64.Vec3{}, c.Center())
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	a, b := NewCamera(), NewCamera()
	ga := TweenFocus(a, mgl64.Vec3{10, 0, 0}, 0, 1, ease.Linear)
	gb := TweenFocus(b, mgl64.Vec3{10, 0, 0}, 0, 1, ease.InCubic)
	ga.Update(0.5)
	gb.Update(0.5)
	assert.InDelta(t, 5, a.Center()[0], 1e-5)
	assert.Less(t, b.Center()[0], a.Center()[0])
}
