package cadview

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 camera fields simultaneously.
// The camera owns its running group and advances it from Camera.Update;
// a button press cancels it.
type TweenGroup struct {
	tweens  [4]*gween.Tween
	count   int
	fields  [4]*float64
	targets [4]float64
	Done    bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. gween works in float32, so finished fields are set to their exact
// float64 targets.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.targets[i]
		} else {
			*g.fields[i] = float64(val)
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.targets[g.count] = to
	g.count++
}

// TweenFocus creates a TweenGroup that moves the camera pivot to center and
// its log radius to radius over duration seconds.
func TweenFocus(c *Camera, center mgl64.Vec3, radius float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.OutCubic
	}
	g := &TweenGroup{}
	g.add(&c.state.Center[0], center[0], duration, fn)
	g.add(&c.state.Center[1], center[1], duration, fn)
	g.add(&c.state.Center[2], center[2], duration, fn)
	g.add(&c.state.Radius, radius, duration, fn)
	return g
}
