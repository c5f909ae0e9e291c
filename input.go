package cadview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mouseButtons maps ebiten buttons to camera buttons.
var mouseButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	{ebiten.MouseButton3, MouseButtonBack},
	{ebiten.MouseButton4, MouseButtonForward},
}

// processMouse feeds the real cursor and button edges to the camera.
// Moves are forwarded before button edges so a release applies the
// position of the same frame.
func (v *Viewer) processMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if x != v.cursor.X || y != v.cursor.Y {
		v.cursor = Vec2{X: x, Y: y}
		if v.camera.Mode() != ModeIdle {
			v.camera.PointerMove(x, y)
		}
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			v.camera.PointerButton(x, y, b.btn, true)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			v.camera.PointerButton(x, y, b.btn, false)
		}
	}
}

// processKeys queues the commands of keys pressed this frame.
func (v *Viewer) processKeys() {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			v.cmdQueue = append(v.cmdQueue, b.cmd)
		}
	}
}
