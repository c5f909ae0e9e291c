package cadview

type pointerAction uint8

const (
	pointerPress pointerAction = iota
	pointerMove
	pointerRelease
)

// syntheticPointerEvent is one injected pointer event in window coordinates.
type syntheticPointerEvent struct {
	x, y   float64
	action pointerAction
	button MouseButton
}

// InjectPress queues a button press at (x, y). Queued events are consumed
// one per frame, and real mouse input is ignored while any are pending.
func (v *Viewer) InjectPress(x, y float64, button MouseButton) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerPress, button: button})
}

// InjectMove queues a cursor move to (x, y).
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerMove})
}

// InjectRelease queues a button release at (x, y).
func (v *Viewer) InjectRelease(x, y float64, button MouseButton) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, action: pointerRelease, button: button})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, button MouseButton, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY, button)
}

// InjectCommand queues a command as if its key had been pressed.
func (v *Viewer) InjectCommand(cmd Command) {
	v.cmdQueue = append(v.cmdQueue, cmd)
}

// InjectKey queues the command bound to the named key ("F", "P", "R" or
// "Escape").
func (v *Viewer) InjectKey(name string) error {
	cmd, err := commandForKey(name)
	if err != nil {
		return err
	}
	v.InjectCommand(cmd)
	return nil
}

// processInjectedInput pops one event from the queue and feeds it to the
// camera. Returns true if an event was consumed.
func (v *Viewer) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	v.cursor = Vec2{X: evt.x, Y: evt.y}
	switch evt.action {
	case pointerPress:
		v.camera.PointerButton(evt.x, evt.y, evt.button, true)
	case pointerMove:
		v.camera.PointerMove(evt.x, evt.y)
	case pointerRelease:
		v.camera.PointerButton(evt.x, evt.y, evt.button, false)
	}
	return true
}
