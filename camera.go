package cadview

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

const (
	zoomSpeed   = 2.0 // log-radius change per viewport height of drag
	rotateSpeed = 2.5 // radians per viewport width/height of drag
	focusScale  = 1.5 // orbit distance as a multiple of the volume diagonal
)

// Camera is an orbit camera driven by pointer drags. While a button is
// held, every update is computed from a snapshot of the state and cursor
// taken at press time.
type Camera struct {
	state CameraState

	mode        InteractionMode
	button      MouseButton // button that started the current interaction
	saved       CameraState
	savedCursor Vec2

	anim         *TweenGroup
	onModeChange []func(CameraEvent)
}

// NewCamera creates a camera with the default state.
func NewCamera() *Camera {
	return &Camera{state: DefaultCameraState()}
}

// State returns a copy of the current camera state.
func (c *Camera) State() CameraState {
	return c.state
}

// SetState replaces the persisted fields (center, axis, radius) of the
// camera state. Window size and scene framing are kept.
func (c *Camera) SetState(st CameraState) {
	c.state.Center = st.Center
	c.state.Axis = st.Axis
	c.state.Radius = st.Radius
}

// SetFromString restores center, axis and radius from a text encoding.
// On error the camera is unchanged.
func (c *Camera) SetFromString(text string) error {
	st, err := ParseCameraState(text)
	if err != nil {
		return err
	}
	c.SetState(st)
	return nil
}

// String returns the text encoding of the camera state.
func (c *Camera) String() string {
	return c.state.String()
}

// Mode returns the current interaction mode.
func (c *Camera) Mode() InteractionMode {
	return c.mode
}

// Center returns the orbit pivot.
func (c *Camera) Center() mgl64.Vec3 {
	return c.state.Center
}

// Axis returns the camera frame (right, up, view direction columns).
func (c *Camera) Axis() mgl64.Mat3 {
	return c.state.Axis
}

// Radius returns the log-scaled orbit distance.
func (c *Camera) Radius() float64 {
	return c.state.Radius
}

// Distance returns the linear orbit distance.
func (c *Camera) Distance() float64 {
	return c.state.Distance()
}

// SetRadius sets the linear orbit distance; it is stored as its logarithm.
func (c *Camera) SetRadius(distance float64) {
	c.state.Radius = math.Log(distance)
}

// SetWindowSize records the viewport size in pixels. Sizes below one pixel
// are clamped to one so drag normalization never divides by zero.
func (c *Camera) SetWindowSize(w, h int) {
	c.state.WindowW = max(w, 1)
	c.state.WindowH = max(h, 1)
}

// WindowSize returns the viewport size in pixels.
func (c *Camera) WindowSize() (w, h int) {
	return c.state.WindowW, c.state.WindowH
}

// OnModeChange registers an observer for interaction start/end and focus events.
func (c *Camera) OnModeChange(fn func(CameraEvent)) {
	c.onModeChange = append(c.onModeChange, fn)
}

func (c *Camera) emit(typ CameraEventType, button MouseButton, cursor Vec2) {
	if len(c.onModeChange) == 0 {
		return
	}
	ev := CameraEvent{Type: typ, Mode: c.mode, Button: button, Cursor: cursor, State: c.state}
	for _, fn := range c.onModeChange {
		fn(ev)
	}
}

// --- Focus ---

// focusTarget computes the state a focus on volume would produce without
// mutating the camera.
func (c *Camera) focusTarget(volume BBox) (CameraState, error) {
	if volume.IsEmpty() {
		return CameraState{}, fmt.Errorf("focus on empty volume: %w", ErrInvalidPrecondition)
	}
	diag := volume.Size().Len()
	sceneRadius := diag / 2
	if !(sceneRadius > 0) || math.IsInf(sceneRadius, 0) {
		return CameraState{}, fmt.Errorf("focus on volume %v: scene radius %g must be positive: %w",
			volume, sceneRadius, ErrInvalidPrecondition)
	}
	st := c.state
	st.Radius = math.Log(diag * focusScale)
	st.Center = volume.Center()
	st.SceneCenter = volume.Center()
	st.SceneRadius = sceneRadius
	return st, nil
}

// Focus frames volume: the pivot moves to its center, the distance becomes
// 1.5 times its diagonal and the clipping planes adapt to it. It fails with
// ErrInvalidPrecondition for an empty or zero-size volume, leaving the
// camera unchanged.
func (c *Camera) Focus(volume BBox) error {
	st, err := c.focusTarget(volume)
	if err != nil {
		return err
	}
	c.anim = nil
	c.state = st
	logger.Debug("camera focused", "center", st.Center, "distance", st.Distance(), "scene_radius", st.SceneRadius)
	c.emit(CameraFocused, 0, c.savedCursor)
	return nil
}

// FocusAnimated is Focus with the pivot and distance tweened over duration
// seconds. Scene framing is applied immediately. A zero duration focuses
// instantly.
func (c *Camera) FocusAnimated(volume BBox, duration float32, fn ease.TweenFunc) error {
	if duration <= 0 {
		return c.Focus(volume)
	}
	st, err := c.focusTarget(volume)
	if err != nil {
		return err
	}
	c.state.SceneCenter = st.SceneCenter
	c.state.SceneRadius = st.SceneRadius
	c.anim = TweenFocus(c, st.Center, st.Radius, duration, fn)
	c.emit(CameraFocused, 0, c.savedCursor)
	return nil
}

// Animating reports whether a focus animation is running.
func (c *Camera) Animating() bool {
	return c.anim != nil
}

// Update advances a running focus animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.anim == nil {
		return
	}
	c.anim.Update(dt)
	if c.anim.Done {
		c.anim = nil
	}
}

// --- Pointer state machine ---

// PointerButton handles a button press or release at cursor (x, y).
// A press while idle snapshots the state and cursor and enters the mode for
// the button; unknown buttons are ignored. Releasing the starting button
// applies a final update and returns to idle.
func (c *Camera) PointerButton(x, y float64, button MouseButton, pressed bool) {
	if pressed {
		if c.mode != ModeIdle {
			return
		}
		mode, ok := modeForButton(button)
		if !ok {
			return
		}
		c.anim = nil
		c.saved = c.state
		c.savedCursor = Vec2{X: x, Y: y}
		c.mode = mode
		c.button = button
		c.emit(CameraInteractionStart, button, c.savedCursor)
		return
	}

	if c.mode == ModeIdle || button != c.button {
		return
	}
	c.modify(x, y)
	c.mode = ModeIdle
	c.emit(CameraInteractionEnd, button, Vec2{X: x, Y: y})
	c.saved = CameraState{}
}

// PointerMove recomputes the live state from the snapshot while a button is held.
func (c *Camera) PointerMove(x, y float64) {
	c.modify(x, y)
}

// modify recomputes the live state from the snapshot and the drag since
// the press. Drift is measured in fractions of the viewport.
func (c *Camera) modify(x, y float64) {
	if c.mode == ModeIdle {
		return
	}
	dx := (x - c.savedCursor.X) / float64(c.state.WindowW)
	dy := (y - c.savedCursor.Y) / float64(c.state.WindowH)

	switch c.mode {
	case ModeZooming:
		c.state.Radius = zoomed(&c.saved, dy)
	case ModePanning:
		c.state.Center = panned(&c.saved, dx, dy)
	case ModeRotating:
		c.state.Axis = rotated(&c.saved, dx, dy)
	}
}

// zoomed returns the log radius after a vertical drag; dragging down moves away.
func zoomed(saved *CameraState, dy float64) float64 {
	return saved.Radius + dy*zoomSpeed
}

// panned returns the pivot after a drag. The step scales with the orbit
// distance so the scene follows the cursor at any zoom level.
func panned(saved *CameraState, dx, dy float64) mgl64.Vec3 {
	factor := saved.Distance()
	right := saved.Axis.Col(0)
	up := saved.Axis.Col(1)
	return saved.Center.
		Add(right.Mul(-dx * factor)).
		Add(up.Mul(dy * factor))
}

// rotated returns the axis frame after a drag: a rotation about the saved
// up vector by the horizontal drift and about the saved right vector by the
// vertical drift, followed by Gram-Schmidt re-orthonormalization.
func rotated(saved *CameraState, dx, dy float64) mgl64.Mat3 {
	if dx == 0 && dy == 0 {
		return saved.Axis
	}
	aboutUp := mgl64.HomogRotate3D(-dx*rotateSpeed, saved.Axis.Col(1))
	aboutRight := mgl64.HomogRotate3D(-dy*rotateSpeed, saved.Axis.Col(0))
	rot := aboutRight.Mul4(aboutUp).Mat3()
	return orthonormalize(saved.Axis, rot)
}

// --- Matrices ---

// ModelView returns the view transform.
func (c *Camera) ModelView() mgl64.Mat4 {
	return c.state.ModelView()
}

// Projection returns the perspective transform with adaptive clip planes.
func (c *Camera) Projection() mgl64.Mat4 {
	return c.state.Projection()
}

// CombinedMatrix returns Projection * ModelView.
func (c *Camera) CombinedMatrix() mgl64.Mat4 {
	return c.state.Combined()
}

// NormalMatrix returns the normal matrix of the view transform.
func (c *Camera) NormalMatrix() mgl64.Mat3 {
	return c.state.NormalMatrix()
}
