package cadview

import (
	"fmt"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorBlack is the diffuse color used for parts without a material.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// DefaultClearColor is the background used when no other color is configured.
	DefaultClearColor = Color{0.2, 0.2, 1.0, 1.0}
)

// toRGBA converts to a premultiplied 8-bit color for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(math.Round(clamp01(c.R) * a * 255)),
		G: uint8(math.Round(clamp01(c.G) * a * 255)),
		B: uint8(math.Round(clamp01(c.B) * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for cursor positions in logical window coordinates.
type Vec2 struct {
	X, Y float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft    MouseButton = iota // primary button, rotates
	MouseButtonRight                      // secondary button, zooms
	MouseButtonMiddle                     // tertiary button (wheel click), pans
	MouseButtonBack                       // extra button, ignored by the camera
	MouseButtonForward                    // extra button, ignored by the camera
)

// String returns a lower-case button name.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonBack:
		return "back"
	case MouseButtonForward:
		return "forward"
	default:
		return "unknown"
	}
}

// ParseMouseButton returns the button with the given lower-case name.
func ParseMouseButton(name string) (MouseButton, error) {
	for b := MouseButtonLeft; b <= MouseButtonForward; b++ {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown mouse button %q", name)
}

// InteractionMode is the state of the orbit camera's pointer state machine.
type InteractionMode uint8

const (
	ModeIdle     InteractionMode = iota // no button held
	ModeZooming                         // secondary button held
	ModePanning                         // tertiary button held
	ModeRotating                        // primary button held
)

// String returns the mode name as shown in the HUD.
func (m InteractionMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeZooming:
		return "zooming"
	case ModePanning:
		return "panning"
	case ModeRotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// modeForButton maps a pointer button to the interaction it starts.
// ok is false for buttons the camera ignores.
func modeForButton(b MouseButton) (mode InteractionMode, ok bool) {
	switch b {
	case MouseButtonRight:
		return ModeZooming, true
	case MouseButtonMiddle:
		return ModePanning, true
	case MouseButtonLeft:
		return ModeRotating, true
	default:
		return ModeIdle, false
	}
}

// CameraEventType identifies a camera interaction transition.
type CameraEventType uint8

const (
	CameraInteractionStart CameraEventType = iota // a button press entered a non-idle mode
	CameraInteractionEnd                          // the starting button was released
	CameraFocused                                 // Focus or FocusAnimated succeeded
)

// CameraEvent carries a camera transition for observers such as the ECS bridge.
type CameraEvent struct {
	Type   CameraEventType
	Mode   InteractionMode
	Button MouseButton
	Cursor Vec2
	// State is the camera state after the transition.
	State CameraState
}

// EventSink is the interface for optional ECS integration.
// When set on a Viewer, camera events are forwarded to it.
type EventSink interface {
	EmitEvent(event CameraEvent)
}
