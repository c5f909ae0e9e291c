package cadview

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// fieldOfView is the vertical field of view in radians.
	fieldOfView = 1.0
	// farScale and nearFloor shape the adaptive clipping planes.
	farScale  = 1.5
	nearFloor = 1e-6

	defaultWindowW     = 100
	defaultWindowH     = 100
	defaultSceneRadius = 10
)

// CameraState is the complete orbit camera state. Radius is stored as the
// natural logarithm of the orbit distance.
type CameraState struct {
	Center mgl64.Vec3
	// Axis columns are the orthonormal right, up and view-direction vectors.
	Axis   mgl64.Mat3
	Radius float64

	WindowW, WindowH int

	SceneCenter mgl64.Vec3
	SceneRadius float64
}

// DefaultCameraState returns the state of a fresh camera: identity axis,
// unit distance, 100x100 window and a scene radius of 10.
func DefaultCameraState() CameraState {
	return CameraState{
		Axis:        mgl64.Ident3(),
		WindowW:     defaultWindowW,
		WindowH:     defaultWindowH,
		SceneRadius: defaultSceneRadius,
	}
}

// Distance returns the true orbit distance exp(Radius).
func (s *CameraState) Distance() float64 {
	return math.Exp(s.Radius)
}

// Position returns the camera's world position.
func (s *CameraState) Position() mgl64.Vec3 {
	return s.Center.Add(s.Axis.Col(2).Mul(s.Distance()))
}

// ModelView returns the inverse of the camera's world transform.
func (s *CameraState) ModelView() mgl64.Mat4 {
	pos := s.Position()
	rot := s.Axis.Transpose().Mat4()
	return rot.Mul4(mgl64.Translate3D(-pos[0], -pos[1], -pos[2]))
}

// ClipPlanes returns the adaptive near and far distances derived from the
// scene center's view-space depth.
func (s *CameraState) ClipPlanes() (near, far float64) {
	mv := s.ModelView()
	z := -mv.Row(2).Dot(s.SceneCenter.Vec4(1))
	far = z + s.SceneRadius*farScale
	near = math.Max(z-s.SceneRadius, far*nearFloor)
	return near, far
}

// Projection returns the perspective matrix for the current window and clip planes.
func (s *CameraState) Projection() mgl64.Mat4 {
	aspect := float64(s.WindowW) / float64(s.WindowH)
	near, far := s.ClipPlanes()
	return mgl64.Perspective(fieldOfView, aspect, near, far)
}

// Combined returns Projection * ModelView.
func (s *CameraState) Combined() mgl64.Mat4 {
	return s.Projection().Mul4(s.ModelView())
}

// NormalMatrix returns the normal matrix of the model-view transform.
func (s *CameraState) NormalMatrix() mgl64.Mat3 {
	return NormalMatrix(s.ModelView())
}

// serializedCameraState is the persisted subset of CameraState. Window size
// and scene framing are session values and are not stored.
type serializedCameraState struct {
	Radius float64    `json:"radius"`
	Center [3]float64 `json:"center"`
	// CamAxis is column-major.
	CamAxis [9]float64 `json:"cam_axis"`
}

// MarshalJSON encodes center, axis and radius.
func (s CameraState) MarshalJSON() ([]byte, error) {
	return json.Marshal(serializedCameraState{
		Radius:  s.Radius,
		Center:  [3]float64(s.Center),
		CamAxis: [9]float64(s.Axis),
	})
}

// UnmarshalJSON decodes center, axis and radius, leaving the other fields
// untouched. Arrays must have exactly 3 and 9 elements.
func (s *CameraState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Radius  *float64  `json:"radius"`
		Center  []float64 `json:"center"`
		CamAxis []float64 `json:"cam_axis"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode camera state: %w", err)
	}
	if raw.Radius == nil {
		return fmt.Errorf("decode camera state: missing radius")
	}
	if len(raw.Center) != 3 {
		return fmt.Errorf("decode camera state: center has %d elements, want 3", len(raw.Center))
	}
	if len(raw.CamAxis) != 9 {
		return fmt.Errorf("decode camera state: cam_axis has %d elements, want 9", len(raw.CamAxis))
	}
	s.Radius = *raw.Radius
	copy(s.Center[:], raw.Center)
	copy(s.Axis[:], raw.CamAxis)
	return nil
}

// String returns the JSON text encoding, or an empty string if the state
// holds values JSON cannot represent (NaN, Inf).
func (s CameraState) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// ParseCameraState decodes a text encoding produced by CameraState.String
// into a default state.
func ParseCameraState(text string) (CameraState, error) {
	st := DefaultCameraState()
	if err := json.Unmarshal([]byte(text), &st); err != nil {
		return CameraState{}, err
	}
	return st, nil
}
