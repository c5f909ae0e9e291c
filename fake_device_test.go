package cadview

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var errFakeCreate = errors.New("fake: create failed")

// recordingDevice is a GPU-free Device that records every call.
type recordingDevice struct {
	next      MeshHandle
	live      map[MeshHandle]*MeshData
	created   []MeshHandle
	destroyed []MeshHandle
	drawn     []MeshHandle
	calls     []string

	failCreate map[*MeshData]bool
	failDraw   map[MeshHandle]bool
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{
		live:       make(map[MeshHandle]*MeshData),
		failCreate: make(map[*MeshData]bool),
		failDraw:   make(map[MeshHandle]bool),
	}
}

func (d *recordingDevice) CreateMesh(m *MeshData) (MeshHandle, error) {
	if d.failCreate[m] {
		return 0, errFakeCreate
	}
	d.next++
	d.live[d.next] = m
	d.created = append(d.created, d.next)
	return d.next, nil
}

func (d *recordingDevice) DrawMesh(h MeshHandle) error {
	d.calls = append(d.calls, "draw")
	d.drawn = append(d.drawn, h)
	if d.failDraw[h] {
		return errors.New("fake: draw failed")
	}
	if _, ok := d.live[h]; !ok {
		return errors.New("fake: unknown handle")
	}
	return nil
}

func (d *recordingDevice) HasNormals(h MeshHandle) bool {
	m, ok := d.live[h]
	return ok && m.HasNormals()
}

func (d *recordingDevice) DestroyMesh(h MeshHandle) {
	d.destroyed = append(d.destroyed, h)
	delete(d.live, h)
}

func (d *recordingDevice) SetViewport(w, h int) { d.calls = append(d.calls, "viewport") }
func (d *recordingDevice) Clear(c Color)        { d.calls = append(d.calls, "clear") }

// recordingShader records uniform uploads.
type recordingShader struct {
	binds      int
	combined   []mgl64.Mat4
	normals    []mgl64.Mat3
	materials  []*Material
	hasNormals []bool
}

func (s *recordingShader) Bind() { s.binds++ }

func (s *recordingShader) SetMatrices(combined mgl64.Mat4, normal mgl64.Mat3) {
	s.combined = append(s.combined, combined)
	s.normals = append(s.normals, normal)
}

func (s *recordingShader) SetMaterial(m *Material) { s.materials = append(s.materials, m) }
func (s *recordingShader) SetHasNormals(ok bool)   { s.hasNormals = append(s.hasNormals, ok) }

// triangle returns a one-triangle mesh, with normals if requested.
func triangle(withNormals bool) *MeshData {
	m := &MeshData{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Topology:  TopologyTriangles,
	}
	if withNormals {
		m.Normals = []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	}
	return m
}

func matNear(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}

func mat3Near(a, b mgl64.Mat3, eps float64) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}
