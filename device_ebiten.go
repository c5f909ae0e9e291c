package cadview

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// primKind is the expanded primitive class of a mesh.
type primKind uint8

const (
	primPoints primKind = iota
	primLines
	primTriangles
)

// verticesPer returns the number of elements per primitive.
func (k primKind) verticesPer() int {
	switch k {
	case primPoints:
		return 1
	case primLines:
		return 2
	default:
		return 3
	}
}

// gpuMesh is a mesh realized by EbitenDevice: vertex data plus a flat
// element list for the expanded primitive class.
type gpuMesh struct {
	positions []mgl64.Vec3
	normals   []mgl64.Vec3
	kind      primKind
	elements  []uint32
}

// expandPrimitives converts any topology to a flat list of points, line
// segments or triangles. Incomplete trailing primitives are dropped.
func expandPrimitives(m *MeshData) (primKind, []uint32) {
	n := m.NumElements()
	elem := func(i int) uint32 {
		if m.Indices != nil {
			return m.Indices[i]
		}
		return uint32(i)
	}

	var out []uint32
	switch m.Topology {
	case TopologyPoints:
		out = make([]uint32, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, elem(i))
		}
		return primPoints, out
	case TopologyLines:
		for i := 0; i+1 < n; i += 2 {
			out = append(out, elem(i), elem(i+1))
		}
		return primLines, out
	case TopologyLineStrip, TopologyLineLoop:
		for i := 0; i+1 < n; i++ {
			out = append(out, elem(i), elem(i+1))
		}
		if m.Topology == TopologyLineLoop && n > 2 {
			out = append(out, elem(n-1), elem(0))
		}
		return primLines, out
	case TopologyTriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				out = append(out, elem(i), elem(i+1), elem(i+2))
			} else {
				out = append(out, elem(i+1), elem(i), elem(i+2))
			}
		}
		return primTriangles, out
	case TopologyTriangleFan:
		for i := 1; i+1 < n; i++ {
			out = append(out, elem(0), elem(i), elem(i+1))
		}
		return primTriangles, out
	default:
		for i := 0; i+2 < n; i += 3 {
			out = append(out, elem(i), elem(i+1), elem(i+2))
		}
		return primTriangles, out
	}
}

// EbitenDevice is a Device and Shader on top of ebiten. Vertices are
// projected on the CPU with the bound matrices, shaded with a headlight,
// collected for the frame and depth-sorted on Flush, since ebiten has no
// depth buffer.
type EbitenDevice struct {
	// LineWidth and PointSize are in pixels.
	LineWidth float32
	PointSize float32
	// Ambient is the light intensity on faces seen edge-on.
	Ambient float64

	meshes map[MeshHandle]*gpuMesh
	next   MeshHandle

	target        *ebiten.Image
	width, height int

	combined   mgl64.Mat4
	normal     mgl64.Mat3
	diffuse    Color
	hasNormals bool
	bound      bool

	prims []primitive
	batch triangleBatch
}

// NewEbitenDevice creates a device with no meshes.
func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{
		LineWidth: 1.5,
		PointSize: 3,
		Ambient:   0.25,
		meshes:    make(map[MeshHandle]*gpuMesh),
		combined:  mgl64.Ident4(),
		normal:    mgl64.Ident3(),
		diffuse:   ColorBlack,
	}
}

// CreateMesh validates and stores mesh data. Errors wrap ErrResourceCreation.
func (d *EbitenDevice) CreateMesh(mesh *MeshData) (MeshHandle, error) {
	if err := mesh.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrResourceCreation, err)
	}
	kind, elements := expandPrimitives(mesh)
	d.next++
	h := d.next
	gm := &gpuMesh{
		positions: append([]mgl64.Vec3(nil), mesh.Positions...),
		kind:      kind,
		elements:  elements,
	}
	if mesh.HasNormals() {
		gm.normals = append([]mgl64.Vec3(nil), mesh.Normals...)
	}
	d.meshes[h] = gm
	return h, nil
}

// DestroyMesh releases the mesh.
func (d *EbitenDevice) DestroyMesh(h MeshHandle) {
	delete(d.meshes, h)
}

// NumMeshes returns the number of live meshes.
func (d *EbitenDevice) NumMeshes() int {
	return len(d.meshes)
}

// HasNormals reports whether the mesh was created with normals.
func (d *EbitenDevice) HasNormals(h MeshHandle) bool {
	m, ok := d.meshes[h]
	return ok && m.normals != nil
}

// Begin starts a frame drawing into target. Primitives collected by
// DrawMesh are submitted by Flush.
func (d *EbitenDevice) Begin(target *ebiten.Image) {
	d.target = target
	d.prims = d.prims[:0]
	d.bound = false
}

// SetViewport sets the size used to map normalized device coordinates to pixels.
func (d *EbitenDevice) SetViewport(width, height int) {
	d.width = width
	d.height = height
}

// Clear fills the target with c. Depth is implicit: primitives are sorted on Flush.
func (d *EbitenDevice) Clear(c Color) {
	d.prims = d.prims[:0]
	if d.target != nil {
		d.target.Fill(c.toRGBA())
	}
}

// Bind makes the device's program current.
func (d *EbitenDevice) Bind() {
	d.bound = true
}

// SetMatrices sets the combined and normal matrices for following draws.
func (d *EbitenDevice) SetMatrices(combined mgl64.Mat4, normal mgl64.Mat3) {
	d.combined = combined
	d.normal = normal
}

// SetMaterial sets the diffuse color for following draws.
func (d *EbitenDevice) SetMaterial(m *Material) {
	d.diffuse = DiffuseOf(m)
}

// SetHasNormals enables headlight shading for following draws.
func (d *EbitenDevice) SetHasNormals(ok bool) {
	d.hasNormals = ok
}

// DrawMesh projects and collects the mesh's primitives. Primitives with a
// vertex behind the eye or outside the depth range are clipped whole.
func (d *EbitenDevice) DrawMesh(h MeshHandle) error {
	if !d.bound {
		return fmt.Errorf("draw mesh %d: no program bound", h)
	}
	m, ok := d.meshes[h]
	if !ok {
		return fmt.Errorf("draw mesh %d: unknown handle", h)
	}
	per := m.kind.verticesPer()
	shade := d.hasNormals && m.normals != nil

	for i := 0; i+per <= len(m.elements); i += per {
		var p primitive
		p.kind = m.kind
		visible := true
		for j := 0; j < per; j++ {
			idx := m.elements[i+j]
			sv, ok := d.project(m.positions[idx])
			if !ok {
				visible = false
				break
			}
			if shade {
				sv.c = d.shadeColor(m.normals[idx])
			} else {
				sv.c = d.diffuse
			}
			p.v[j] = sv
			p.depth += sv.z
		}
		if !visible {
			continue
		}
		p.depth /= float64(per)
		d.prims = append(d.prims, p)
	}
	return nil
}

// project maps a model-space position to window pixels and NDC depth.
func (d *EbitenDevice) project(pos mgl64.Vec3) (screenVertex, bool) {
	clip := d.combined.Mul4x1(pos.Vec4(1))
	if clip[3] <= 0 {
		return screenVertex{}, false
	}
	inv := 1 / clip[3]
	x, y, z := clip[0]*inv, clip[1]*inv, clip[2]*inv
	if z < -1 || z > 1 {
		return screenVertex{}, false
	}
	return screenVertex{
		x: float32((x + 1) / 2 * float64(d.width)),
		y: float32((1 - y) / 2 * float64(d.height)),
		z: z,
	}, true
}

// shadeColor lights the diffuse color with a two-sided headlight along the
// view axis.
func (d *EbitenDevice) shadeColor(n mgl64.Vec3) Color {
	vn := d.normal.Mul3x1(n)
	l := vn.Len()
	intensity := 1.0
	if l > 0 {
		intensity = d.Ambient + (1-d.Ambient)*math.Abs(vn[2]/l)
	}
	c := d.diffuse
	return Color{R: c.R * intensity, G: c.G * intensity, B: c.B * intensity, A: c.A}
}

// Flush depth-sorts the frame's primitives back to front and submits them
// to the target with one DrawTriangles32 call.
func (d *EbitenDevice) Flush() {
	if d.target == nil || len(d.prims) == 0 {
		return
	}
	sortBackToFront(d.prims)
	d.batch.reset()
	for i := range d.prims {
		d.batch.appendPrimitive(&d.prims[i], d.LineWidth, d.PointSize)
	}
	d.batch.flush(d.target)
}

// Dispose releases every mesh.
func (d *EbitenDevice) Dispose() {
	clear(d.meshes)
}
