package cadview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Box ---

// boxFaces lists each face as its outward normal and two in-plane axes.
var boxFaces = [6]struct{ n, u, v mgl64.Vec3 }{
	{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
	{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
	{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}},
}

// BoxMesh returns an indexed triangle mesh of an axis-aligned box centered
// at the origin with per-face normals.
func BoxMesh(size mgl64.Vec3) *MeshData {
	h := size.Mul(0.5)
	m := &MeshData{Topology: TopologyTriangles}
	for _, f := range boxFaces {
		base := uint32(len(m.Positions))
		c := mgl64.Vec3{f.n[0] * h[0], f.n[1] * h[1], f.n[2] * h[2]}
		u := mgl64.Vec3{f.u[0] * h[0], f.u[1] * h[1], f.u[2] * h[2]}
		v := mgl64.Vec3{f.v[0] * h[0], f.v[1] * h[1], f.v[2] * h[2]}
		m.Positions = append(m.Positions,
			c.Sub(u).Sub(v), c.Add(u).Sub(v), c.Add(u).Add(v), c.Sub(u).Add(v))
		m.Normals = append(m.Normals, f.n, f.n, f.n, f.n)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// --- Plane ---

// PlaneMesh returns a cols x rows grid in the XZ plane centered at the
// origin, facing +Y.
func PlaneMesh(width, depth float64, cols, rows int) *MeshData {
	cols = max(cols, 1)
	rows = max(rows, 1)
	m := &MeshData{Topology: TopologyTriangles}
	up := mgl64.Vec3{0, 1, 0}
	for r := 0; r <= rows; r++ {
		z := -depth/2 + depth*float64(r)/float64(rows)
		for c := 0; c <= cols; c++ {
			x := -width/2 + width*float64(c)/float64(cols)
			m.Positions = append(m.Positions, mgl64.Vec3{x, 0, z})
			m.Normals = append(m.Normals, up)
		}
	}
	stride := uint32(cols + 1)
	for r := uint32(0); r < uint32(rows); r++ {
		for c := uint32(0); c < uint32(cols); c++ {
			i := r*stride + c
			m.Indices = append(m.Indices, i, i+stride, i+1, i+1, i+stride, i+stride+1)
		}
	}
	return m
}

// --- Cylinder ---

// CylinderMeshes returns a Y-aligned cylinder as a non-indexed triangle
// strip for the side and two triangle fans for the caps.
func CylinderMeshes(radius, height float64, segments int) (side, top, bottom *MeshData) {
	segments = max(segments, 3)
	side = &MeshData{Topology: TopologyTriangleStrip}
	top = &MeshData{Topology: TopologyTriangleFan}
	bottom = &MeshData{Topology: TopologyTriangleFan}

	y0, y1 := -height/2, height/2
	top.Positions = append(top.Positions, mgl64.Vec3{0, y1, 0})
	top.Normals = append(top.Normals, mgl64.Vec3{0, 1, 0})
	bottom.Positions = append(bottom.Positions, mgl64.Vec3{0, y0, 0})
	bottom.Normals = append(bottom.Normals, mgl64.Vec3{0, -1, 0})

	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(a)
		n := mgl64.Vec3{cos, 0, sin}
		side.Positions = append(side.Positions,
			mgl64.Vec3{radius * cos, y1, radius * sin},
			mgl64.Vec3{radius * cos, y0, radius * sin})
		side.Normals = append(side.Normals, n, n)

		top.Positions = append(top.Positions, mgl64.Vec3{radius * cos, y1, radius * sin})
		top.Normals = append(top.Normals, mgl64.Vec3{0, 1, 0})
		// reverse winding for the bottom cap
		bottom.Positions = append(bottom.Positions, mgl64.Vec3{radius * cos, y0, -radius * sin})
		bottom.Normals = append(bottom.Normals, mgl64.Vec3{0, -1, 0})
	}
	return side, top, bottom
}

// --- Lines ---

// PolylineMesh returns a line strip through points, or a line loop if closed.
func PolylineMesh(points []mgl64.Vec3, closed bool) *MeshData {
	topo := TopologyLineStrip
	if closed {
		topo = TopologyLineLoop
	}
	return &MeshData{Positions: append([]mgl64.Vec3(nil), points...), Topology: topo}
}

// AxesMesh returns three line segments of the given length along +X, +Y and +Z.
func AxesMesh(length float64) *MeshData {
	o := mgl64.Vec3{}
	return &MeshData{
		Positions: []mgl64.Vec3{o, {length, 0, 0}, o, {0, length, 0}, o, {0, 0, length}},
		Topology:  TopologyLines,
	}
}
