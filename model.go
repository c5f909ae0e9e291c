package cadview

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Topology is the primitive type of a mesh.
type Topology uint8

const (
	TopologyPoints Topology = iota
	TopologyLines
	TopologyLineLoop
	TopologyLineStrip
	TopologyTriangles
	TopologyTriangleFan
	TopologyTriangleStrip
)

var topologyNames = [...]string{
	TopologyPoints:        "points",
	TopologyLines:         "lines",
	TopologyLineLoop:      "line_loop",
	TopologyLineStrip:     "line_strip",
	TopologyTriangles:     "triangles",
	TopologyTriangleFan:   "triangle_fan",
	TopologyTriangleStrip: "triangle_strip",
}

// String returns the snake_case name used by the model file format.
func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return fmt.Sprintf("topology(%d)", t)
}

// ParseTopology is the inverse of Topology.String.
func ParseTopology(s string) (Topology, error) {
	for i, name := range topologyNames {
		if name == s {
			return Topology(i), nil
		}
	}
	return 0, fmt.Errorf("unknown topology %q", s)
}

// MeshData is CPU-side vertex and index data for one shape part.
type MeshData struct {
	Positions []mgl64.Vec3
	// Normals is nil or has one entry per position.
	Normals  []mgl64.Vec3
	Topology Topology
	// Indices is nil for non-indexed meshes.
	Indices []uint32
}

// HasNormals reports whether per-vertex normals are present.
func (m *MeshData) HasNormals() bool {
	return len(m.Normals) > 0
}

// NumElements returns the number of vertices referenced by a draw call.
func (m *MeshData) NumElements() int {
	if m.Indices != nil {
		return len(m.Indices)
	}
	return len(m.Positions)
}

// Validate checks that the mesh can be uploaded.
func (m *MeshData) Validate() error {
	if m == nil || len(m.Positions) == 0 {
		return fmt.Errorf("mesh has no vertex positions")
	}
	if len(m.Normals) > 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh has %d normals for %d positions", len(m.Normals), len(m.Positions))
	}
	if int(m.Topology) >= len(topologyNames) {
		return fmt.Errorf("mesh has invalid %v", m.Topology)
	}
	if m.Indices != nil && len(m.Indices) == 0 {
		return fmt.Errorf("mesh has an empty index list")
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("index %d at %d out of range (%d positions)", idx, i, len(m.Positions))
		}
	}
	return nil
}

// Material is a flat phong-style material. Only the diffuse color is rendered.
type Material struct {
	Name    string
	Diffuse Color
}

// DiffuseOf returns the diffuse color of m, or black for the "none" material.
func DiffuseOf(m *Material) Color {
	if m == nil {
		return ColorBlack
	}
	return m.Diffuse
}

// Part is one mesh of a shape together with its material.
// A nil Material renders with the black fallback.
type Part struct {
	Mesh     *MeshData
	Material *Material
}

// ShapeID is the stable identity used to deduplicate shapes during compilation.
type ShapeID uint64

// shapeIDCounter is a plain counter (no atomic, model construction is single-threaded).
var shapeIDCounter ShapeID

func nextShapeID() ShapeID {
	shapeIDCounter++
	return shapeIDCounter
}

// Shape is a reusable piece of geometry referenced by any number of nodes.
type Shape struct {
	id    ShapeID
	Name  string
	parts []Part
}

// NewShape creates a shape with a fresh identity.
func NewShape(name string, parts ...Part) *Shape {
	return &Shape{id: nextShapeID(), Name: name, parts: parts}
}

// ID returns the shape's identity.
func (s *Shape) ID() ShapeID {
	return s.id
}

// Parts returns the part list. The returned slice MUST NOT be mutated by the caller.
func (s *Shape) Parts() []Part {
	return s.parts
}

// AddPart appends a part to the shape.
func (s *Shape) AddPart(mesh *MeshData, mat *Material) {
	s.parts = append(s.parts, Part{Mesh: mesh, Material: mat})
}

// Node is a scene graph element: an optional local transform, shape
// references and ordered children.
type Node struct {
	Name string

	Parent   *Node
	children []*Node
	shapes   []*Shape

	transform    mgl64.Mat4
	hasTransform bool
}

// NewNode creates a node without a transform.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// SetTransform sets the node's local transform.
func (n *Node) SetTransform(m mgl64.Mat4) {
	n.transform = m
	n.hasTransform = true
}

// ClearTransform removes the node's local transform; the node then inherits
// its parent's transform unchanged.
func (n *Node) ClearTransform() {
	n.transform = mgl64.Mat4{}
	n.hasTransform = false
}

// Transform returns the local transform and whether one is set.
func (n *Node) Transform() (mgl64.Mat4, bool) {
	return n.transform, n.hasTransform
}

// AddShape appends a shape reference. The same shape may be referenced by
// many nodes, or several times by one node.
func (n *Node) AddShape(s *Shape) {
	if s == nil {
		panic("cadview: cannot add nil shape")
	}
	n.shapes = append(n.shapes, s)
}

// Shapes returns the shape references. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Shapes() []*Shape {
	return n.shapes
}

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cadview: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("cadview: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cadview: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// Model is a loaded scene graph.
type Model struct {
	Name string
	Root *Node
}

// Bounds returns the world-space bounding volume of every vertex in the model.
func (m *Model) Bounds() BBox {
	return ComputeBounds(m.Root)
}
